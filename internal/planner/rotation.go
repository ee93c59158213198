package planner

// Rotation regime thresholds on the progress ratio.
const (
	finalStretchRatio = 0.7
	midStageRatio     = 0.5
)

// Fixed labels emitted by the later regimes.
var (
	finalStretchTopics = []string{"Review & Consolidation", "Practice Tests", "Mock Exam"}
	reviewLabel        = "Review of Previous Topics"
)

// rotationTopics selects the candidate topic labels for one subject on one
// day. Early on it slides a three-topic window of new material across the
// subject's list; mid-late it narrows to two topics plus a review label; in
// the final stretch it drops subject topics entirely in favour of practice.
// The window never wraps, so short topic lists can yield fewer labels than
// the nominal window size, possibly none.
func rotationTopics(topics []string, progressRatio float64) []string {
	if progressRatio > finalStretchRatio {
		out := make([]string, len(finalStretchTopics))
		copy(out, finalStretchTopics)
		return out
	}

	start := int(progressRatio * float64(len(topics)))
	if progressRatio > midStageRatio {
		window := sliceWindow(topics, start, 2)
		return append(window, reviewLabel)
	}
	return sliceWindow(topics, start, 3)
}

func sliceWindow(topics []string, start, size int) []string {
	if start >= len(topics) || start < 0 {
		return []string{}
	}
	end := start + size
	if end > len(topics) {
		end = len(topics)
	}
	out := make([]string, end-start)
	copy(out, topics[start:end])
	return out
}
