package planner

import (
	"math"
	"math/rand"

	"github.com/brightprep/studycal-api/internal/catalog"
	"github.com/brightprep/studycal-api/internal/models"
)

const (
	// BreakName labels the synthetic break entry appended to a day.
	BreakName = "Break"

	breakShare       = 0.15
	minBlockMinutes  = 30
	blockGridMinutes = 15
	lateStageRatio   = 0.66
	lateStageBoost   = 1.2
)

var breakTopics = []string{"Kısa yürüyüş", "Su ve atıştırmalık", "Ekransız dinlenme"}

// allocateDay splits a day's minutes across every catalog subject in catalog
// order. Weak and prioritized subjects carry larger weights and therefore
// more minutes; past two thirds of the timeline every subject gets a 1.2x
// late-stage boost. Durations are clamped to at least 30 minutes and rounded
// down to the 15-minute grid, so no subject is ever dropped from a day.
func allocateDay(subjects []catalog.SubjectDefinition, weights WeightTable, totalMinutes, weekNumber, totalWeeks int, includeBreaks bool, rng *rand.Rand) []models.StudyBlock {
	breakMinutes := 0
	if includeBreaks {
		breakMinutes = int(math.Floor(float64(totalMinutes) * breakShare))
	}
	studyMinutes := totalMinutes - breakMinutes

	totalWeight := weights.Total()
	progressRatio := float64(weekNumber) / float64(totalWeeks)

	blocks := make([]models.StudyBlock, 0, len(subjects)+1)
	for _, subject := range subjects {
		minutes := 0
		for _, weight := range weights[subject.Name] {
			minutes += int(math.Floor(weight / totalWeight * float64(studyMinutes)))
		}
		if progressRatio > lateStageRatio {
			minutes = int(float64(minutes) * lateStageBoost)
		}
		if minutes < minBlockMinutes {
			minutes = minBlockMinutes
		}
		minutes = minutes / blockGridMinutes * blockGridMinutes

		candidates := rotationTopics(subject.Topics, progressRatio)
		blocks = append(blocks, models.StudyBlock{
			Name:     subject.Name,
			Duration: minutes,
			Topics:   pickTopics(candidates, rng),
		})
	}

	if includeBreaks && breakMinutes > 0 {
		blocks = append(blocks, models.StudyBlock{
			Name:     BreakName,
			Duration: breakMinutes,
			Topics:   append([]string(nil), breakTopics...),
			IsBreak:  true,
		})
	}
	return blocks
}

// pickTopics draws 1-2 labels uniformly from the rotation candidates,
// preserving candidate order. Variety across days is intentional.
func pickTopics(candidates []string, rng *rand.Rand) []string {
	if len(candidates) == 0 {
		return []string{}
	}
	count := 1 + rng.Intn(2)
	if count > len(candidates) {
		count = len(candidates)
	}
	picked := rng.Perm(len(candidates))[:count]
	sortInts(picked)
	out := make([]string, 0, count)
	for _, idx := range picked {
		out = append(out, candidates[idx])
	}
	return out
}

func sortInts(values []int) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] < values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}
