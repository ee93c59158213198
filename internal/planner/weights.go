package planner

import (
	"github.com/brightprep/studycal-api/internal/catalog"
	"github.com/brightprep/studycal-api/internal/models"
)

// WeightTable maps subject -> topic -> allocation weight. It is derived per
// generation call and covers every topic in the chosen catalog.
type WeightTable map[string]map[string]float64

// Total sums every topic weight in the table.
func (t WeightTable) Total() float64 {
	var total float64
	for _, topics := range t {
		for _, weight := range topics {
			total += weight
		}
	}
	return total
}

// SubjectTotal sums the weights of one subject's topics.
func (t WeightTable) SubjectTotal(subject string) float64 {
	var total float64
	for _, weight := range t[subject] {
		total += weight
	}
	return total
}

// computeWeights derives the allocation weight for every subject/topic.
// Base weight is the subject difficulty; a known rating replaces it with
// difficulty * factor(rating) where factor(r) = 3.5 - r*0.5, so weaker
// competence earns more time. A subject listed in priorities at index i gets
// every topic weight multiplied by max(1, 1.5 - i*0.1).
func computeWeights(subjects []catalog.SubjectDefinition, ratings models.TopicRatings, priorities []string) WeightTable {
	priorityRank := make(map[string]int, len(priorities))
	for i, name := range priorities {
		if _, seen := priorityRank[name]; !seen {
			priorityRank[name] = i
		}
	}

	table := make(WeightTable, len(subjects))
	for _, subject := range subjects {
		if len(subject.Topics) == 0 {
			continue
		}
		multiplier := 1.0
		if rank, ok := priorityRank[subject.Name]; ok {
			multiplier = priorityMultiplier(rank)
		}
		topics := make(map[string]float64, len(subject.Topics))
		for _, topic := range subject.Topics {
			weight := float64(subject.Difficulty)
			if rating, ok := ratings.Rating(subject.Name, topic); ok {
				weight = float64(subject.Difficulty) * ratingFactor(rating)
			}
			topics[topic] = weight * multiplier
		}
		table[subject.Name] = topics
	}
	return table
}

// ratingFactor maps competence 1..5 to 3.0..1.0: rating 1 triples the base
// weight, rating 5 leaves it unchanged.
func ratingFactor(rating int) float64 {
	return 3.5 - float64(rating)*0.5
}

func priorityMultiplier(rank int) float64 {
	m := 1.5 - float64(rank)*0.1
	if m < 1 {
		return 1
	}
	return m
}
