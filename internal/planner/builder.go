package planner

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/brightprep/studycal-api/internal/catalog"
	"github.com/brightprep/studycal-api/internal/models"
)

// Params is the one-shot input for a program generation run. Callers are
// expected to have validated exam type, date ordering, and rating ranges;
// the builder re-checks only what would corrupt its own arithmetic.
type Params struct {
	ID                string
	Title             string
	ExamType          catalog.ExamType
	ExamDate          time.Time
	StartDate         time.Time
	StudentName       string
	Email             string
	TopicRatings      models.TopicRatings
	SubjectPriorities []string
	DailyStudyHours   int
	WeekendStudyHours int
	IncludeBreaks     bool
}

// Builder generates study programs. It holds no mutable state between calls
// and may be shared across goroutines; randomness and the clock are injected
// so tests can pin both.
type Builder struct {
	registry *catalog.Registry
	rng      *rand.Rand
	now      func() time.Time
}

// New constructs a Builder. A nil rng falls back to an entropy-seeded source
// and a nil clock to time.Now.
func New(registry *catalog.Registry, rng *rand.Rand, now func() time.Time) *Builder {
	if registry == nil {
		registry = catalog.NewRegistry()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Builder{registry: registry, rng: rng, now: now}
}

// Generate produces a complete StudyProgram for the given parameters.
// Topic picks are intentionally randomized, so two calls with identical
// input yield schedules that differ in topic labels but not in structure.
func (b *Builder) Generate(p Params) (*models.StudyProgram, error) {
	subjects, ok := b.registry.Subjects(p.ExamType)
	if !ok {
		return nil, fmt.Errorf("unknown exam type %q", p.ExamType)
	}
	if err := catalog.Validate(subjects); err != nil {
		return nil, fmt.Errorf("degenerate catalog for %s: %w", p.ExamType, err)
	}

	start := truncateToDay(p.StartDate)
	exam := truncateToDay(p.ExamDate)
	if exam.Before(start) {
		return nil, fmt.Errorf("exam date %s precedes start date %s", exam.Format(models.DateLayout), start.Format(models.DateLayout))
	}

	daysBetween := int(exam.Sub(start).Hours() / 24)
	totalWeeks := int(math.Ceil(float64(daysBetween) / 7))
	if totalWeeks < 1 {
		// Same-day exams still get a one-week program with a single active day.
		totalWeeks = 1
	}

	weights := computeWeights(subjects, p.TopicRatings, p.SubjectPriorities)
	if weights.Total() <= 0 {
		return nil, fmt.Errorf("weight table for %s sums to zero", p.ExamType)
	}

	weeks := make([]models.Week, 0, totalWeeks)
	cursor := start
	for weekNumber := 1; weekNumber <= totalWeeks; weekNumber++ {
		days := make([]models.Day, 0, 7)
		for i := 0; i < 7; i++ {
			date := cursor.AddDate(0, 0, i)
			day := models.Day{
				Date:     date.Format(models.DateLayout),
				DayName:  date.Weekday().String(),
				Subjects: []models.StudyBlock{},
			}
			if !date.After(exam) {
				hours := p.DailyStudyHours
				if isWeekend(date) {
					hours = p.WeekendStudyHours
				}
				day.Subjects = allocateDay(subjects, weights, hours*60, weekNumber, totalWeeks, p.IncludeBreaks, b.rng)
			}
			days = append(days, day)
		}
		weeks = append(weeks, models.Week{
			WeekNumber: weekNumber,
			StartDate:  cursor.Format(models.DateLayout),
			EndDate:    cursor.AddDate(0, 0, 6).Format(models.DateLayout),
			Days:       days,
		})
		cursor = cursor.AddDate(0, 0, 7)
	}

	weakAreas := detectWeakAreas(subjects, p.TopicRatings)

	title := p.Title
	if title == "" {
		title = fmt.Sprintf("%s Çalışma Programı", p.ExamType)
	}

	return &models.StudyProgram{
		ID:                p.ID,
		Title:             title,
		ExamType:          string(p.ExamType),
		ExamDate:          exam.Format(models.DateLayout),
		StudentName:       p.StudentName,
		Email:             p.Email,
		CreatedAt:         b.now().UTC(),
		TotalWeeks:        totalWeeks,
		TopicRatings:      p.TopicRatings,
		Weeks:             weeks,
		Notes:             buildNotes(b.registry.Advice(p.ExamType), weakAreas, totalWeeks),
		SubjectPriorities: append([]string(nil), p.SubjectPriorities...),
	}, nil
}

// detectWeakAreas flags subjects with at least one topic rated 2 or below,
// in catalog order.
func detectWeakAreas(subjects []catalog.SubjectDefinition, ratings models.TopicRatings) []string {
	weak := make([]string, 0)
	for _, subject := range subjects {
		for _, topic := range subject.Topics {
			if rating, ok := ratings.Rating(subject.Name, topic); ok && rating <= 2 {
				weak = append(weak, subject.Name)
				break
			}
		}
	}
	return weak
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
