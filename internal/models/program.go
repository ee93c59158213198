package models

import "time"

// DateLayout is the ISO 8601 day format used across the program wire contract.
const DateLayout = "2006-01-02"

// TopicRatings maps subject name -> topic name -> competence rating in [1,5].
// 1 marks the weakest competence. Missing entries fall back to the subject's
// base difficulty during weight calculation.
type TopicRatings map[string]map[string]int

// Rating returns the rating for a subject/topic pair when present.
func (r TopicRatings) Rating(subject, topic string) (int, bool) {
	topics, ok := r[subject]
	if !ok {
		return 0, false
	}
	rating, ok := topics[topic]
	return rating, ok
}

// StudyBlock is one scheduled slice of a day. The json field names and the
// minute unit are consumed verbatim by the PDF/ICS renderers; do not reshape
// without updating them.
type StudyBlock struct {
	Name     string   `json:"name"`
	Duration int      `json:"duration"`
	Topics   []string `json:"topics"`
	IsBreak  bool     `json:"isBreak,omitempty"`
}

// Day holds the ordered study blocks for one calendar date. Days after the
// exam date exist to complete their week but carry no subjects.
type Day struct {
	Date     string       `json:"date"`
	DayName  string       `json:"dayName"`
	Subjects []StudyBlock `json:"subjects"`
}

// Week tiles seven sequential days starting from the program start date.
type Week struct {
	WeekNumber int    `json:"weekNumber"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Days       []Day  `json:"days"`
}

// StudyProgram is the root aggregate produced by the planner. It is immutable
// after generation; regeneration yields a new program with a new id.
type StudyProgram struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	ExamType          string       `json:"examType"`
	ExamDate          string       `json:"examDate"`
	StudentName       string       `json:"studentName"`
	Email             string       `json:"email"`
	CreatedAt         time.Time    `json:"createdAt"`
	TotalWeeks        int          `json:"totalWeeks"`
	TopicRatings      TopicRatings `json:"topicRatings"`
	Weeks             []Week       `json:"weeks"`
	Notes             []string     `json:"notes"`
	SubjectPriorities []string     `json:"subjectPriorities"`
}

// FlattenDays returns the program days in chronological order.
func (p *StudyProgram) FlattenDays() []Day {
	days := make([]Day, 0, len(p.Weeks)*7)
	for _, week := range p.Weeks {
		days = append(days, week.Days...)
	}
	return days
}
