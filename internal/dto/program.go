package dto

import (
	"time"

	"github.com/brightprep/studycal-api/internal/models"
)

// GenerateProgramRequest captures POST /programs payload.
type GenerateProgramRequest struct {
	ExamType          string                        `json:"examType" validate:"required"`
	ExamDate          string                        `json:"examDate" validate:"required,datetime=2006-01-02"`
	StartDate         string                        `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	StudentName       string                        `json:"studentName" validate:"required,min=2,max=120"`
	Email             string                        `json:"email" validate:"required,email"`
	Title             string                        `json:"title" validate:"omitempty,max=160"`
	TopicRatings      map[string]map[string]int     `json:"topicRatings" validate:"omitempty,dive,dive,min=1,max=5"`
	SubjectPriorities []string                      `json:"subjectPriorities" validate:"omitempty,max=10,dive,min=1"`
	DailyStudyHours   int                           `json:"dailyStudyHours" validate:"omitempty,min=1,max=12"`
	WeekendStudyHours int                           `json:"weekendStudyHours" validate:"omitempty,min=1,max=16"`
	IncludeBreaks     *bool                         `json:"includeBreaks"`
}

// ProgramResponse wraps a generated program plus its download links when
// delivery has already produced artifacts.
type ProgramResponse struct {
	Program   *models.StudyProgram `json:"program"`
	Downloads *DownloadLinks       `json:"downloads,omitempty"`
}

// DownloadLinks carries signed artifact URLs.
type DownloadLinks struct {
	PDF       string    `json:"pdf,omitempty"`
	ICS       string    `json:"ics,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ProgramSummaryResponse is the lightweight listing shape.
type ProgramSummaryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ExamType    string    `json:"examType"`
	ExamDate    string    `json:"examDate"`
	StudentName string    `json:"studentName"`
	TotalWeeks  int       `json:"totalWeeks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CatalogResponse exposes one exam type's subject catalog and advice.
type CatalogResponse struct {
	ExamType string           `json:"examType"`
	Subjects []CatalogSubject `json:"subjects"`
	Advice   []string         `json:"advice,omitempty"`
}

// CatalogSubject mirrors the static subject definition.
type CatalogSubject struct {
	Name       string   `json:"name"`
	Difficulty int      `json:"difficulty"`
	Topics     []string `json:"topics"`
}
