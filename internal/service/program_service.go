package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightprep/studycal-api/internal/catalog"
	"github.com/brightprep/studycal-api/internal/dto"
	"github.com/brightprep/studycal-api/internal/models"
	"github.com/brightprep/studycal-api/internal/planner"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
)

type programStore interface {
	Put(ctx context.Context, program *models.StudyProgram) error
	Get(ctx context.Context, id string) (*models.StudyProgram, error)
	Delete(ctx context.Context, id string) error
}

type programGenerator interface {
	Generate(p planner.Params) (*models.StudyProgram, error)
}

// DeliveryDispatcher hands finished programs to the async delivery pipeline.
type DeliveryDispatcher interface {
	Dispatch(programID string) error
}

// ProgramService validates generation requests, runs the planner, persists
// the result, and hands the program off to delivery.
type ProgramService struct {
	store     programStore
	generator programGenerator
	registry  *catalog.Registry
	delivery  DeliveryDispatcher
	metrics   *MetricsService
	validate  *validator.Validate
	logger    *zap.Logger

	defaultDailyHours   int
	defaultWeekendHours int
}

// NewProgramService constructs the program service.
func NewProgramService(store programStore, generator programGenerator, registry *catalog.Registry, delivery DeliveryDispatcher, metrics *MetricsService, logger *zap.Logger) *ProgramService {
	if registry == nil {
		registry = catalog.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{
		store:               store,
		generator:           generator,
		registry:            registry,
		delivery:            delivery,
		metrics:             metrics,
		validate:            validator.New(),
		logger:              logger,
		defaultDailyHours:   3,
		defaultWeekendHours: 5,
	}
}

// Generate runs the full pipeline for one request: validate, plan, store,
// dispatch delivery. Delivery failures do not fail the request; the program
// is already stored and downloadable.
func (s *ProgramService) Generate(ctx context.Context, req dto.GenerateProgramRequest) (*models.StudyProgram, error) {
	params, err := s.buildParams(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	program, err := s.generator.Generate(*params)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if s.metrics != nil {
		s.metrics.RecordProgramGenerated(program.ExamType, time.Since(start))
	}

	if err := s.store.Put(ctx, program); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store program")
	}

	if s.delivery != nil {
		if err := s.delivery.Dispatch(program.ID); err != nil {
			s.logger.Warn("delivery dispatch failed",
				zap.String("program_id", program.ID),
				zap.Error(err),
			)
		}
	}

	return program, nil
}

// Get loads a stored program by id.
func (s *ProgramService) Get(ctx context.Context, id string) (*models.StudyProgram, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "program id required")
	}
	return s.store.Get(ctx, id)
}

// Delete removes a stored program.
func (s *ProgramService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "program id required")
	}
	return s.store.Delete(ctx, id)
}

// Catalog returns the subject catalog and advice for one exam type.
func (s *ProgramService) Catalog(examType string) (*dto.CatalogResponse, error) {
	subjects, ok := s.registry.Subjects(catalog.ExamType(examType))
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown exam type %q", examType))
	}
	out := &dto.CatalogResponse{
		ExamType: examType,
		Subjects: make([]dto.CatalogSubject, 0, len(subjects)),
		Advice:   s.registry.Advice(catalog.ExamType(examType)),
	}
	for _, subject := range subjects {
		out.Subjects = append(out.Subjects, dto.CatalogSubject{
			Name:       subject.Name,
			Difficulty: subject.Difficulty,
			Topics:     append([]string(nil), subject.Topics...),
		})
	}
	return out, nil
}

// ExamTypes lists the supported exam type tags.
func (s *ProgramService) ExamTypes() []string {
	types := s.registry.ExamTypes()
	out := make([]string, 0, len(types))
	for _, examType := range types {
		out = append(out, string(examType))
	}
	return out
}

// buildParams validates the request and fills planner parameters. Rating
// bounds are enforced here so the planner can stay permissive.
func (s *ProgramService) buildParams(req dto.GenerateProgramRequest) (*planner.Params, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	examType := catalog.ExamType(req.ExamType)
	if !s.registry.Known(examType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown exam type %q", req.ExamType))
	}

	examDate, err := time.Parse(models.DateLayout, req.ExamDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "examDate must be YYYY-MM-DD")
	}

	startDate := time.Now().UTC()
	if req.StartDate != "" {
		startDate, err = time.Parse(models.DateLayout, req.StartDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be YYYY-MM-DD")
		}
	}
	if examDate.Before(time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "examDate must not precede startDate")
	}

	for subject, topics := range req.TopicRatings {
		for topic, rating := range topics {
			if rating < 1 || rating > 5 {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("rating %d for %s/%s outside [1,5]", rating, subject, topic))
			}
		}
	}

	daily := req.DailyStudyHours
	if daily <= 0 {
		daily = s.defaultDailyHours
	}
	weekend := req.WeekendStudyHours
	if weekend <= 0 {
		weekend = s.defaultWeekendHours
	}
	includeBreaks := true
	if req.IncludeBreaks != nil {
		includeBreaks = *req.IncludeBreaks
	}

	return &planner.Params{
		ID:                uuid.NewString(),
		Title:             req.Title,
		ExamType:          examType,
		ExamDate:          examDate,
		StartDate:         startDate,
		StudentName:       req.StudentName,
		Email:             req.Email,
		TopicRatings:      models.TopicRatings(req.TopicRatings),
		SubjectPriorities: req.SubjectPriorities,
		DailyStudyHours:   daily,
		WeekendStudyHours: weekend,
		IncludeBreaks:     includeBreaks,
	}, nil
}
