package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightprep/studycal-api/internal/dto"
	"github.com/brightprep/studycal-api/internal/models"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
	"github.com/brightprep/studycal-api/pkg/response"
)

type programService interface {
	Generate(ctx context.Context, req dto.GenerateProgramRequest) (*models.StudyProgram, error)
	Get(ctx context.Context, id string) (*models.StudyProgram, error)
	Delete(ctx context.Context, id string) error
}

type linkBuilder interface {
	RenderAndStore(program *models.StudyProgram) (*dto.DownloadLinks, error)
}

// ProgramHandler exposes program generation and retrieval endpoints.
type ProgramHandler struct {
	service programService
	links   linkBuilder
}

// NewProgramHandler builds a new handler. The link builder is optional; when
// absent, responses omit download links.
func NewProgramHandler(service programService, links linkBuilder) *ProgramHandler {
	return &ProgramHandler{service: service, links: links}
}

// Generate godoc
// @Summary Generate a study program
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.GenerateProgramRequest true "Generation request"
// @Success 201 {object} response.Envelope
// @Router /programs [post]
func (h *ProgramHandler) Generate(c *gin.Context) {
	var req dto.GenerateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	program, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ProgramResponse{Program: program, Downloads: h.buildLinks(program)})
}

// Get godoc
// @Summary Get a program by id
// @Tags Programs
// @Produce json
// @Param id path string true "Program id"
// @Success 200 {object} response.Envelope
// @Router /programs/{id} [get]
func (h *ProgramHandler) Get(c *gin.Context) {
	program, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ProgramResponse{Program: program, Downloads: h.buildLinks(program)}, nil)
}

// Summary godoc
// @Summary Get a program summary by id
// @Tags Programs
// @Produce json
// @Param id path string true "Program id"
// @Success 200 {object} response.Envelope
// @Router /programs/{id}/summary [get]
func (h *ProgramHandler) Summary(c *gin.Context) {
	program, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ProgramSummaryResponse{
		ID:          program.ID,
		Title:       program.Title,
		ExamType:    program.ExamType,
		ExamDate:    program.ExamDate,
		StudentName: program.StudentName,
		TotalWeeks:  program.TotalWeeks,
		CreatedAt:   program.CreatedAt,
	}, nil)
}

// Delete godoc
// @Summary Delete a program
// @Tags Programs
// @Param id path string true "Program id"
// @Success 204
// @Router /programs/{id} [delete]
func (h *ProgramHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if claims := claimsFromContext(c); claims != nil {
		program, err := h.service.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		if program.Email != claims.Email {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "program belongs to another account"))
			return
		}
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ProgramHandler) buildLinks(program *models.StudyProgram) *dto.DownloadLinks {
	if h.links == nil {
		return nil
	}
	links, err := h.links.RenderAndStore(program)
	if err != nil {
		return nil
	}
	return links
}
