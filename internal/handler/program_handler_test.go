package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightprep/studycal-api/internal/dto"
	"github.com/brightprep/studycal-api/internal/middleware"
	"github.com/brightprep/studycal-api/internal/models"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
	"github.com/brightprep/studycal-api/pkg/response"
)

type programServiceMock struct {
	program *models.StudyProgram
	err     error
	deleted []string
}

func (m *programServiceMock) Generate(ctx context.Context, req dto.GenerateProgramRequest) (*models.StudyProgram, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.program, nil
}

func (m *programServiceMock) Get(ctx context.Context, id string) (*models.StudyProgram, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.program, nil
}

func (m *programServiceMock) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func testProgram() *models.StudyProgram {
	return &models.StudyProgram{
		ID:       "prog-1",
		Title:    "YKS Çalışma Programı",
		ExamType: "YKS",
		Weeks:    []models.Week{{WeekNumber: 1}},
	}
}

func TestProgramHandlerGenerate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProgramHandler(&programServiceMock{program: testProgram()}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.GenerateProgramRequest{
		ExamType:    "YKS",
		ExamDate:    "2026-06-20",
		StudentName: "Ada",
		Email:       "ada@example.com",
	})
	req, _ := http.NewRequest(http.MethodPost, "/programs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Generate(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
}

func TestProgramHandlerGenerateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProgramHandler(&programServiceMock{}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/programs", bytes.NewReader([]byte(`not-json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Generate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgramHandlerGenerateValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProgramHandler(&programServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "unknown exam type")}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.GenerateProgramRequest{ExamType: "SAT"})
	req, _ := http.NewRequest(http.MethodPost, "/programs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Generate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgramHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProgramHandler(&programServiceMock{err: appErrors.ErrNotFound}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/programs/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgramHandlerSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProgramHandler(&programServiceMock{program: testProgram()}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/programs/prog-1/summary", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "prog-1"}}

	handler.Summary(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	payload, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var summary dto.ProgramSummaryResponse
	require.NoError(t, json.Unmarshal(payload, &summary))
	assert.Equal(t, "prog-1", summary.ID)
	assert.Equal(t, "YKS", summary.ExamType)
	assert.NotContains(t, w.Body.String(), "weeks")
}

func TestProgramHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &programServiceMock{}
	handler := NewProgramHandler(mock, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/programs/prog-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "prog-1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"prog-1"}, mock.deleted)
}

func TestProgramHandlerDeleteForbiddenForOtherAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	program := testProgram()
	program.Email = "owner@example.com"
	mock := &programServiceMock{program: program}
	handler := NewProgramHandler(mock, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/programs/prog-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "prog-1"}}
	c.Set(middleware.ContextUserKey, &middleware.IdentityClaims{Email: "intruder@example.com"})

	handler.Delete(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, mock.deleted)
}

func TestProgramHandlerDeleteAllowedForOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	program := testProgram()
	program.Email = "owner@example.com"
	mock := &programServiceMock{program: program}
	handler := NewProgramHandler(mock, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/programs/prog-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "prog-1"}}
	c.Set(middleware.ContextUserKey, &middleware.IdentityClaims{Email: "owner@example.com"})

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"prog-1"}, mock.deleted)
}
