package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightprep/studycal-api/internal/models"
	"github.com/brightprep/studycal-api/pkg/jobs"
	"github.com/brightprep/studycal-api/pkg/mailer"
)

type rendererStub struct {
	payload []byte
	err     error
}

func (r rendererStub) Render(program *models.StudyProgram) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.payload, nil
}

type storageStub struct {
	saved map[string][]byte
	err   error
}

func (s *storageStub) Save(filename string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[filename] = data
	return filename, nil
}

type signerStub struct {
	err error
}

func (s signerStub) Generate(programID, relPath string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "tok-" + programID, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), nil
}

type mailerStub struct {
	sent []mailer.Message
	err  error
}

func (m *mailerStub) Send(ctx context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func deliveredProgram() *models.StudyProgram {
	return &models.StudyProgram{
		ID:          "prog-1",
		Title:       "YKS Çalışma Programı",
		StudentName: "Ada",
		Email:       "ada@example.com",
		Weeks:       []models.Week{{WeekNumber: 1}},
	}
}

func newTestDeliveryService(store *programStoreStub, storage *storageStub, mail *mailerStub) *DeliveryService {
	return NewDeliveryService(store, rendererStub{payload: []byte("%PDF")}, rendererStub{payload: []byte("BEGIN:VCALENDAR")}, storage, signerStub{}, mail, nil, nil, "https://studycal.app")
}

func TestDeliveryProcessSendsLinks(t *testing.T) {
	store := &programStoreStub{items: map[string]*models.StudyProgram{"prog-1": deliveredProgram()}}
	storage := &storageStub{}
	mail := &mailerStub{}
	svc := newTestDeliveryService(store, storage, mail)

	err := svc.Process(context.Background(), jobs.Job{ID: "prog-1", Type: deliveryJobType})
	require.NoError(t, err)

	assert.Contains(t, storage.saved, "programs/prog-1/program.pdf")
	assert.Contains(t, storage.saved, "programs/prog-1/program.ics")

	require.Len(t, mail.sent, 1)
	msg := mail.sent[0]
	assert.Equal(t, "ada@example.com", msg.ToEmail)
	assert.Contains(t, msg.TextContent, "https://studycal.app/downloads/tok-prog-1")
	// Links only, never attachments.
	assert.NotContains(t, msg.TextContent, "%PDF")
}

func TestDeliveryProcessUnknownProgram(t *testing.T) {
	svc := newTestDeliveryService(&programStoreStub{}, &storageStub{}, &mailerStub{})

	err := svc.Process(context.Background(), jobs.Job{ID: "missing"})
	assert.Error(t, err)
}

func TestDeliveryProcessMailFailure(t *testing.T) {
	store := &programStoreStub{items: map[string]*models.StudyProgram{"prog-1": deliveredProgram()}}
	mail := &mailerStub{err: errors.New("smtp down")}
	svc := newTestDeliveryService(store, &storageStub{}, mail)

	err := svc.Process(context.Background(), jobs.Job{ID: "prog-1"})
	assert.Error(t, err)
}

func TestDeliveryDispatchRequiresQueue(t *testing.T) {
	svc := newTestDeliveryService(&programStoreStub{}, &storageStub{}, &mailerStub{})

	assert.Error(t, svc.Dispatch("prog-1"))

	queue := jobs.NewQueue("delivery", svc.Process, jobs.QueueConfig{Workers: 1})
	queue.Start(context.Background())
	defer queue.Stop()
	svc.SetQueue(queue)

	assert.NoError(t, svc.Dispatch("prog-1"))
}

func TestDeliveryRenderAndStoreFailures(t *testing.T) {
	store := &programStoreStub{}

	failingPDF := NewDeliveryService(store, rendererStub{err: errors.New("boom")}, rendererStub{}, &storageStub{}, signerStub{}, &mailerStub{}, nil, nil, "")
	_, err := failingPDF.RenderAndStore(deliveredProgram())
	assert.Error(t, err)

	failingStorage := NewDeliveryService(store, rendererStub{payload: []byte("x")}, rendererStub{payload: []byte("y")}, &storageStub{err: errors.New("disk full")}, signerStub{}, &mailerStub{}, nil, nil, "")
	_, err = failingStorage.RenderAndStore(deliveredProgram())
	assert.Error(t, err)
}
