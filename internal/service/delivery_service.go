package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/brightprep/studycal-api/internal/dto"
	"github.com/brightprep/studycal-api/internal/models"
	"github.com/brightprep/studycal-api/pkg/jobs"
	"github.com/brightprep/studycal-api/pkg/mailer"
)

type programRenderer interface {
	Render(program *models.StudyProgram) ([]byte, error)
}

type artifactStorage interface {
	Save(filename string, data []byte) (string, error)
}

type downloadSigner interface {
	Generate(programID, relPath string) (string, time.Time, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

const deliveryJobType = "program_delivery"

// DeliveryService renders PDF/ICS artifacts for a program and emails the
// student signed download links. Attachments are deliberately avoided; the
// links keep mail size down and let expired programs age out of storage.
type DeliveryService struct {
	programs programStore
	pdf      programRenderer
	ics      programRenderer
	storage  artifactStorage
	signer   downloadSigner
	mail     mailer.Mailer
	queue    jobDispatcher
	metrics  *MetricsService
	logger   *zap.Logger

	publicBaseURL string
}

// NewDeliveryService constructs the delivery service.
func NewDeliveryService(programs programStore, pdf, ics programRenderer, storage artifactStorage, signer downloadSigner, mail mailer.Mailer, metrics *MetricsService, logger *zap.Logger, publicBaseURL string) *DeliveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveryService{
		programs:      programs,
		pdf:           pdf,
		ics:           ics,
		storage:       storage,
		signer:        signer,
		mail:          mail,
		metrics:       metrics,
		logger:        logger,
		publicBaseURL: publicBaseURL,
	}
}

// SetQueue wires the dispatch queue. The queue's handler is this service's
// Process method, so wiring happens after construction.
func (s *DeliveryService) SetQueue(queue jobDispatcher) {
	s.queue = queue
}

// Dispatch enqueues an async delivery for the given program.
func (s *DeliveryService) Dispatch(programID string) error {
	if s.queue == nil {
		return fmt.Errorf("delivery queue not configured")
	}
	return s.queue.Enqueue(jobs.Job{ID: programID, Type: deliveryJobType})
}

// Process is the queue handler: render, store, sign, email.
func (s *DeliveryService) Process(ctx context.Context, job jobs.Job) error {
	program, err := s.programs.Get(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("load program for delivery: %w", err)
	}

	links, err := s.RenderAndStore(program)
	if err != nil {
		s.recordOutcome(false)
		return err
	}

	if err := s.sendEmail(ctx, program, links); err != nil {
		s.recordOutcome(false)
		return err
	}

	s.recordOutcome(true)
	s.logger.Info("program delivered",
		zap.String("program_id", program.ID),
		zap.String("email", program.Email),
	)
	return nil
}

// RenderAndStore produces both artifacts and returns signed download links.
// It is also used synchronously by the download handler when artifacts are
// requested before delivery ran.
func (s *DeliveryService) RenderAndStore(program *models.StudyProgram) (*dto.DownloadLinks, error) {
	pdfBytes, err := s.pdf.Render(program)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	icsBytes, err := s.ics.Render(program)
	if err != nil {
		return nil, fmt.Errorf("render ics: %w", err)
	}

	pdfPath := fmt.Sprintf("programs/%s/program.pdf", program.ID)
	icsPath := fmt.Sprintf("programs/%s/program.ics", program.ID)
	if _, err := s.storage.Save(pdfPath, pdfBytes); err != nil {
		return nil, fmt.Errorf("store pdf: %w", err)
	}
	if _, err := s.storage.Save(icsPath, icsBytes); err != nil {
		return nil, fmt.Errorf("store ics: %w", err)
	}

	pdfToken, expiresAt, err := s.signer.Generate(program.ID, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("sign pdf link: %w", err)
	}
	icsToken, _, err := s.signer.Generate(program.ID, icsPath)
	if err != nil {
		return nil, fmt.Errorf("sign ics link: %w", err)
	}

	return &dto.DownloadLinks{
		PDF:       fmt.Sprintf("%s/downloads/%s", s.publicBaseURL, pdfToken),
		ICS:       fmt.Sprintf("%s/downloads/%s", s.publicBaseURL, icsToken),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *DeliveryService) sendEmail(ctx context.Context, program *models.StudyProgram, links *dto.DownloadLinks) error {
	text := fmt.Sprintf(
		"Merhaba %s,\n\n%s hazır!\n\nPDF: %s\nTakvim (ICS): %s\n\nBağlantılar %s tarihine kadar geçerlidir.\n\nBaşarılar!",
		program.StudentName, program.Title, links.PDF, links.ICS,
		links.ExpiresAt.Format("02.01.2006"),
	)
	html := fmt.Sprintf(
		`<p>Merhaba %s,</p><p><strong>%s</strong> hazır!</p><p><a href="%s">PDF olarak indir</a><br><a href="%s">Takvimine ekle (ICS)</a></p><p>Bağlantılar %s tarihine kadar geçerlidir.</p><p>Başarılar!</p>`,
		program.StudentName, program.Title, links.PDF, links.ICS,
		links.ExpiresAt.Format("02.01.2006"),
	)

	msg := mailer.Message{
		ToName:      program.StudentName,
		ToEmail:     program.Email,
		Subject:     program.Title,
		TextContent: text,
		HTMLContent: html,
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("email program %s: %w", program.ID, err)
	}
	return nil
}

func (s *DeliveryService) recordOutcome(sent bool) {
	if s.metrics != nil {
		s.metrics.RecordDelivery(sent)
	}
}
