package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"bloocareer_backend/internal/email"
	"bloocareer_backend/internal/logger"
	"bloocareer_backend/internal/models"
	"bloocareer_backend/internal/repositories"
	"bloocareer_backend/internal/services/dto"
	"bloocareer_backend/internal/storage"
	"bloocareer_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Attachment storage policies. One policy per deployment.
const (
	AttachmentModeReference = "reference"
	AttachmentModeInline    = "inline"
)

// CandidateService runs the submission ingestion pipeline and the
// read-only listing surface.
type CandidateService interface {
	// SubmitApplication accepts one multipart submission: validates the
	// files, normalizes the fields, persists the record, then sends the
	// staff notification. Persistence is the durability boundary, so a
	// notification failure is reported via Notified, never as an error.
	SubmitApplication(ctx context.Context, req *dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, error)

	// ListCandidates returns all applications, newest first.
	ListCandidates(ctx context.Context) ([]models.Candidate, error)

	// SendTestEmail fires a canned notification to verify the provider.
	SendTestEmail(ctx context.Context) error
}

// CandidateServiceConfig holds the pipeline settings.
type CandidateServiceConfig struct {
	MaxFileSize    int64
	AllowedTypes   []string
	AttachmentMode string

	FromEmail  string
	FromName   string
	StaffEmail string
	StaffName  string

	// NotifyTimeout bounds the notification dispatch so a stalled
	// provider cannot hold the request open.
	NotifyTimeout time.Duration
}

type candidateService struct {
	repo      repositories.CandidateRepository
	storage   storage.Storage
	provider  email.Provider
	templates *email.TemplateManager
	cfg       CandidateServiceConfig
}

func NewCandidateService(
	repo repositories.CandidateRepository,
	fileStorage storage.Storage,
	provider email.Provider,
	templates *email.TemplateManager,
	cfg CandidateServiceConfig,
) CandidateService {
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 10 * time.Second
	}
	if cfg.AttachmentMode == "" {
		cfg.AttachmentMode = AttachmentModeReference
	}
	return &candidateService{
		repo:      repo,
		storage:   fileStorage,
		provider:  provider,
		templates: templates,
		cfg:       cfg,
	}
}

func (s *candidateService) SubmitApplication(ctx context.Context, req *dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, error) {
	// 1. File acceptance: reject the whole request before any side effect.
	if err := s.validateFiles(req.Files); err != nil {
		return nil, err
	}

	// 2. Field normalization.
	dateNaissance, err := parseBirthDate(req.DateNaissance)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{
			"dateNaissance": "Must be a date in YYYY-MM-DD format",
		})
	}

	candidate := &models.Candidate{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    req.Phone,
		LinkedIn: req.LinkedIn,
		Message:  req.Message,
		Poste:    req.Poste,
		Languages: models.Languages{
			French:  req.FrenchLevel,
			English: req.EnglishLevel,
		},
		InterestedCountries: datatypes.NewJSONSlice(splitCountries(req.InterestedCountries)),
		DateNaissance:       dateNaissance,
		AcceptTerms:         parseAcceptTerms(req.AcceptTerms),
		Service:             req.Service,
		SubmittedAt:         time.Now(),
	}

	// 3. Attachment mapping, per the deployment's storage policy.
	attachments, err := s.storeFiles(ctx, candidate, req.Files)
	if err != nil {
		return nil, err
	}

	// 4. Record persistence: the durability boundary of the request.
	if err := s.repo.Save(ctx, candidate); err != nil {
		s.cleanupStoredFiles(ctx, candidate)
		return nil, apperrors.StorageError(err)
	}

	// 5-6. Notification composition and dispatch, best effort.
	notified := s.notify(ctx, candidate, attachments)

	return &dto.SubmitApplicationResponse{
		Message:   "Application submitted successfully! We'll contact you soon.",
		Candidate: candidate,
		Notified:  notified,
	}, nil
}

func (s *candidateService) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	candidates, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	for i := range candidates {
		if candidates[i].Files == nil {
			candidates[i].Files = []models.CandidateFile{}
		}
	}
	return candidates, nil
}

func (s *candidateService) SendTestEmail(ctx context.Context) error {
	htmlBody, err := s.templates.Render(email.TemplateTestEmail, map[string]string{
		"Timestamp": time.Now().Format(time.RFC1123),
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	msg := &email.Email{
		From:     s.cfg.FromEmail,
		FromName: s.cfg.FromName,
		To:       []string{s.cfg.StaffEmail},
		ToName:   s.cfg.StaffName,
		Subject:  "Test Email - Candidate Intake",
		HTMLBody: htmlBody,
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()

	if err := s.provider.Send(sendCtx, msg); err != nil {
		return apperrors.NotificationError(err)
	}
	return nil
}

// --- pipeline steps ---

func (s *candidateService) validateFiles(files []*multipart.FileHeader) error {
	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !s.typeAllowed(contentType) {
			return apperrors.NewFileTypeError(contentType)
		}
		if s.cfg.MaxFileSize > 0 && fh.Size > s.cfg.MaxFileSize {
			return apperrors.NewFileTooLargeError(fh.Filename, fh.Size, s.cfg.MaxFileSize)
		}
	}
	return nil
}

func (s *candidateService) typeAllowed(contentType string) bool {
	for _, allowed := range s.cfg.AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

// storeFiles maps each accepted upload onto a CandidateFile in the
// configured variant, preserving upload order. The raw bytes are
// returned for the notification attachments in both modes.
func (s *candidateService) storeFiles(ctx context.Context, candidate *models.Candidate, files []*multipart.FileHeader) ([]email.Attachment, error) {
	candidate.Files = make([]models.CandidateFile, 0, len(files))
	attachments := make([]email.Attachment, 0, len(files))

	for i, fh := range files {
		data, err := readFile(fh)
		if err != nil {
			s.cleanupStoredFiles(ctx, candidate)
			return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "upload",
				"Failed to read uploaded file", http.StatusInternalServerError)
		}

		contentType := fh.Header.Get("Content-Type")
		file := models.CandidateFile{
			Position:     i,
			OriginalName: fh.Filename,
			ContentType:  contentType,
		}

		switch s.cfg.AttachmentMode {
		case AttachmentModeInline:
			file.Data = data
		default:
			name := generateFileName(fh.Filename)
			if err := s.storage.Save(ctx, name, bytes.NewReader(data), contentType); err != nil {
				s.cleanupStoredFiles(ctx, candidate)
				return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "upload",
					"Failed to store uploaded file", http.StatusInternalServerError)
			}
			file.FileName = name
			file.Path = name
			if url, err := s.storage.GetURL(ctx, name); err == nil {
				file.URL = url
			}
		}

		candidate.Files = append(candidate.Files, file)
		attachments = append(attachments, email.Attachment{
			Name:        fh.Filename,
			Content:     data,
			ContentType: contentType,
		})
	}

	return attachments, nil
}

// cleanupStoredFiles removes files already written to storage when a
// later step fails, so rejected requests leave nothing behind.
func (s *candidateService) cleanupStoredFiles(ctx context.Context, candidate *models.Candidate) {
	if s.cfg.AttachmentMode != AttachmentModeReference {
		return
	}
	for _, f := range candidate.Files {
		if f.Path == "" {
			continue
		}
		if err := s.storage.Delete(ctx, f.Path); err != nil {
			logger.CtxWarn(ctx, "failed to clean up stored file", "path", f.Path, "error", err.Error())
		}
	}
}

func (s *candidateService) notify(ctx context.Context, candidate *models.Candidate, attachments []email.Attachment) bool {
	msg, err := s.composeNotification(candidate, attachments)
	if err != nil {
		logger.CtxWithError(ctx, "failed to compose notification email", err, "candidate_id", candidate.ID)
		return false
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()

	if err := s.provider.Send(sendCtx, msg); err != nil {
		logger.CtxWithError(ctx, "failed to send notification email", err,
			"candidate_id", candidate.ID,
			"provider", s.provider.Name(),
		)
		return false
	}

	return true
}

func (s *candidateService) composeNotification(candidate *models.Candidate, attachments []email.Attachment) (*email.Email, error) {
	data := email.ApplicationData{
		FullName:            candidate.FullName,
		Email:               candidate.Email,
		Phone:               candidate.Phone,
		LinkedIn:            candidate.LinkedIn,
		Poste:               candidate.Poste,
		FrenchLevel:         candidate.Languages.French,
		EnglishLevel:        candidate.Languages.English,
		InterestedCountries: candidate.InterestedCountries,
		Message:             candidate.Message,
		AcceptTerms:         candidate.AcceptTerms,
		Service:             candidate.Service,
		SubmittedAt:         candidate.SubmittedAt.Format(time.RFC1123),
		FileCount:           len(attachments),
	}
	if candidate.DateNaissance != nil {
		data.DateNaissance = candidate.DateNaissance.Format("2006-01-02")
	}

	htmlBody, err := s.templates.Render(email.TemplateApplicationReceived, data)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("New Application: %s", candidate.FullName)
	if candidate.Service != "" {
		subject = fmt.Sprintf("New Application: %s - %s", candidate.FullName, candidate.Service)
	}

	return &email.Email{
		From:        s.cfg.FromEmail,
		FromName:    s.cfg.FromName,
		To:          []string{s.cfg.StaffEmail},
		ToName:      s.cfg.StaffName,
		Subject:     subject,
		HTMLBody:    htmlBody,
		Attachments: attachments,
	}, nil
}

// --- normalization helpers ---

// splitCountries turns "A, B ,C" into ["A","B","C"]. Empty input yields
// an empty slice, never nil.
func splitCountries(input string) []string {
	countries := []string{}
	if strings.TrimSpace(input) == "" {
		return countries
	}
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			countries = append(countries, part)
		}
	}
	return countries
}

// parseBirthDate parses the optional date-of-birth field. An empty
// input is fine; anything unparseable is rejected rather than stored
// as a silently broken date.
func parseBirthDate(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, input); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unparseable date: %q", input)
}

// parseAcceptTerms maps the literal "true" to true; anything else,
// including an absent field, is false.
func parseAcceptTerms(input string) bool {
	return strings.TrimSpace(input) == "true"
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

// generateFileName builds a collision-free stored name, keeping only
// the original extension. Echoes the legacy timestamp-prefix scheme
// without trusting the client-supplied name.
func generateFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
