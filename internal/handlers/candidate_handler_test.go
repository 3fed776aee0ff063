package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"bloocareer_backend/internal/models"
	"bloocareer_backend/internal/services/dto"
	"bloocareer_backend/internal/validator"
	"bloocareer_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCandidateService lets the handler tests script the service layer.
type fakeCandidateService struct {
	submitRes  *dto.SubmitApplicationResponse
	submitErr  error
	lastSubmit *dto.SubmitApplicationRequest

	listRes []models.Candidate
	listErr error

	testErr error
}

func (s *fakeCandidateService) SubmitApplication(ctx context.Context, req *dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, error) {
	s.lastSubmit = req
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.submitRes, nil
}

func (s *fakeCandidateService) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listRes, nil
}

func (s *fakeCandidateService) SendTestEmail(ctx context.Context) error {
	return s.testErr
}

func setupRouter(svc *fakeCandidateService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	base := NewBaseHandler(validator.New())
	handler := NewCandidateHandler(base, svc, 60<<20)
	health := NewHealthHandler("smtp")

	root := r.Group("/")
	health.RegisterRoutes(root)
	handler.RegisterRoutes(root)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, data := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
		h.Set("Content-Type", "application/pdf")
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSubmitApplication_Success(t *testing.T) {
	candidate := &models.Candidate{FullName: "Amira Ben Salah", Email: "amira@example.com"}
	candidate.ID = "cand-1"
	svc := &fakeCandidateService{
		submitRes: &dto.SubmitApplicationResponse{
			Message:   "Application submitted successfully! We'll contact you soon.",
			Candidate: candidate,
			Notified:  true,
		},
	}
	router := setupRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"fullName":            "Amira Ben Salah",
		"email":               "amira@example.com",
		"interestedCountries": "Canada, Germany",
		"acceptTerms":         "true",
	}, map[string][]byte{
		"cv.pdf": []byte("%PDF"),
	})

	req := httptest.NewRequest(http.MethodPost, "/send-email", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res dto.SubmitApplicationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Application submitted successfully! We'll contact you soon.", res.Message)
	assert.True(t, res.Notified)
	require.NotNil(t, res.Candidate)
	assert.Equal(t, "cand-1", res.Candidate.ID)

	// The handler passed the bound form and the file headers through.
	require.NotNil(t, svc.lastSubmit)
	assert.Equal(t, "Amira Ben Salah", svc.lastSubmit.FullName)
	assert.Equal(t, "Canada, Germany", svc.lastSubmit.InterestedCountries)
	assert.Equal(t, "true", svc.lastSubmit.AcceptTerms)
	require.Len(t, svc.lastSubmit.Files, 1)
	assert.Equal(t, "cv.pdf", svc.lastSubmit.Files[0].Filename)
}

func TestSubmitApplication_MissingRequiredFields(t *testing.T) {
	svc := &fakeCandidateService{}
	router := setupRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"email": "amira@example.com",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/send-email", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.lastSubmit)

	var res apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	assert.Equal(t, apperrors.CodeValidationFailed, res.Error.Code)
}

func TestSubmitApplication_NoFilesIsValid(t *testing.T) {
	svc := &fakeCandidateService{
		submitRes: &dto.SubmitApplicationResponse{
			Message:   "Application submitted successfully! We'll contact you soon.",
			Candidate: &models.Candidate{FullName: "No Files"},
		},
	}
	router := setupRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"fullName": "No Files",
		"email":    "nofiles@example.com",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/send-email", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastSubmit)
	assert.Empty(t, svc.lastSubmit.Files)
}

func TestSubmitApplication_ServiceErrorMapped(t *testing.T) {
	svc := &fakeCandidateService{
		submitErr: apperrors.NewFileTypeError("text/plain"),
	}
	router := setupRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"fullName": "Amira Ben Salah",
		"email":    "amira@example.com",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/send-email", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var res apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	assert.Equal(t, apperrors.CodeFileTypeNotAllowed, res.Error.Code)
}

func TestListCandidates(t *testing.T) {
	now := time.Now()
	svc := &fakeCandidateService{
		listRes: []models.Candidate{
			{FullName: "Third", SubmittedAt: now, Files: []models.CandidateFile{}},
			{FullName: "Second", SubmittedAt: now.Add(-time.Minute), Files: []models.CandidateFile{}},
			{FullName: "First", SubmittedAt: now.Add(-2 * time.Minute), Files: []models.CandidateFile{}},
		},
	}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var listed []models.Candidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, "Third", listed[0].FullName)
	assert.Equal(t, "First", listed[2].FullName)
	// Files serializes as a list even when empty.
	assert.Contains(t, w.Body.String(), `"files":[]`)
}

func TestListCandidates_StorageError(t *testing.T) {
	svc := &fakeCandidateService{
		listErr: apperrors.StorageError(errors.New("connection refused")),
	}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var res apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	assert.Equal(t, apperrors.CodeDatabaseError, res.Error.Code)
}

func TestSendTestEmail(t *testing.T) {
	router := setupRouter(&fakeCandidateService{})

	req := httptest.NewRequest(http.MethodGet, "/test-email", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Test email sent")
}

func TestSendTestEmail_ProviderFailure(t *testing.T) {
	router := setupRouter(&fakeCandidateService{
		testErr: apperrors.NotificationError(errors.New("bad credentials")),
	})

	req := httptest.NewRequest(http.MethodGet, "/test-email", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var res apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	assert.Equal(t, apperrors.CodeExternalServiceError, res.Error.Code)
}

func TestHealthStatus(t *testing.T) {
	router := setupRouter(&fakeCandidateService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "candidate-intake-backend", payload["service"])
	assert.Equal(t, "smtp", payload["emailProvider"])
	assert.NotEmpty(t, payload["timestamp"])
}
