package handlers

import (
	"net/http"

	"bloocareer_backend/internal/services"
	"bloocareer_backend/internal/services/dto"
	"bloocareer_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// CandidateHandler serves the public application intake endpoints.
type CandidateHandler struct {
	*BaseHandler
	candidateService services.CandidateService
	maxRequestSize   int64
}

func NewCandidateHandler(base *BaseHandler, candidateService services.CandidateService, maxRequestSize int64) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      base,
		candidateService: candidateService,
		maxRequestSize:   maxRequestSize,
	}
}

func (h *CandidateHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Route names are part of the public contract consumed by the
	// recruitment site frontend; do not rename them.
	r.POST("/send-email", h.SubmitApplication)
	r.GET("/candidates", h.ListCandidates)
	r.GET("/test-email", h.SendTestEmail)
}

// SubmitApplication ingests one multipart application form.
func (h *CandidateHandler) SubmitApplication(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxRequestSize); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
		return
	}

	var req dto.SubmitApplicationRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	// Zero files is a valid submission; the field may be absent entirely.
	if c.Request.MultipartForm != nil {
		req.Files = c.Request.MultipartForm.File["files"]
	}

	response, err := h.candidateService.SubmitApplication(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListCandidates returns every stored application, newest first.
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.candidateService.ListCandidates(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// SendTestEmail verifies the notification provider configuration.
func (h *CandidateHandler) SendTestEmail(c *gin.Context) {
	if err := h.candidateService.SendTestEmail(c.Request.Context()); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Test email sent! Check the staff inbox.",
	})
}
