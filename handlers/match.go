package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resumematch/backend/ai"
	"github.com/resumematch/backend/clean"
	"github.com/resumematch/backend/config"
	"github.com/resumematch/backend/extractor"
	"github.com/resumematch/backend/models"
	"github.com/resumematch/backend/utils"
)

// MatchHandler handles resume matching requests
type MatchHandler struct {
	client         *ai.Client
	maxUploadBytes int64
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(client *ai.Client, cfg *config.Config) *MatchHandler {
	return &MatchHandler{
		client:         client,
		maxUploadBytes: int64(cfg.MaxUploadMB) << 20,
	}
}

// MatchResume analyzes an uploaded resume against a job description
// @Summary Match resume against a job description
// @Description Extract text from an uploaded resume (pdf, docx or txt), run it through the AI matching model and return the recovered JSON analysis. When the model output cannot be parsed, the body is a failure record with error, original_string and error_details fields.
// @Tags Matching
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume file (pdf, docx or txt)"
// @Param job_description formData string false "Job description text"
// @Param experience_level formData string false "Experience level text"
// @Success 200 {object} map[string]interface{} "Analysis result or recovery failure record"
// @Failure 400 {object} models.ErrorResponse "Missing file or unsupported file type"
// @Failure 500 {object} models.ErrorResponse "Text extraction failed"
// @Failure 502 {object} models.ErrorResponse "AI matching service unavailable"
// @Router /match-resume [post]
func (h *MatchHandler) MatchResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Resume file is required",
			Code:  http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Resume file is too large",
			Code:  http.StatusBadRequest,
		})
		return
	}

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Failed to read resume file",
			Code:  http.StatusBadRequest,
		})
		return
	}

	text, err := extractor.Extract(buf.Bytes(), header.Filename)
	if err != nil {
		var unsupported *extractor.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Unsupported file type",
				Code:  http.StatusBadRequest,
			})
			return
		}
		log.Printf("[MatchHandler] extraction failed for %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to extract resume text",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	resumeText := utils.CollapseWhitespace(text)
	jobDescription := c.PostForm("job_description")
	experienceLevel := c.PostForm("experience_level")

	content, err := h.client.MatchResume(c.Request.Context(), resumeText, jobDescription, experienceLevel)
	if err != nil {
		log.Printf("[MatchHandler] matching request failed: %v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "AI matching service unavailable",
			Code:    http.StatusBadGateway,
			Details: err.Error(),
		})
		return
	}

	// Model output is best-effort JSON. Recovery failure is still a 200 so
	// callers can tell unparseable model output apart from a broken service.
	c.JSON(http.StatusOK, clean.JSON(content))
}
