package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grindboard/practice-service/internal/services"
	"github.com/grindboard/practice-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
	exportService  services.ExportService
}

func NewAttemptHandler(
	attemptService services.AttemptService,
	exportService services.ExportService,
	logger utils.Logger,
) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
		exportService:  exportService,
	}
}

// LogAttempt records a practice session
// @Summary Log attempt
// @Description Records a session against a question. The question does not have to exist.
// @Tags attempts
// @Accept json
// @Produce json
// @Param attempt body services.LogAttemptRequest true "Attempt data"
// @Success 201 {object} models.EnrichedAttempt
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attempts [post]
func (h *AttemptHandler) LogAttempt(c *gin.Context) {
	h.LogRequest(c, "Logging attempt")

	var req services.LogAttemptRequest
	if !h.bindJSON(c, &req) {
		return
	}

	attempt, err := h.attemptService.Log(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attempt)
}

// GetAttempt returns one attempt joined with its question
// @Summary Get attempt
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} models.EnrichedAttempt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Getting attempt", "attempt_id", id)

	attempt, err := h.attemptService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// UpdateAttempt changes time spent, result and notes
// @Summary Update attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Param attempt body services.UpdateAttemptRequest true "Attempt data"
// @Success 200 {object} models.EnrichedAttempt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id} [put]
func (h *AttemptHandler) UpdateAttempt(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Updating attempt", "attempt_id", id)

	var req services.UpdateAttemptRequest
	if !h.bindJSON(c, &req) {
		return
	}

	attempt, err := h.attemptService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// DeleteAttempt removes one attempt
// @Summary Delete attempt
// @Tags attempts
// @Param id path string true "Attempt ID"
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id} [delete]
func (h *AttemptHandler) DeleteAttempt(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting attempt", "attempt_id", id)

	if err := h.attemptService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAttempts lists the practice log, newest first
// @Summary List attempts
// @Tags attempts
// @Produce json
// @Param questionId query string false "Question ID"
// @Param result query string false "Solved, Unsolved or Partial"
// @Param company query string false "Comma-separated companies of the question"
// @Param topic query string false "Comma-separated topics of the question"
// @Param difficulty query string false "Difficulty of the question"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 50)"
// @Success 200 {object} services.Paginated[models.EnrichedAttempt]
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attempts [get]
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	h.LogRequest(c, "Listing attempts")

	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	response, err := h.attemptService.List(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExportAttempts downloads every matching attempt as an xlsx workbook
// @Summary Export attempts
// @Tags attempts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attempts/export [get]
func (h *AttemptHandler) ExportAttempts(c *gin.Context) {
	h.LogRequest(c, "Exporting attempts")

	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	// Buffered so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := h.exportService.WriteWorkbook(c.Request.Context(), &buf, query); err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attempts-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
