package gateway

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lexdraft/petition-orchestrator/internal/formatter"
	"github.com/lexdraft/petition-orchestrator/internal/models"
)

// ListDocuments godoc
// @Summary List generated documents
// @Description Summaries only; document bodies come from the detail endpoint
// @Tags documents
// @Produce json
// @Success 200 {array} models.Document
// @Security BearerAuth
// @Router /documents [get]
func (h *Handler) ListDocuments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	docs, err := h.store.ListDocuments(c.Request.Context(), userID)
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to list documents","error":"%v","user_id":"%s"}`, err, userID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list documents", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, docs)
}

// GetDocument godoc
// @Summary Get document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} models.Document
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *Handler) GetDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid document ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	doc, err := h.store.GetDocument(c.Request.Context(), documentID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Document not found", Code: models.ErrCodeDocumentNotFound})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// UpdateDocumentRequest carries an edited document body.
type UpdateDocumentRequest struct {
	RawText string `json:"raw_text" binding:"required"`
}

// UpdateDocument godoc
// @Summary Update document text
// @Description Replace the document body with an edited version; the formatted HTML is rebuilt from the new text
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body UpdateDocumentRequest true "Edited text"
// @Success 200 {object} models.Document
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *Handler) UpdateDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid document ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RawText) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Document text is required", Code: models.ErrCodeValidationFailed})
		return
	}

	formatted := formatter.FormatHTML(req.RawText)
	if err := h.store.UpdateDocumentText(c.Request.Context(), documentID, userID, req.RawText, formatted); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Document not found", Code: models.ErrCodeDocumentNotFound})
		return
	}

	doc, err := h.store.GetDocument(c.Request.Context(), documentID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load updated document", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// DeleteDocument godoc
// @Summary Delete document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *Handler) DeleteDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid document ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	if err := h.store.DeleteDocument(c.Request.Context(), documentID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Document not found", Code: models.ErrCodeDocumentNotFound})
		return
	}

	c.Status(http.StatusNoContent)
}
