package gateway

import (
	"bytes"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/lexdraft/petition-orchestrator/internal/models"
)

// markdown renders template bodies for the preview endpoint.
var markdown = goldmark.New()

// TemplateRequest is the template create payload.
type TemplateRequest struct {
	Name        string `json:"name" binding:"required"`
	LegalArea   string `json:"legal_area"`
	Description string `json:"description"`
	Body        string `json:"body" binding:"required"`
}

// ListTemplates godoc
// @Summary List templates
// @Tags templates
// @Produce json
// @Success 200 {array} models.Template
// @Security BearerAuth
// @Router /templates [get]
func (h *Handler) ListTemplates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	templates, err := h.store.ListTemplates(c.Request.Context(), userID)
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to list templates","error":"%v","user_id":"%s"}`, err, userID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list templates", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, templates)
}

// CreateTemplate godoc
// @Summary Create template
// @Tags templates
// @Accept json
// @Produce json
// @Param request body TemplateRequest true "Template details"
// @Success 201 {object} models.Template
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /templates [post]
func (h *Handler) CreateTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	if req.LegalArea != "" {
		if _, ok := h.catalog.Area(req.LegalArea); !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Unknown legal area", Code: models.ErrCodeUnknownCatalog})
			return
		}
	}

	templateID, err := h.store.CreateTemplate(c.Request.Context(), userID, models.Template{
		Name:        req.Name,
		LegalArea:   req.LegalArea,
		Description: req.Description,
		Body:        req.Body,
	})
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to create template","error":"%v","user_id":"%s"}`, err, userID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create template", Code: models.ErrCodeInternalError})
		return
	}

	created, err := h.store.GetTemplate(c.Request.Context(), templateID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load created template", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetTemplate godoc
// @Summary Get template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} models.Template
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /templates/{id} [get]
func (h *Handler) GetTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid template ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	tpl, err := h.store.GetTemplate(c.Request.Context(), templateID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Template not found", Code: models.ErrCodeTemplateNotFound})
		return
	}

	c.JSON(http.StatusOK, tpl)
}

// UpdateTemplate godoc
// @Summary Update template
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body TemplateRequest true "Template details"
// @Success 200 {object} models.Template
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /templates/{id} [put]
func (h *Handler) UpdateTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid template ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	if req.LegalArea != "" {
		if _, ok := h.catalog.Area(req.LegalArea); !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Unknown legal area", Code: models.ErrCodeUnknownCatalog})
			return
		}
	}

	update := models.Template{
		Name:        req.Name,
		LegalArea:   req.LegalArea,
		Description: req.Description,
		Body:        req.Body,
	}
	if err := h.store.UpdateTemplate(c.Request.Context(), templateID, userID, update); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Template not found", Code: models.ErrCodeTemplateNotFound})
		return
	}

	updated, err := h.store.GetTemplate(c.Request.Context(), templateID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load updated template", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// PreviewTemplate godoc
// @Summary Preview template
// @Description Render the template's markdown body to HTML
// @Tags templates
// @Produce html
// @Param id path string true "Template ID"
// @Success 200 {string} string "Rendered HTML"
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /templates/{id}/preview [get]
func (h *Handler) PreviewTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid template ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	tpl, err := h.store.GetTemplate(c.Request.Context(), templateID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Template not found", Code: models.ErrCodeTemplateNotFound})
		return
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(tpl.Body), &buf); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to render template", Code: models.ErrCodeInternalError})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// DeleteTemplate godoc
// @Summary Delete template
// @Tags templates
// @Param id path string true "Template ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /templates/{id} [delete]
func (h *Handler) DeleteTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid template ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	if err := h.store.DeleteTemplate(c.Request.Context(), templateID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Template not found", Code: models.ErrCodeTemplateNotFound})
		return
	}

	c.Status(http.StatusNoContent)
}

// OfficeConfigRequest is the office settings payload.
type OfficeConfigRequest struct {
	OfficeName string `json:"office_name"`
	OABNumber  string `json:"oab_number"`
	Letterhead string `json:"letterhead"`
	Footer     string `json:"footer"`
	City       string `json:"city"`
}

// GetOfficeConfig godoc
// @Summary Office settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.OfficeConfig
// @Security BearerAuth
// @Router /settings/office [get]
func (h *Handler) GetOfficeConfig(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cfg, err := h.store.GetOfficeConfig(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load office settings", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// UpdateOfficeConfig godoc
// @Summary Update office settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body OfficeConfigRequest true "Office settings"
// @Success 200 {object} models.OfficeConfig
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /settings/office [put]
func (h *Handler) UpdateOfficeConfig(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req OfficeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	if strings.TrimSpace(req.OfficeName) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Office name is required", Code: models.ErrCodeValidationFailed})
		return
	}

	cfg := models.OfficeConfig{
		OwnerID:    userID,
		OfficeName: req.OfficeName,
		OABNumber:  req.OABNumber,
		Letterhead: req.Letterhead,
		Footer:     req.Footer,
		City:       req.City,
	}
	if err := h.store.UpsertOfficeConfig(c.Request.Context(), cfg); err != nil {
		log.Printf(`{"level":"error","message":"Failed to save office settings","error":"%v","user_id":"%s"}`, err, userID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save office settings", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, cfg)
}
