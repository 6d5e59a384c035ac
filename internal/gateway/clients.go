package gateway

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lexdraft/petition-orchestrator/internal/models"
	"github.com/lexdraft/petition-orchestrator/internal/store"
)

// ClientRequest is the client create/update payload. LegacyName covers
// payloads from older frontends that still send "nome"; it is normalized
// into Name once, here at the edge.
type ClientRequest struct {
	Name       string `json:"name"`
	LegacyName string `json:"nome"`
	Document   string `json:"document"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

func (r ClientRequest) toRecord() models.ClientRecord {
	return models.ClientRecord{
		Name:     store.NormalizeClientName(r.Name, r.LegacyName),
		Document: r.Document,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
	}
}

// ListClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {array} models.ClientRecord
// @Security BearerAuth
// @Router /clients [get]
func (h *Handler) ListClients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clients, err := h.store.ListClients(c.Request.Context(), userID)
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to list clients","error":"%v","user_id":"%s"}`, err, userID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list clients", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, clients)
}

// CreateClient godoc
// @Summary Create client
// @Tags clients
// @Accept json
// @Produce json
// @Param request body ClientRequest true "Client details"
// @Success 201 {object} models.ClientRecord
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *Handler) CreateClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	record := req.toRecord()
	if strings.TrimSpace(record.Name) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Client name is required", Code: models.ErrCodeValidationFailed})
		return
	}

	clientID, err := h.store.CreateClient(c.Request.Context(), userID, record)
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to create client","error":"%v","user_id":"%s"}`, err, userID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create client", Code: models.ErrCodeInternalError})
		return
	}

	created, err := h.store.GetClient(c.Request.Context(), clientID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load created client", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetClient godoc
// @Summary Get client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} models.ClientRecord
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *Handler) GetClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid client ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	client, err := h.store.GetClient(c.Request.Context(), clientID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Client not found", Code: models.ErrCodeClientNotFound})
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient godoc
// @Summary Update client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body ClientRequest true "Client details"
// @Success 200 {object} models.ClientRecord
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *Handler) UpdateClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid client ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	record := req.toRecord()
	if strings.TrimSpace(record.Name) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Client name is required", Code: models.ErrCodeValidationFailed})
		return
	}

	if err := h.store.UpdateClient(c.Request.Context(), clientID, userID, record); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Client not found", Code: models.ErrCodeClientNotFound})
		return
	}

	updated, err := h.store.GetClient(c.Request.Context(), clientID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load updated client", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AdversePartyRequest is the opposing-party create payload.
type AdversePartyRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Address  string `json:"address"`
}

// ListAdverseParties godoc
// @Summary List adverse parties for a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} models.AdversePartyRecord
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/adverse-parties [get]
func (h *Handler) ListAdverseParties(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid client ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	if _, err := h.store.GetClient(c.Request.Context(), clientID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Client not found", Code: models.ErrCodeClientNotFound})
		return
	}

	parties, err := h.store.ListAdverseParties(c.Request.Context(), clientID, userID)
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to list adverse parties","error":"%v","client_id":"%s"}`, err, clientID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list adverse parties", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, parties)
}

// AddAdverseParty godoc
// @Summary Add an adverse party to a client
// @Description Records an opposing party on the client's case file; duplicates are permitted
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body AdversePartyRequest true "Adverse party details"
// @Success 201 {object} models.AdversePartyRecord
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/adverse-parties [post]
func (h *Handler) AddAdverseParty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid client ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	var req AdversePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Adverse party name is required", Code: models.ErrCodeValidationFailed})
		return
	}

	if _, err := h.store.GetClient(c.Request.Context(), clientID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Client not found", Code: models.ErrCodeClientNotFound})
		return
	}

	record := models.AdversePartyRecord{
		Name:     strings.TrimSpace(req.Name),
		Document: req.Document,
		Address:  req.Address,
	}

	partyID, err := h.store.AddAdverseParty(c.Request.Context(), clientID, userID, record)
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to add adverse party","error":"%v","client_id":"%s"}`, err, clientID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to add adverse party", Code: models.ErrCodeInternalError})
		return
	}

	record.ID = partyID
	record.ClientID = clientID
	record.OwnerID = userID

	c.JSON(http.StatusCreated, record)
}

// DeleteAdverseParty godoc
// @Summary Remove an adverse party from a client
// @Tags clients
// @Param id path string true "Client ID"
// @Param partyId path string true "Adverse party ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/adverse-parties/{partyId} [delete]
func (h *Handler) DeleteAdverseParty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid client ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	partyID, err := uuid.Parse(c.Param("partyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid adverse party ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	if err := h.store.DeleteAdverseParty(c.Request.Context(), partyID, clientID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Adverse party not found", Code: models.ErrCodeClientNotFound})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteClient godoc
// @Summary Delete client
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *Handler) DeleteClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid client ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	if err := h.store.DeleteClient(c.Request.Context(), clientID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Client not found", Code: models.ErrCodeClientNotFound})
		return
	}

	c.Status(http.StatusNoContent)
}
