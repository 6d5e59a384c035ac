package gateway

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/lexdraft/petition-orchestrator/internal/ai"
	"github.com/lexdraft/petition-orchestrator/internal/auth"
	"github.com/lexdraft/petition-orchestrator/internal/catalog"
	"github.com/lexdraft/petition-orchestrator/internal/export"
	"github.com/lexdraft/petition-orchestrator/internal/formatter"
	"github.com/lexdraft/petition-orchestrator/internal/generation"
	"github.com/lexdraft/petition-orchestrator/internal/models"
	"github.com/lexdraft/petition-orchestrator/internal/store"
	"github.com/lexdraft/petition-orchestrator/internal/wizard"
)

// Handler handles HTTP requests for the gateway layer
type Handler struct {
	store       *store.Store
	generations *generation.Service
	jwtManager  *auth.JWTManager
	catalog     *catalog.Catalog
	exporter    *export.Client
	generator   ai.TextGenerator
	pool        *pgxpool.Pool
}

// NewHandler creates a new gateway handler
func NewHandler(st *store.Store, generations *generation.Service, jwtManager *auth.JWTManager, cat *catalog.Catalog, exporter *export.Client, generator ai.TextGenerator, pool *pgxpool.Pool) *Handler {
	return &Handler{
		store:       st,
		generations: generations,
		jwtManager:  jwtManager,
		catalog:     cat,
		exporter:    exporter,
		generator:   generator,
		pool:        pool,
	}
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDVal, exists := c.Get(auth.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "User not authenticated", Code: models.ErrCodeUnauthorized})
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDVal.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid user ID", Code: models.ErrCodeUnauthorized})
		return uuid.Nil, false
	}
	return userID, true
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string          `json:"token"`
	User  models.UserInfo `json:"user"`
}

// Login godoc
// @Summary User login
// @Description Authenticate a lawyer account and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	var user models.User
	err := h.pool.QueryRow(c.Request.Context(),
		`SELECT id, name, email, oab_number, hashed_password, created_at FROM users WHERE email = $1`,
		req.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.OABNumber, &user.HashedPassword, &user.CreatedAt)

	if err != nil {
		log.Printf(`{"level":"warn","message":"User not found","email":"%s"}`, req.Email)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password", Code: models.ErrCodeUnauthorized})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		log.Printf(`{"level":"warn","message":"Invalid password","email":"%s"}`, req.Email)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password", Code: models.ErrCodeUnauthorized})
		return
	}

	token, err := h.jwtManager.GenerateToken(
		c.Request.Context(),
		user.ID,
		user.Email,
		user.OABNumber,
		[]string{"lawyer"},
		24*time.Hour,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  user.ToUserInfo(),
	})
}

// GetCatalog godoc
// @Summary Legal-area catalog
// @Description List the configured legal areas and their piece types
// @Tags catalog
// @Produce json
// @Success 200 {object} catalog.Catalog
// @Security BearerAuth
// @Router /catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog)
}

// StartGenerationRequest carries the wizard state a generation starts from.
type StartGenerationRequest struct {
	State wizard.State `json:"state"`
}

// StartGenerationResponse identifies the session driving the attempt.
type StartGenerationResponse struct {
	SessionID    string `json:"session_id"`
	Completeness int    `json:"completeness"`
}

// StartGeneration godoc
// @Summary Start a generation session
// @Description Start generating a petition from the posted wizard state. A start while the user's session is already generating returns the running session unchanged.
// @Tags generations
// @Accept json
// @Produce json
// @Param request body StartGenerationRequest true "Wizard state"
// @Success 202 {object} StartGenerationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /generations [post]
func (h *Handler) StartGeneration(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req StartGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	st := req.State
	if st.LegalArea != "" && !h.catalog.Valid(st.LegalArea, st.PieceType.Name) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Unknown legal area or piece type",
			Code:  models.ErrCodeUnknownCatalog,
			Details: map[string]string{
				"legal_area": st.LegalArea,
				"piece_type": st.PieceType.Name,
			},
		})
		return
	}

	sessionID, err := h.generations.Start(c.Request.Context(), userID, st)
	if err != nil {
		if errors.Is(err, generation.ErrNotReady) {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error: "Wizard state is below the generation threshold",
				Code:  models.ErrCodeValidationFailed,
				Details: map[string]string{
					"completeness": fmtCompleteness(st),
				},
			})
			return
		}
		log.Printf(`{"level":"error","message":"Failed to start generation","error":"%v","user_id":"%s"}`, err, userID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start generation", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusAccepted, StartGenerationResponse{
		SessionID:    sessionID.String(),
		Completeness: wizard.Completeness(st),
	})
}

// GetGeneration godoc
// @Summary Generation session status
// @Description Snapshot of a generation session: progress, logs and the generated text once available
// @Tags generations
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} generation.Session
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /generations/{id} [get]
func (h *Handler) GetGeneration(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid session ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	snap, err := h.generations.Get(sessionID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Generation session not found", Code: models.ErrCodeSessionNotFound})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// ExportGeneration godoc
// @Summary Export a generated petition
// @Description Send the session's generated document to the export service and return the artifact reference
// @Tags generations
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} export.Artifact
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /generations/{id}/export [post]
func (h *Handler) ExportGeneration(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid session ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	snap, err := h.generations.Get(sessionID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Generation session not found", Code: models.ErrCodeSessionNotFound})
		return
	}

	if snap.State.GeneratedText == "" {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Session has no generated document yet", Code: models.ErrCodeValidationFailed})
		return
	}

	meta := map[string]string{
		"legal_area": snap.State.LegalArea,
		"piece_type": snap.State.PieceType.Name,
	}
	if cfg, err := h.store.GetOfficeConfig(c.Request.Context(), userID); err == nil && cfg.OfficeName != "" {
		meta["office_name"] = cfg.OfficeName
		meta["oab_number"] = cfg.OABNumber
	}

	artifact, err := h.exporter.Export(c.Request.Context(), export.Request{
		Title:    generation.DocumentTitle(snap.State),
		Content:  formatter.FormatHTML(snap.State.GeneratedText),
		Metadata: meta,
	})
	if err != nil {
		log.Printf(`{"level":"error","message":"Export failed","error":"%v","session_id":"%s"}`, err, sessionID)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "Export service unavailable", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, artifact)
}

// AnalyzeRequest carries the case facts for thesis analysis.
type AnalyzeRequest struct {
	LegalArea string `json:"legal_area"`
	Facts     string `json:"facts" binding:"required"`
}

// AnalyzeTheses godoc
// @Summary Suggest theses and jurisprudences
// @Description Ask the AI collaborator for advisory thesis and jurisprudence suggestions based on the case facts
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Case facts"
// @Success 200 {object} ai.Suggestions
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /analysis/theses [post]
func (h *Handler) AnalyzeTheses(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Facts are required", Code: models.ErrCodeInvalidRequest})
		return
	}

	suggestions, err := ai.SuggestTheses(c.Request.Context(), h.generator, req.LegalArea, req.Facts)
	if err != nil {
		log.Printf(`{"level":"warn","message":"Analysis failed","error":"%v"}`, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "AI backend unavailable", Code: models.ErrCodeAIBackendDown})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

func fmtCompleteness(st wizard.State) string {
	return strconv.Itoa(wizard.Completeness(st)) + "%"
}
