package gateway

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lexdraft/petition-orchestrator/internal/auth"
	"github.com/lexdraft/petition-orchestrator/internal/generation"
)

// pingInterval keeps idle streams alive through proxies.
const pingInterval = 30 * time.Second

// GenerationStreamer handles WebSocket connections streaming generation
// session progress to the browser.
type GenerationStreamer struct {
	generations *generation.Service
	jwtManager  *auth.JWTManager
	tracer      trace.Tracer
	upgrader    websocket.Upgrader
}

// NewGenerationStreamer creates a new generation WebSocket streamer
func NewGenerationStreamer(generations *generation.Service, jwtManager *auth.JWTManager) *GenerationStreamer {
	return &GenerationStreamer{
		generations: generations,
		jwtManager:  jwtManager,
		tracer:      otel.Tracer("generation-websocket"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origins once the frontend domain is fixed
				origin := r.Header.Get("Origin")
				log.Printf("WebSocket connection from origin: %s", origin)
				return true
			},
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// StreamGeneration handles WebSocket /api/ws/generations/:id
// @Summary Stream generation progress
// @Description WebSocket endpoint streaming progress, log and completion events for a generation session
// @Tags generations
// @Param id path string true "Session ID"
// @Param token query string false "JWT token (WebSocket clients that cannot set headers)"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /ws/generations/{id} [get]
func (gs *GenerationStreamer) StreamGeneration(c *gin.Context) {
	_, span := gs.tracer.Start(c.Request.Context(), "generation_websocket.stream")
	defer span.End()

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}
	span.SetAttributes(attribute.String("session_id", sessionID.String()))

	userID, err := gs.validateToken(c)
	if err != nil {
		span.RecordError(err)
		log.Printf("JWT validation failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	span.SetAttributes(attribute.String("user_id", userID.String()))

	// Ownership check before upgrading: an unknown or foreign session is a
	// plain 404, not a socket.
	snapshot, err := gs.generations.Get(sessionID, userID)
	if err != nil {
		span.SetAttributes(attribute.Bool("access_denied", true))
		c.JSON(http.StatusNotFound, gin.H{"error": "Generation session not found"})
		return
	}

	events, cancel, err := gs.generations.Subscribe(sessionID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Generation session not found"})
		return
	}
	defer cancel()

	conn, err := gs.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		span.RecordError(err)
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("WebSocket connection upgraded for generation session: %s", sessionID)

	// Initial snapshot so late subscribers see the current progress and
	// backlog of logs before live events arrive.
	if err := conn.WriteJSON(snapshot); err != nil {
		log.Printf("Failed to send initial snapshot for session %s: %v", sessionID, err)
		return
	}

	// Drain client frames so close frames are processed; the stream is
	// one-way otherwise.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, open := <-events:
			if !open {
				// Terminal event already delivered; say goodbye cleanly.
				deadline := time.Now().Add(time.Second)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "generation finished"),
					deadline)
				log.Printf("Generation stream ended for session: %s", sessionID)
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("Failed to forward event for session %s: %v", sessionID, err)
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.Printf("Ping failed for session %s: %v", sessionID, err)
				return
			}
		case <-clientGone:
			log.Printf("Client disconnected from generation stream: %s", sessionID)
			return
		}
	}
}

// validateToken validates the JWT and returns the caller's user id. The
// token comes from the "token" query parameter first (WebSocket clients
// cannot set headers), falling back to the Authorization header.
func (gs *GenerationStreamer) validateToken(c *gin.Context) (uuid.UUID, error) {
	token := c.Query("token")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}
	}

	if token == "" {
		return uuid.Nil, fmt.Errorf("missing JWT token")
	}

	claims, err := gs.jwtManager.ValidateToken(c.Request.Context(), token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid JWT: %w", err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id in claims: %w", err)
	}

	return userID, nil
}
