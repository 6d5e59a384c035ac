package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdraft/petition-orchestrator/internal/auth"
	"github.com/lexdraft/petition-orchestrator/internal/generation"
	"github.com/lexdraft/petition-orchestrator/internal/models"
	"github.com/lexdraft/petition-orchestrator/internal/wizard"
)

// stubGenerator returns canned text after an optional delay.
type stubGenerator struct {
	text  string
	delay time.Duration
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.text, nil
}

func (s *stubGenerator) Healthy(_ context.Context) bool { return true }

// stubSaver records saved documents in memory.
type stubSaver struct {
	mu    sync.Mutex
	saved []models.Document
}

func (s *stubSaver) SaveDocument(_ context.Context, doc models.Document) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, doc)
	return uuid.New(), nil
}

func setupJWT(t *testing.T) *auth.JWTManager {
	t.Helper()
	originalSecret := os.Getenv("JWT_SECRET")
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-purposes-only")
	t.Cleanup(func() {
		if originalSecret == "" {
			os.Unsetenv("JWT_SECRET")
		} else {
			os.Setenv("JWT_SECRET", originalSecret)
		}
	})

	jwtManager, err := auth.NewJWTManager()
	require.NoError(t, err)
	return jwtManager
}

func generationReadyState() wizard.State {
	s := wizard.NewState()
	s = wizard.ToggleClient(s, wizard.Client{ID: "c1", Name: "Maria Souza"})
	s = wizard.SetLegalArea(s, "Direito Civil")
	s = wizard.SetPieceType(s, wizard.PieceType{Name: "Petição Inicial"})
	s = wizard.SetFacts(s, "O réu deixou de pagar o aluguel.")
	s = wizard.SetProcessNumber(s, "0001234-56.2026.8.26.0100")
	s = wizard.ToggleThesis(s, "Inadimplemento contratual")
	return s
}

func TestNewGenerationStreamer(t *testing.T) {
	jwtManager := setupJWT(t)
	svc := generation.NewService(&stubSaver{}, &stubGenerator{text: "x"}, nil)

	streamer := NewGenerationStreamer(svc, jwtManager)

	assert.NotNil(t, streamer)
	assert.NotNil(t, streamer.generations)
	assert.NotNil(t, streamer.jwtManager)
	assert.NotNil(t, streamer.tracer)
	assert.Equal(t, 10*time.Second, streamer.upgrader.HandshakeTimeout)
}

func TestGenerationStreamer_ValidateToken(t *testing.T) {
	jwtManager := setupJWT(t)
	svc := generation.NewService(&stubSaver{}, &stubGenerator{text: "x"}, nil)
	streamer := NewGenerationStreamer(svc, jwtManager)

	userID := uuid.New()
	token, err := jwtManager.GenerateToken(
		context.Background(), userID.String(), "advogada@example.com", "OAB/SP 123456",
		[]string{"lawyer"}, time.Hour,
	)
	require.NoError(t, err)

	tests := []struct {
		name          string
		setupRequest  func() *gin.Context
		expectedError string
		expectedUser  uuid.UUID
	}{
		{
			name: "valid_jwt_in_query_param",
			setupRequest: func() *gin.Context {
				gin.SetMode(gin.TestMode)
				w := httptest.NewRecorder()
				c, _ := gin.CreateTestContext(w)
				c.Request = httptest.NewRequest("GET", "/?token="+token, nil)
				return c
			},
			expectedUser: userID,
		},
		{
			name: "valid_jwt_in_header",
			setupRequest: func() *gin.Context {
				gin.SetMode(gin.TestMode)
				w := httptest.NewRecorder()
				c, _ := gin.CreateTestContext(w)
				req := httptest.NewRequest("GET", "/", nil)
				req.Header.Set("Authorization", "Bearer "+token)
				c.Request = req
				return c
			},
			expectedUser: userID,
		},
		{
			name: "missing_token",
			setupRequest: func() *gin.Context {
				gin.SetMode(gin.TestMode)
				w := httptest.NewRecorder()
				c, _ := gin.CreateTestContext(w)
				c.Request = httptest.NewRequest("GET", "/", nil)
				return c
			},
			expectedError: "missing JWT token",
		},
		{
			name: "invalid_token",
			setupRequest: func() *gin.Context {
				gin.SetMode(gin.TestMode)
				w := httptest.NewRecorder()
				c, _ := gin.CreateTestContext(w)
				c.Request = httptest.NewRequest("GET", "/?token=not-a-jwt", nil)
				return c
			},
			expectedError: "invalid JWT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.setupRequest()
			got, err := streamer.validateToken(c)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedUser, got)
		})
	}
}

func TestGenerationStreamer_StreamGeneration(t *testing.T) {
	jwtManager := setupJWT(t)
	svc := generation.NewService(&stubSaver{}, &stubGenerator{text: "texto gerado", delay: 50 * time.Millisecond}, nil)
	streamer := NewGenerationStreamer(svc, jwtManager)

	userID := uuid.New()
	sessionID, err := svc.Start(context.Background(), userID, generationReadyState())
	require.NoError(t, err)

	token, err := jwtManager.GenerateToken(
		context.Background(), userID.String(), "advogada@example.com", "OAB/SP 123456",
		[]string{"lawyer"}, time.Hour,
	)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/ws/generations/:id", streamer.StreamGeneration)

	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") +
		"/api/ws/generations/" + sessionID.String() + "?token=" + token

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// First frame is the session snapshot.
	var snapshot generation.Session
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, sessionID, snapshot.ID)
	assert.Equal(t, userID, snapshot.OwnerID)

	// Then live events until the server closes the stream.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var sawTerminal bool
	for {
		var ev generation.Event
		if err := conn.ReadJSON(&ev); err != nil {
			break
		}
		if ev.Type == "completed" || ev.Type == "failed" {
			sawTerminal = true
		}
	}
	assert.True(t, sawTerminal, "stream must deliver a terminal event")
}

func TestGenerationStreamer_StreamGeneration_Unauthorized(t *testing.T) {
	jwtManager := setupJWT(t)
	svc := generation.NewService(&stubSaver{}, &stubGenerator{text: "x"}, nil)
	streamer := NewGenerationStreamer(svc, jwtManager)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/ws/generations/:id", streamer.StreamGeneration)

	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/ws/generations/" + uuid.New().String())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGenerationStreamer_StreamGeneration_ForeignSession(t *testing.T) {
	jwtManager := setupJWT(t)
	svc := generation.NewService(&stubSaver{}, &stubGenerator{text: "x", delay: 50 * time.Millisecond}, nil)
	streamer := NewGenerationStreamer(svc, jwtManager)

	owner := uuid.New()
	sessionID, err := svc.Start(context.Background(), owner, generationReadyState())
	require.NoError(t, err)

	intruder := uuid.New()
	token, err := jwtManager.GenerateToken(
		context.Background(), intruder.String(), "outro@example.com", "",
		[]string{"lawyer"}, time.Hour,
	)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/ws/generations/:id", streamer.StreamGeneration)

	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/ws/generations/" + sessionID.String() + "?token=" + token)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
