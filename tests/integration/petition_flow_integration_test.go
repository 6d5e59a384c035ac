package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdraft/petition-orchestrator/internal/auth"
	"github.com/lexdraft/petition-orchestrator/internal/catalog"
	"github.com/lexdraft/petition-orchestrator/internal/export"
	"github.com/lexdraft/petition-orchestrator/internal/gateway"
	"github.com/lexdraft/petition-orchestrator/internal/generation"
	"github.com/lexdraft/petition-orchestrator/internal/models"
	"github.com/lexdraft/petition-orchestrator/internal/store"
	"github.com/lexdraft/petition-orchestrator/tests/helpers"
)

// cannedGenerator stands in for the AI backend so the flow is
// deterministic; everything else runs against real infrastructure.
type cannedGenerator struct{}

func (cannedGenerator) Generate(_ context.Context, _ string) (string, error) {
	return helpers.SamplePetitionText, nil
}

func (cannedGenerator) Healthy(_ context.Context) bool { return true }

func TestPetitionFlowIntegration(t *testing.T) {
	ensureJWTSecret(t)

	testDB := helpers.NewTestDatabase(t)
	defer testDB.Close()

	jwtManager, err := auth.NewJWTManager()
	require.NoError(t, err)

	// Fake export backend
	exportBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(export.Artifact{
			ID:          "artifact-1",
			DownloadURL: "https://exports.example.com/artifact-1.docx",
			FileName:    "peticao.docx",
		})
	}))
	defer exportBackend.Close()

	exporter := export.NewClient()
	exporter.SetBaseURL(exportBackend.URL)

	st := store.NewStore(testDB.Pool)
	generator := cannedGenerator{}
	generationService := generation.NewService(st, generator, nil)
	gatewayHandler := gateway.NewHandler(st, generationService, jwtManager, catalog.Default(), exporter, generator, testDB.Pool)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	api.POST("/auth/login", gatewayHandler.Login)

	protected := api.Group("")
	protected.Use(auth.RequireAuth(jwtManager))
	protected.GET("/clients", gatewayHandler.ListClients)
	protected.POST("/clients", gatewayHandler.CreateClient)
	protected.GET("/clients/:id/adverse-parties", gatewayHandler.ListAdverseParties)
	protected.POST("/clients/:id/adverse-parties", gatewayHandler.AddAdverseParty)
	protected.DELETE("/clients/:id/adverse-parties/:partyId", gatewayHandler.DeleteAdverseParty)
	protected.POST("/templates", gatewayHandler.CreateTemplate)
	protected.PUT("/templates/:id", gatewayHandler.UpdateTemplate)
	protected.GET("/templates/:id/preview", gatewayHandler.PreviewTemplate)
	protected.POST("/generations", gatewayHandler.StartGeneration)
	protected.GET("/generations/:id", gatewayHandler.GetGeneration)
	protected.POST("/generations/:id/export", gatewayHandler.ExportGeneration)
	protected.GET("/documents", gatewayHandler.ListDocuments)
	protected.GET("/documents/:id", gatewayHandler.GetDocument)
	protected.PUT("/settings/office", gatewayHandler.UpdateOfficeConfig)

	// Seed a lawyer account and a matching token
	email := fmt.Sprintf("flow-test-%d@example.com", time.Now().UnixNano())
	hashed, err := testDB.HashPassword("test-password-123")
	require.NoError(t, err)
	userID := testDB.CreateTestUser(t, email, hashed)
	defer testDB.DeleteTestUser(t, userID)

	token, err := jwtManager.GenerateToken(context.Background(), userID, email, "OAB/SP 123456", []string{"lawyer"}, 24*time.Hour)
	require.NoError(t, err)

	authed := func(method, path string, body []byte) *httptest.ResponseRecorder {
		var req *http.Request
		if body != nil {
			req = httptest.NewRequest(method, path, bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Complete Petition Lifecycle", func(t *testing.T) {
		// Step 1: register a client; legacy "nome" payloads still work
		body, _ := json.Marshal(map[string]string{
			"nome":     "Maria Souza",
			"document": "123.456.789-00",
		})
		w := authed(http.MethodPost, "/api/clients", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var client models.ClientRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &client))
		assert.Equal(t, "Maria Souza", client.Name)

		// Step 2: save office settings used by the export metadata
		body, _ = json.Marshal(map[string]string{
			"office_name": "Souza & Associados",
			"oab_number":  "OAB/SP 123456",
			"city":        "São Paulo",
		})
		w = authed(http.MethodPut, "/api/settings/office", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Step 3: start a generation session from a complete wizard state
		startBody, _ := json.Marshal(gateway.StartGenerationRequest{State: helpers.ReadyWizardState()})
		w = authed(http.MethodPost, "/api/generations", startBody)
		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

		var started gateway.StartGenerationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
		sessionID, err := uuid.Parse(started.SessionID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, started.Completeness, 80)

		// Step 4: poll the session until the attempt finishes
		var snap generation.Session
		deadline := time.Now().Add(5 * time.Second)
		for {
			w = authed(http.MethodGet, "/api/generations/"+sessionID.String(), nil)
			require.Equal(t, http.StatusOK, w.Code)
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
			if !snap.State.IsGenerating {
				break
			}
			require.True(t, time.Now().Before(deadline), "generation did not finish in time")
			time.Sleep(50 * time.Millisecond)
		}

		assert.Equal(t, helpers.SamplePetitionText, snap.State.GeneratedText)
		assert.Equal(t, 100, snap.State.Progress)
		assert.NotEqual(t, uuid.Nil, snap.DocumentID)

		// Step 5: the finished document was persisted with formatted HTML
		w = authed(http.MethodGet, "/api/documents/"+snap.DocumentID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var doc models.Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, helpers.SamplePetitionText, doc.RawText)
		assert.Contains(t, doc.FormattedHTML, "EXCELENTÍSSIMO")
		assert.Contains(t, doc.FormattedHTML, "text-align: center")
		assert.NotEmpty(t, doc.Prompt)

		// Step 6: export the generated petition
		w = authed(http.MethodPost, "/api/generations/"+sessionID.String()+"/export", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var artifact export.Artifact
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &artifact))
		assert.Equal(t, "artifact-1", artifact.ID)
		assert.NotEmpty(t, artifact.DownloadURL)
	})

	t.Run("Adverse Party Records", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"name": "Carlos Pereira"})
		w := authed(http.MethodPost, "/api/clients", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var client models.ClientRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &client))
		base := "/api/clients/" + client.ID.String() + "/adverse-parties"

		party, _ := json.Marshal(map[string]string{
			"name":     "Empresa XYZ Ltda",
			"document": "12.345.678/0001-00",
			"address":  "Av. Paulista, 1000",
		})
		w = authed(http.MethodPost, base, party)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// Duplicates are allowed: record the same party a second time.
		w = authed(http.MethodPost, base, party)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created models.AdversePartyRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "Empresa XYZ Ltda", created.Name)
		assert.Equal(t, client.ID, created.ClientID)

		w = authed(http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var parties []models.AdversePartyRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parties))
		require.Len(t, parties, 2)

		w = authed(http.MethodDelete, base+"/"+created.ID.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = authed(http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parties))
		assert.Len(t, parties, 1)
	})

	t.Run("Template Update", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"name":       "Contestação Padrão",
			"legal_area": "Direito Civil",
			"body":       "## DOS FATOS\n\nModelo inicial.",
		})
		w := authed(http.MethodPost, "/api/templates", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var tpl models.Template
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tpl))

		body, _ = json.Marshal(map[string]string{
			"name":       "Contestação Revisada",
			"legal_area": "Direito Civil",
			"body":       "## DOS FATOS\n\nModelo **revisado**.",
		})
		w = authed(http.MethodPut, "/api/templates/"+tpl.ID.String(), body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated models.Template
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Contestação Revisada", updated.Name)
		assert.Contains(t, updated.Body, "revisado")

		// The preview reflects the updated markdown body.
		w = authed(http.MethodGet, "/api/templates/"+tpl.ID.String()+"/preview", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<strong>revisado</strong>")

		// Updating someone else's template id is a 404.
		w = authed(http.MethodPut, "/api/templates/"+uuid.NewString(), body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Generation Refused Below Threshold", func(t *testing.T) {
		incomplete := helpers.ReadyWizardState()
		incomplete.Theses = nil
		incomplete.Jurisprudences = nil
		incomplete.AdverseParties = nil

		body, _ := json.Marshal(gateway.StartGenerationRequest{State: incomplete})
		w := authed(http.MethodPost, "/api/generations", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	t.Run("Generation Rejects Unknown Catalog Entry", func(t *testing.T) {
		st := helpers.ReadyWizardState()
		st.LegalArea = "Direito Intergaláctico"

		body, _ := json.Marshal(gateway.StartGenerationRequest{State: st})
		w := authed(http.MethodPost, "/api/generations", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}
