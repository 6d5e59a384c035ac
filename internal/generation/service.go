package generation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexdraft/petition-orchestrator/internal/ai"
	"github.com/lexdraft/petition-orchestrator/internal/formatter"
	"github.com/lexdraft/petition-orchestrator/internal/metrics"
	"github.com/lexdraft/petition-orchestrator/internal/models"
	"github.com/lexdraft/petition-orchestrator/internal/prompt"
	"github.com/lexdraft/petition-orchestrator/internal/wizard"
)

var (
	// ErrNotReady means the wizard state is below the generation threshold.
	ErrNotReady = errors.New("wizard state is not ready for generation")
	// ErrSessionNotFound means no session exists for the id/owner pair.
	ErrSessionNotFound = errors.New("generation session not found")
)

// generateTimeout bounds one full generation attempt end to end.
const generateTimeout = 5 * time.Minute

// Event is a single update pushed to stream subscribers while a
// generation session runs.
type Event struct {
	Type     string `json:"type"` // "log", "progress", "completed", "failed"
	Message  string `json:"message,omitempty"`
	Progress int    `json:"progress"`
}

// Session is a point-in-time snapshot of a generation session as exposed
// to handlers. The live state is owned by the service.
type Session struct {
	ID         uuid.UUID    `json:"id"`
	OwnerID    uuid.UUID    `json:"owner_id"`
	State      wizard.State `json:"state"`
	DocumentID uuid.UUID    `json:"document_id,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
}

// DocumentSaver persists a finished petition. Satisfied by *store.Store.
type DocumentSaver interface {
	SaveDocument(ctx context.Context, doc models.Document) (uuid.UUID, error)
}

// session is the mutable registry entry behind a Session snapshot.
type session struct {
	mu          sync.Mutex
	id          uuid.UUID
	ownerID     uuid.UUID
	state       wizard.State
	documentID  uuid.UUID
	startedAt   time.Time
	finishedAt  *time.Time
	subscribers map[chan Event]struct{}
}

// Service runs generation sessions: one attempt per session, progress and
// logs surfaced through the in-memory registry and the event stream.
type Service struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	docs      DocumentSaver
	generator ai.TextGenerator
	metrics   *metrics.GenerationMetrics
}

// NewService creates a generation service. metrics may be nil (disabled).
func NewService(docs DocumentSaver, generator ai.TextGenerator, m *metrics.GenerationMetrics) *Service {
	return &Service{
		sessions:  make(map[uuid.UUID]*session),
		docs:      docs,
		generator: generator,
		metrics:   m,
	}
}

// Start begins a generation session for the given wizard state. A state
// below the review-completeness threshold is refused with ErrNotReady.
// If the owner already has a session in flight, that session's id is
// returned unchanged and no new attempt starts.
func (s *Service) Start(ctx context.Context, ownerID uuid.UUID, st wizard.State) (uuid.UUID, error) {
	// The attempt fields on a posted state are session-owned, never trusted
	// from the wire. BeginGeneration resets the rest.
	st.IsGenerating = false

	if !wizard.ReadyToGenerate(st) {
		log.Printf("generation refused for user %s: completeness %d%% below threshold %d%%",
			ownerID, wizard.Completeness(st), wizard.GenerationThreshold)
		return uuid.Nil, ErrNotReady
	}

	s.mu.Lock()
	if running := s.runningLocked(ownerID); running != nil {
		s.mu.Unlock()
		return running.id, nil
	}

	next, ok := wizard.BeginGeneration(st)
	if !ok {
		s.mu.Unlock()
		return uuid.Nil, ErrNotReady
	}

	sess := &session{
		id:          uuid.New(),
		ownerID:     ownerID,
		state:       next,
		startedAt:   time.Now(),
		subscribers: make(map[chan Event]struct{}),
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordStarted(ctx, st.LegalArea, st.PieceType.Name)
	}

	go s.run(sess)

	return sess.id, nil
}

// Get returns a snapshot of a session owned by ownerID.
func (s *Service) Get(sessionID, ownerID uuid.UUID) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || sess.ownerID != ownerID {
		return nil, ErrSessionNotFound
	}

	return sess.snapshot(), nil
}

// Subscribe registers an event channel on a running session. The returned
// cancel func must be called when the consumer is done. Events are dropped
// for slow subscribers rather than blocking the generation pipeline.
func (s *Service) Subscribe(sessionID, ownerID uuid.UUID) (<-chan Event, func(), error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || sess.ownerID != ownerID {
		return nil, nil, ErrSessionNotFound
	}

	ch := make(chan Event, 16)

	sess.mu.Lock()
	if sess.finishedAt != nil {
		// Already over: replay the terminal event and close the stream.
		ev := Event{Type: "completed", Progress: sess.state.Progress}
		if sess.state.GeneratedText == "" {
			ev.Type = "failed"
		}
		sess.mu.Unlock()
		ch <- ev
		close(ch)
		return ch, func() {}, nil
	}
	sess.subscribers[ch] = struct{}{}
	sess.mu.Unlock()

	cancel := func() {
		sess.mu.Lock()
		if _, ok := sess.subscribers[ch]; ok {
			delete(sess.subscribers, ch)
			close(ch)
		}
		sess.mu.Unlock()
	}

	return ch, cancel, nil
}

// run executes the generation pipeline for one session. AI failure is
// terminal for the attempt: it is logged, generatedText stays empty and
// the session finishes in the failed state. The caller retries by
// starting a new session.
func (s *Service) run(sess *session) {
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	st := sess.snapshot().State
	started := time.Now()

	sess.progress(5, "Analisando dados do formulário...")
	sess.progress(20, "Montando prompt jurídico...")
	basePrompt := prompt.Build(st)

	sess.progress(35, "Consultando inteligência artificial...")
	text, err := s.generator.Generate(ctx, basePrompt)
	if err != nil {
		log.Printf("generation failed for session %s: %v", sess.id, err)
		sess.fail("Falha ao gerar o texto. Revise os dados e tente novamente.")
		if s.metrics != nil {
			s.metrics.RecordFailed(ctx, st.LegalArea, st.PieceType.Name, "ai_backend_error", time.Since(started))
		}
		return
	}

	sess.progress(70, "Formatando documento...")
	html := formatter.FormatHTML(text)

	sess.progress(85, "Salvando documento...")
	doc := models.Document{
		OwnerID:       sess.ownerID,
		Title:         DocumentTitle(st),
		LegalArea:     st.LegalArea,
		PieceType:     st.PieceType.Name,
		RawText:       text,
		FormattedHTML: html,
		Prompt:        basePrompt,
		Metadata:      documentMetadata(st),
	}
	docID, err := s.docs.SaveDocument(ctx, doc)
	if err != nil {
		// The text survives in the session even when persistence fails;
		// the user can copy it out and retry the save by regenerating.
		log.Printf("failed to persist document for session %s: %v", sess.id, err)
		sess.log("Não foi possível salvar o documento gerado.")
	} else {
		sess.setDocumentID(docID)
	}

	sess.complete(text)
	if s.metrics != nil {
		s.metrics.RecordCompleted(ctx, st.LegalArea, st.PieceType.Name, time.Since(started))
	}
}

// runningLocked returns the owner's in-flight session, if any. Caller
// holds s.mu.
func (s *Service) runningLocked(ownerID uuid.UUID) *session {
	for _, sess := range s.sessions {
		if sess.ownerID != ownerID {
			continue
		}
		sess.mu.Lock()
		generating := sess.state.IsGenerating
		sess.mu.Unlock()
		if generating {
			return sess
		}
	}
	return nil
}

// DocumentTitle derives a display title from the wizard state. States may
// reach generation without a piece type, so a generic fallback is kept.
func DocumentTitle(st wizard.State) string {
	piece := strings.TrimSpace(st.PieceType.Name)
	if piece == "" {
		piece = "Petição"
	}
	if area := strings.TrimSpace(st.LegalArea); area != "" {
		return fmt.Sprintf("%s - %s", piece, area)
	}
	return piece
}

func documentMetadata(st wizard.State) map[string]string {
	meta := make(map[string]string)
	if st.ProcessNumber != "" {
		meta["process_number"] = st.ProcessNumber
	}
	if st.CourtDivision != "" {
		meta["court_division"] = st.CourtDivision
	}
	if st.Jurisdiction != "" {
		meta["jurisdiction"] = st.Jurisdiction
	}
	if st.CauseValue != "" {
		meta["cause_value"] = st.CauseValue
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// snapshot copies the session out under its lock.
func (se *session) snapshot() *Session {
	se.mu.Lock()
	defer se.mu.Unlock()

	snap := &Session{
		ID:         se.id,
		OwnerID:    se.ownerID,
		State:      se.state,
		DocumentID: se.documentID,
		StartedAt:  se.startedAt,
	}
	if se.finishedAt != nil {
		t := *se.finishedAt
		snap.FinishedAt = &t
	}
	return snap
}

// progress advances the session and fans the update out to subscribers.
func (se *session) progress(pct int, msg string) {
	se.mu.Lock()
	se.state = wizard.SetProgress(se.state, pct)
	se.state = wizard.AppendLog(se.state, msg)
	se.broadcastLocked(Event{Type: "progress", Message: msg, Progress: pct})
	se.mu.Unlock()
}

func (se *session) log(msg string) {
	se.mu.Lock()
	se.state = wizard.AppendLog(se.state, msg)
	se.broadcastLocked(Event{Type: "log", Message: msg, Progress: se.state.Progress})
	se.mu.Unlock()
}

func (se *session) setDocumentID(id uuid.UUID) {
	se.mu.Lock()
	se.documentID = id
	se.mu.Unlock()
}

func (se *session) complete(text string) {
	now := time.Now()
	se.mu.Lock()
	se.state = wizard.AppendLog(se.state, "Documento gerado com sucesso.")
	se.state = wizard.FinishGeneration(se.state, text)
	se.finishedAt = &now
	se.broadcastLocked(Event{Type: "completed", Message: "Documento gerado com sucesso.", Progress: se.state.Progress})
	se.closeSubscribersLocked()
	se.mu.Unlock()
}

func (se *session) fail(msg string) {
	now := time.Now()
	se.mu.Lock()
	se.state = wizard.AppendLog(se.state, msg)
	se.state = wizard.FinishGeneration(se.state, "")
	se.finishedAt = &now
	se.broadcastLocked(Event{Type: "failed", Message: msg, Progress: se.state.Progress})
	se.closeSubscribersLocked()
	se.mu.Unlock()
}

// broadcastLocked fans one event out; slow subscribers lose events
// instead of stalling the pipeline. Caller holds se.mu.
func (se *session) broadcastLocked(ev Event) {
	for ch := range se.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

// closeSubscribersLocked signals end-of-stream. Caller holds se.mu.
func (se *session) closeSubscribersLocked() {
	for ch := range se.subscribers {
		close(ch)
	}
	se.subscribers = make(map[chan Event]struct{})
}
