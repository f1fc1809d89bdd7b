package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/sentry-coach/internal/logger"
	"github.com/jwebster45206/sentry-coach/internal/session"
	"github.com/jwebster45206/sentry-coach/pkg/analysis"
	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/state"
)

const sessionsPrefix = "/v1/sessions"

// CreateSessionRequest starts a practice session. Language accepts loose
// tags such as "zh", "zh-TW" or "en"; anything unrecognized is English.
type CreateSessionRequest struct {
	Language string `json:"language"`
}

// SessionResponse is the client view of a session.
type SessionResponse struct {
	SessionID   uuid.UUID        `json:"session_id"`
	Language    lang.Language    `json:"language"`
	Game        state.GameState  `json:"game"`
	Child       state.ChildState `json:"child"`
	History     []chat.Utterance `json:"history"`
	Suggestions []string         `json:"suggestions"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func newSessionResponse(s *state.Session) SessionResponse {
	return SessionResponse{
		SessionID:   s.ID,
		Language:    s.Language,
		Game:        s.Game,
		Child:       s.Child,
		History:     s.History,
		Suggestions: s.Suggestions,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type SessionHandler struct {
	processor   *session.Processor
	pdfFontPath string
	logger      *slog.Logger
}

func NewSessionHandler(processor *session.Processor, pdfFontPath string, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		processor:   processor,
		pdfFontPath: pdfFontPath,
		logger:      logger,
	}
}

// ServeHTTP routes session requests:
// POST   /v1/sessions                    - start a session
// GET    /v1/sessions/{id}               - read a session
// DELETE /v1/sessions/{id}               - end and remove a session
// POST   /v1/sessions/{id}/turns         - submit an adult message
// GET    /v1/sessions/{id}/analysis      - intervention report (JSON)
// GET    /v1/sessions/{id}/analysis.pdf  - intervention report (PDF)
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, sessionsPrefix), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	idStr, sub, _ := strings.Cut(path, "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", idStr, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}
	log := logger.WithSessionID(h.logger, id.String())

	switch sub {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, log, id)
		case http.MethodDelete:
			h.handleDelete(w, r, log, id)
		default:
			writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
	case "turns":
		if r.Method != http.MethodPost {
			writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleTurn(w, r, log, id)
	case "analysis", "analysis.pdf":
		if r.Method != http.MethodGet {
			writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
			return
		}
		h.handleAnalysis(w, r, log, id, sub == "analysis.pdf")
	default:
		writeError(w, log, http.StatusNotFound, "Not found")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s, err := h.processor.Start(r.Context(), lang.Normalize(req.Language))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, newSessionResponse(s))
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	s, err := h.processor.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, newSessionResponse(s))
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	if err := h.processor.Delete(r.Context(), id); err != nil {
		writeDomainError(w, log, err)
		return
	}
	log.Info("Session deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleTurn(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	var req chat.TurnRequest
	if err := decodeBody(w, r, &req); err != nil {
		log.Warn("Invalid JSON in request body", "error", err)
		writeError(w, log, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.processor.ProcessTurn(r.Context(), id, req.AdultMessage)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, result)
}

func (h *SessionHandler) handleAnalysis(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID, asPDF bool) {
	report, err := h.processor.Analyze(r.Context(), id)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	if !asPDF {
		writeJSON(w, log, http.StatusOK, report)
		return
	}

	// Render fully before writing headers so a failure can still be JSON.
	var buf bytes.Buffer
	if err := analysis.WritePDF(&buf, report, analysis.PDFOptions{FontPath: h.pdfFontPath}); err != nil {
		writeDomainError(w, log, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sentry-coach-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error("Failed to write PDF response", "error", err)
	}
}
