package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/evaluator"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/normalizer"
	"github.com/jwebster45206/sentry-coach/pkg/suggest"
)

// CoreHandler exposes the session-free building blocks:
// POST /v1/evaluate    - score one adult message
// POST /v1/normalize   - clean a raw child reply
// POST /v1/suggestions - three reply suggestions, plus draft expansions
type CoreHandler struct {
	evaluator  *evaluator.Evaluator
	normalizer *normalizer.Normalizer
	suggester  *suggest.Generator
	logger     *slog.Logger
}

// NewCoreHandler builds a handler. rng drives reply variation and suggestion
// order; nil uses the shared source.
func NewCoreHandler(rng suggest.Rand, logger *slog.Logger) *CoreHandler {
	var nr normalizer.Rand
	if rng != nil {
		nr = rng
	}
	return &CoreHandler{
		evaluator:  evaluator.New(),
		normalizer: normalizer.New(nr),
		suggester:  suggest.New(rng),
		logger:     logger,
	}
}

// NormalizeRequest carries an untrusted model reply.
type NormalizeRequest struct {
	ChildReply    string           `json:"child_reply"`
	EmotionLabel  string           `json:"emotion_label"`
	EmotionalLoad chat.Load        `json:"emotional_load"`
	ThoughtBubble string           `json:"thought_bubble"`
	History       []chat.Utterance `json:"history,omitempty"`
	Language      string           `json:"language,omitempty"`
}

type NormalizeResponse struct {
	normalizer.Reply
	ThoughtBubble string `json:"thought_bubble"`
	EmotionalLoad int    `json:"emotional_load"`
}

type SuggestionsRequest struct {
	Language       string           `json:"language,omitempty"`
	LastChildReply string           `json:"last_child_reply"`
	Seen           []string         `json:"seen,omitempty"`
	DraftActions   []suggest.Action `json:"draft_actions,omitempty"`
	Draft          string           `json:"draft,omitempty"`
}

type SuggestionsResponse struct {
	Suggestions []suggest.Suggestion `json:"suggestions"`
	Drafts      []string             `json:"drafts,omitempty"`
}

func (h *CoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	switch r.URL.Path {
	case "/v1/evaluate":
		h.handleEvaluate(w, r)
	case "/v1/normalize":
		h.handleNormalize(w, r)
	case "/v1/suggestions":
		h.handleSuggestions(w, r)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

func (h *CoreHandler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req chat.TurnRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, h.evaluator.Evaluate(req.AdultMessage, lang.Normalize(req.Language)))
}

func (h *CoreHandler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	l := lang.Normalize(req.Language)
	reply := h.normalizer.Normalize(req.ChildReply, req.EmotionLabel, req.History, l)
	writeJSON(w, h.logger, http.StatusOK, NormalizeResponse{
		Reply:         reply,
		ThoughtBubble: h.normalizer.NormalizeThought(req.ThoughtBubble, reply, l),
		EmotionalLoad: normalizer.Load(float64(req.EmotionalLoad)),
	})
}

func (h *CoreHandler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req SuggestionsRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	l := lang.Normalize(req.Language)

	draft := req.Draft
	if draft == "" && len(req.DraftActions) > 0 {
		draft = suggest.Draft(l, req.DraftActions)
	}
	writeJSON(w, h.logger, http.StatusOK, SuggestionsResponse{
		Suggestions: h.suggester.Generate(l, req.LastChildReply, req.Seen),
		Drafts:      suggest.ExpandDraft(l, draft),
	})
}
