// Package session runs practice turns: it sequences the evaluator, the model
// call, the reply normalizer, the game state machine and the suggestion
// generator, and persists the result per session.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/sentry-coach/internal/logger"
	"github.com/jwebster45206/sentry-coach/internal/services"
	"github.com/jwebster45206/sentry-coach/pkg/analysis"
	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/evaluator"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/normalizer"
	"github.com/jwebster45206/sentry-coach/pkg/prompts"
	"github.com/jwebster45206/sentry-coach/pkg/state"
	"github.com/jwebster45206/sentry-coach/pkg/storage"
	"github.com/jwebster45206/sentry-coach/pkg/suggest"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("adult_message cannot be empty")
	ErrTurnInProgress  = errors.New("another turn is already in progress for this session")
)

const (
	DefaultLLMTimeout = 30 * time.Second

	// lockSlack is added to the model timeout so a lock outlives the turn
	// that holds it.
	lockSlack = 15 * time.Second
)

// Rand is the random source shared by the normalizer and suggestion generator.
type Rand interface {
	IntN(n int) int
}

type Options struct {
	LLMTimeout time.Duration
	Rand       Rand
}

// Processor handles session lifecycle and turn processing. It keeps no
// per-session state of its own; everything lives in storage.
type Processor struct {
	storage    storage.Storage
	llm        services.LLMService
	evaluator  *evaluator.Evaluator
	normalizer *normalizer.Normalizer
	suggester  *suggest.Generator
	llmTimeout time.Duration
	logger     *slog.Logger
}

// NewProcessor creates a processor. llm may be nil, in which case every turn
// uses the deterministic fallback reply.
func NewProcessor(store storage.Storage, llm services.LLMService, log *slog.Logger, opts Options) *Processor {
	if opts.LLMTimeout <= 0 {
		opts.LLMTimeout = DefaultLLMTimeout
	}
	var nr normalizer.Rand
	var sr suggest.Rand
	if opts.Rand != nil {
		nr, sr = opts.Rand, opts.Rand
	}
	return &Processor{
		storage:    store,
		llm:        llm,
		evaluator:  evaluator.New(),
		normalizer: normalizer.New(nr),
		suggester:  suggest.New(sr),
		llmTimeout: opts.LLMTimeout,
		logger:     log,
	}
}

// LLMConfigured reports whether turns call a model before falling back.
func (p *Processor) LLMConfigured() bool {
	return p.llm != nil
}

// TurnResult is everything the caller needs to render one completed turn.
type TurnResult struct {
	SessionID     uuid.UUID        `json:"session_id"`
	Round         int              `json:"round"`
	ChildReply    string           `json:"child_reply"`
	Emotion       emotion.Label    `json:"emotion"`
	Scene         string           `json:"scene"`
	Thought       string           `json:"thought_bubble"`
	EmotionalLoad int              `json:"emotional_load"`
	Evaluation    evaluator.Result `json:"evaluation"`
	Effect        state.Effect     `json:"effect"`
	Game          state.GameState  `json:"game"`
	Child         state.ChildState `json:"child"`
	Suggestions   []string         `json:"suggestions"`
	Fallback      bool             `json:"fallback"`
}

// Start creates a session with the child's opening line and first suggestions.
func (p *Processor) Start(ctx context.Context, l lang.Language) (*state.Session, error) {
	s := state.NewSession(l)
	s.AddUtterance(chat.RoleKid, OpeningLine(l))
	p.refreshSuggestions(s, OpeningLine(l))

	if err := p.storage.SaveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	logger.WithSessionID(p.logger, s.ID.String()).Info("Session started", "language", l)
	return s, nil
}

// Get loads a session or returns ErrSessionNotFound.
func (p *Processor) Get(ctx context.Context, id uuid.UUID) (*state.Session, error) {
	s, err := p.storage.LoadSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (p *Processor) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := p.Get(ctx, id); err != nil {
		return err
	}
	if err := p.storage.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Analyze builds the intervention report for a session.
func (p *Processor) Analyze(ctx context.Context, id uuid.UUID) (analysis.Report, error) {
	s, err := p.Get(ctx, id)
	if err != nil {
		return analysis.Report{}, err
	}
	return analysis.Build(s), nil
}

// ProcessTurn runs one adult turn to completion. Turns for the same session
// are serialized with a storage lock; a concurrent turn gets ErrTurnInProgress.
// The session is only saved once every step has succeeded.
func (p *Processor) ProcessTurn(ctx context.Context, id uuid.UUID, adultMessage string) (*TurnResult, error) {
	msg := strings.TrimSpace(adultMessage)
	if msg == "" {
		return nil, ErrEmptyMessage
	}
	log := logger.WithSessionID(p.logger, id.String())

	ok, err := p.storage.AcquireTurnLock(ctx, id, p.llmTimeout+lockSlack)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTurnInProgress
	}
	defer func() {
		if err := p.storage.ReleaseTurnLock(context.WithoutCancel(ctx), id); err != nil {
			logger.WithError(log, err).Error("Failed to release turn lock")
		}
	}()

	s, err := p.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Game.Ended {
		return nil, state.ErrGameEnded
	}

	eval := p.evaluator.Evaluate(msg, s.Language)
	s.Child = s.Child.ApplyDelta(state.DeltaFor(eval))

	raw, fallback := p.childReply(ctx, log, s, msg, eval)
	reply := p.normalizer.Normalize(raw.ChildReply, raw.EmotionLabel, s.History, s.Language)
	thought := p.normalizer.NormalizeThought(raw.ThoughtBubble, reply, s.Language)
	load := s.Child.LoadLevel()
	if raw.EmotionalLoad > 0 {
		load = normalizer.Load(float64(raw.EmotionalLoad))
	}

	round := s.Game.Round
	next, eff, err := state.ApplyTurn(s.Game, eval, reply.Emotion)
	if err != nil {
		return nil, err
	}

	s.AddUtterance(chat.RoleAdult, msg)
	s.AddUtterance(chat.RoleKid, reply.Text)
	s.Interventions = append(s.Interventions, state.InterventionRecord{
		Round:        round,
		AdultMessage: msg,
		ChildReply:   reply.Text,
		Emotion:      reply.Emotion,
		WasPositive:  eff.Star,
		WasNegative:  eff.Strike,
		Thought:      thought,
		ReasonCode:   eval.ReasonCode,
	})
	s.Game = next

	if next.Ended {
		s.Suggestions = nil
	} else {
		p.refreshSuggestions(s, reply.Text)
	}

	if err := p.storage.SaveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info("Turn processed",
		"round", round,
		"reason_code", eval.ReasonCode,
		"emotion", reply.Emotion,
		"star", eff.Star,
		"strike", eff.Strike,
		"fallback", fallback,
		"ended", next.Ended)

	return &TurnResult{
		SessionID:     s.ID,
		Round:         round,
		ChildReply:    reply.Text,
		Emotion:       reply.Emotion,
		Scene:         reply.Emotion.Scene(),
		Thought:       thought,
		EmotionalLoad: load,
		Evaluation:    eval,
		Effect:        eff,
		Game:          next,
		Child:         s.Child,
		Suggestions:   s.Suggestions,
		Fallback:      fallback,
	}, nil
}

// childReply asks the model for the child's answer under the configured
// timeout. Any failure yields the deterministic fallback instead.
func (p *Processor) childReply(ctx context.Context, log *slog.Logger, s *state.Session, msg string, eval evaluator.Result) (chat.ChildReply, bool) {
	if p.llm == nil {
		return FallbackReply(eval, s.Language), true
	}

	messages, err := prompts.New().
		WithLanguage(s.Language).
		WithEmotionalLoad(s.Child.LoadLevel()).
		WithHistory(s.History).
		WithAdultMessage(msg).
		Build()
	if err != nil {
		logger.WithError(log, err).Warn("Failed to build child prompt, using fallback reply")
		return FallbackReply(eval, s.Language), true
	}

	llmCtx, cancel := context.WithTimeout(ctx, p.llmTimeout)
	defer cancel()

	resp, err := p.llm.Chat(llmCtx, messages)
	if err != nil {
		logger.WithError(log, err).Warn("LLM chat failed, using fallback reply")
		return FallbackReply(eval, s.Language), true
	}

	raw, err := chat.ParseChildReply(resp.Message)
	if err != nil {
		logger.WithError(log, err).Warn("Unusable LLM reply, using fallback reply", "content", resp.Message)
		return FallbackReply(eval, s.Language), true
	}
	return *raw, false
}

func (p *Processor) refreshSuggestions(s *state.Session, lastChildReply string) {
	sugg := p.suggester.Generate(s.Language, lastChildReply, s.SeenSuggestions)
	s.Suggestions = suggest.Texts(sugg)
	s.MarkSeen(suggest.Keys(sugg)...)
}
