package runner

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/sentry-coach/pkg/analysis"
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/evaluator"
	"github.com/jwebster45206/sentry-coach/pkg/state"
)

// TestSuite is a scripted practice conversation. A suite either has Steps or
// lists other case files in Cases.
type TestSuite struct {
	Name     string             `json:"name"`
	Language string             `json:"language,omitempty"`
	Steps    []TestStep         `json:"steps,omitempty"`
	Report   *ReportExpectation `json:"report,omitempty"`
	Cases    []string           `json:"cases,omitempty"`
}

// IsSequence reports whether the suite only references other cases.
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep sends one adult message and checks the turn result.
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	AdultMessage string       `json:"adult_message"`
	Expectations Expectations `json:"expect"`
}

// Expectations are checked against the turn response. Nil fields are skipped.
type Expectations struct {
	Status int `json:"status,omitempty"` // defaults to 200

	Round      *int                  `json:"round,omitempty"` // round after the turn
	Stars      *int                  `json:"stars,omitempty"`
	Strikes    *int                  `json:"strikes,omitempty"`
	IsEnded    *bool                 `json:"is_ended,omitempty"`
	EndType    *state.Outcome        `json:"end_type,omitempty"`
	IsPositive *bool                 `json:"is_positive,omitempty"`
	ReasonCode *evaluator.ReasonCode `json:"reason_code,omitempty"`
	Emotion    *emotion.Label        `json:"emotion,omitempty"`
	Fallback   *bool                 `json:"fallback,omitempty"`

	ResponseContains    []string `json:"response_contains,omitempty"`
	ResponseNotContains []string `json:"response_not_contains,omitempty"`
	ResponseRegex       string   `json:"response_regex,omitempty"`
	ResponseMaxLength   *int     `json:"response_max_length,omitempty"` // in runes
	SuggestionCount     *int     `json:"suggestion_count,omitempty"`
}

// ReportExpectation is checked against the analysis after the last step.
type ReportExpectation struct {
	Interventions *int                  `json:"interventions,omitempty"`
	Outcome       *state.Outcome        `json:"outcome,omitempty"`
	Evaluations   []analysis.Evaluation `json:"evaluations,omitempty"`
}

// TestResult is the outcome of one step.
type TestResult struct {
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
}

// TestJob is a suite loaded from a case file.
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult holds the results of one suite run.
type TestRunResult struct {
	Job       TestJob
	Results   []TestResult
	Error     error
	Duration  time.Duration
	SessionID uuid.UUID
}
