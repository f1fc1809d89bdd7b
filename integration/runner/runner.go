package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jwebster45206/sentry-coach/internal/session"
	"github.com/jwebster45206/sentry-coach/pkg/analysis"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner plays scripted conversations against a running coach API.
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
	LanguageOverride  string // if set, replaces every suite's language
}

func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a suite from a JSON file.
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}
	return suite, nil
}

// LoadTestSuiteWithExpansion loads a suite and, for sequences, every case it
// references (relative to casesDir), recursively.
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		subJobs, err := LoadTestSuiteWithExpansion(filepath.Join(casesDir, caseFile), casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}
		jobs = append(jobs, subJobs...)
	}
	return jobs, nil
}

// RunSuite creates a fresh session, plays every step and checks the report.
// The session is deleted afterwards.
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job:     TestJob{Name: suite.Name, Suite: suite},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	language := suite.Language
	if r.LanguageOverride != "" {
		language = r.LanguageOverride
	}
	id, err := CreateSession(ctx, r.Client, r.BaseURL, language)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.SessionID = id
	defer func() {
		if err := DeleteSession(context.WithoutCancel(ctx), r.Client, r.BaseURL, id); err != nil {
			r.Logger("    cleanup failed for %s: %v", id, err)
		}
	}()

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, result.SessionID, step)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}
		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	if suite.Report != nil && result.Error == nil {
		report, err := GetAnalysis(ctx, r.Client, r.BaseURL, result.SessionID)
		if err != nil {
			result.Error = err
		} else if err := CheckReport(*suite.Report, report); err != nil {
			result.Error = fmt.Errorf("report expectation failed: %w", err)
		}
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func (r *Runner) runStep(ctx context.Context, id uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}

	status, turn, err := PostTurn(ctx, r.Client, r.BaseURL, id, step.AdultMessage)
	if err != nil {
		result.Error = fmt.Errorf("failed to post turn: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	if turn != nil {
		result.ResponseText = turn.ChildReply
	}

	if err := CheckExpectations(step.Expectations, status, turn); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// CheckExpectations validates one turn response.
func CheckExpectations(exp Expectations, status int, turn *session.TurnResult) error {
	wantStatus := exp.Status
	if wantStatus == 0 {
		wantStatus = http.StatusOK
	}
	if status != wantStatus {
		return fmt.Errorf("expected status %d, got %d", wantStatus, status)
	}
	if turn == nil {
		return nil
	}

	if exp.Round != nil && turn.Game.Round != *exp.Round {
		return fmt.Errorf("expected round %d, got %d", *exp.Round, turn.Game.Round)
	}
	if exp.Stars != nil && turn.Game.Stars != *exp.Stars {
		return fmt.Errorf("expected stars %d, got %d", *exp.Stars, turn.Game.Stars)
	}
	if exp.Strikes != nil && turn.Game.Strikes != *exp.Strikes {
		return fmt.Errorf("expected strikes %d, got %d", *exp.Strikes, turn.Game.Strikes)
	}
	if exp.IsEnded != nil && turn.Game.Ended != *exp.IsEnded {
		return fmt.Errorf("expected is_ended to be %t, got %t", *exp.IsEnded, turn.Game.Ended)
	}
	if exp.EndType != nil && turn.Game.EndType != *exp.EndType {
		return fmt.Errorf("expected end_type %q, got %q", *exp.EndType, turn.Game.EndType)
	}
	if exp.IsPositive != nil && turn.Evaluation.IsPositive != *exp.IsPositive {
		return fmt.Errorf("expected is_positive to be %t, got %t", *exp.IsPositive, turn.Evaluation.IsPositive)
	}
	if exp.ReasonCode != nil && turn.Evaluation.ReasonCode != *exp.ReasonCode {
		return fmt.Errorf("expected reason_code %q, got %q", *exp.ReasonCode, turn.Evaluation.ReasonCode)
	}
	if exp.Emotion != nil && turn.Emotion != *exp.Emotion {
		return fmt.Errorf("expected emotion %q, got %q", *exp.Emotion, turn.Emotion)
	}
	if exp.Fallback != nil && turn.Fallback != *exp.Fallback {
		return fmt.Errorf("expected fallback to be %t, got %t", *exp.Fallback, turn.Fallback)
	}

	lowerResponse := strings.ToLower(turn.ChildReply)
	for _, expectedText := range exp.ResponseContains {
		if !strings.Contains(lowerResponse, strings.ToLower(expectedText)) {
			return fmt.Errorf("expected response to contain '%s', got %q", expectedText, turn.ChildReply)
		}
	}
	for _, unexpectedText := range exp.ResponseNotContains {
		if strings.Contains(lowerResponse, strings.ToLower(unexpectedText)) {
			return fmt.Errorf("expected response to NOT contain '%s', got %q", unexpectedText, turn.ChildReply)
		}
	}
	if exp.ResponseRegex != "" {
		matched, err := regexp.MatchString(exp.ResponseRegex, turn.ChildReply)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("response didn't match regex pattern: %s", exp.ResponseRegex)
		}
	}
	if exp.ResponseMaxLength != nil {
		if n := utf8.RuneCountInString(turn.ChildReply); n > *exp.ResponseMaxLength {
			return fmt.Errorf("expected response length <= %d, got %d", *exp.ResponseMaxLength, n)
		}
	}
	if exp.SuggestionCount != nil && len(turn.Suggestions) != *exp.SuggestionCount {
		return fmt.Errorf("expected %d suggestions, got %d", *exp.SuggestionCount, len(turn.Suggestions))
	}
	return nil
}

// CheckReport validates the session analysis.
func CheckReport(exp ReportExpectation, report *analysis.Report) error {
	if exp.Interventions != nil && len(report.Interventions) != *exp.Interventions {
		return fmt.Errorf("expected %d interventions, got %d", *exp.Interventions, len(report.Interventions))
	}
	if exp.Outcome != nil && report.Outcome != *exp.Outcome {
		return fmt.Errorf("expected outcome %q, got %q", *exp.Outcome, report.Outcome)
	}
	if len(exp.Evaluations) > 0 {
		if len(exp.Evaluations) != len(report.Interventions) {
			return fmt.Errorf("expected %d evaluations, report has %d interventions", len(exp.Evaluations), len(report.Interventions))
		}
		for i, want := range exp.Evaluations {
			if got := report.Interventions[i].Evaluation; got != want {
				return fmt.Errorf("intervention %d: expected %q, got %q", i+1, want, got)
			}
		}
	}
	return nil
}
