package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/jwebster45206/sentry-coach/integration/runner"
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/state"
)

// CaseValidator checks conversation script files used by the integration runner.
type CaseValidator struct {
	errors []string
}

// allowedStatuses are the turn responses a script may expect.
var allowedStatuses = []int{
	http.StatusOK,
	http.StatusBadRequest,
	http.StatusNotFound,
	http.StatusConflict,
}

func (v *CaseValidator) validateFile(filename string) error {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("case file must have .json extension: %s", baseName)
	}
	if !isValidCaseFilename(strings.TrimSuffix(baseName, ".json")) {
		return fmt.Errorf("case filename '%s' must be lowercase snake_case (e.g., my_case.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var suite runner.TestSuite
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&suite); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.errors = nil
	v.validateSuite(&suite, filepath.Dir(filename))
	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *CaseValidator) validateSuite(s *runner.TestSuite, dir string) {
	if strings.TrimSpace(s.Name) == "" {
		v.addError("suite has no name")
	}

	switch {
	case s.IsSequence() && len(s.Steps) > 0:
		v.addError("suite has both steps and cases; use one or the other")
	case !s.IsSequence() && len(s.Steps) == 0:
		v.addError("suite has no steps")
	}

	for _, c := range s.Cases {
		if !isValidCaseFilename(strings.TrimSuffix(c, ".json")) || !strings.HasSuffix(c, ".json") {
			v.addError(fmt.Sprintf("case reference '%s' should be a lowercase snake_case .json file", c))
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, c)); err != nil {
			v.addError(fmt.Sprintf("case reference '%s' does not exist", c))
		}
	}

	for i, step := range s.Steps {
		v.validateStep(&step, i+1)
	}

	if s.Report != nil && s.Report.Outcome != nil {
		v.validateOutcome("report outcome", *s.Report.Outcome)
	}
}

func (v *CaseValidator) validateStep(step *runner.TestStep, n int) {
	label := fmt.Sprintf("step %d", n)
	if step.Name != "" {
		label = fmt.Sprintf("step %d (%s)", n, step.Name)
	}

	exp := step.Expectations
	status := exp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if !slices.Contains(allowedStatuses, status) {
		v.addError(fmt.Sprintf("%s expects unsupported status %d", label, status))
	}
	if strings.TrimSpace(step.AdultMessage) == "" && status != http.StatusBadRequest {
		v.addError(fmt.Sprintf("%s has an empty adult_message but does not expect 400", label))
	}
	if status != http.StatusOK && hasTurnExpectations(exp) {
		v.addError(fmt.Sprintf("%s expects status %d but also checks the turn result", label, status))
	}

	if exp.Emotion != nil && !slices.Contains(emotion.All, *exp.Emotion) {
		v.addError(fmt.Sprintf("%s has unknown emotion '%s'", label, *exp.Emotion))
	}
	if exp.EndType != nil {
		v.validateOutcome(label+" end_type", *exp.EndType)
	}
	if exp.ResponseRegex != "" {
		if _, err := regexp.Compile(exp.ResponseRegex); err != nil {
			v.addError(fmt.Sprintf("%s has an invalid response_regex: %v", label, err))
		}
	}
	if exp.Round != nil && (*exp.Round < 1 || *exp.Round > state.MaxRounds+1) {
		v.addError(fmt.Sprintf("%s expects round %d, outside 1..%d", label, *exp.Round, state.MaxRounds+1))
	}
	if exp.Stars != nil && (*exp.Stars < 0 || *exp.Stars > state.MaxStars) {
		v.addError(fmt.Sprintf("%s expects %d stars, outside 0..%d", label, *exp.Stars, state.MaxStars))
	}
	if exp.Strikes != nil && (*exp.Strikes < 0 || *exp.Strikes > state.MaxStrikes) {
		v.addError(fmt.Sprintf("%s expects %d strikes, outside 0..%d", label, *exp.Strikes, state.MaxStrikes))
	}
}

func (v *CaseValidator) validateOutcome(field string, o state.Outcome) {
	if o != state.OutcomeSuccess && o != state.OutcomeFailure {
		v.addError(fmt.Sprintf("%s '%s' must be 'success' or 'failure'", field, o))
	}
}

func hasTurnExpectations(exp runner.Expectations) bool {
	return exp.Round != nil || exp.Stars != nil || exp.Strikes != nil || exp.IsEnded != nil ||
		exp.EndType != nil || exp.IsPositive != nil || exp.ReasonCode != nil || exp.Emotion != nil ||
		exp.Fallback != nil || len(exp.ResponseContains) > 0 || len(exp.ResponseNotContains) > 0 ||
		exp.ResponseRegex != "" || exp.ResponseMaxLength != nil || exp.SuggestionCount != nil
}

func (v *CaseValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidCaseFilename(name string) bool {
	// Allow 'x.' prefix for experimental cases
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
