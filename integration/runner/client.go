package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/sentry-coach/internal/handlers"
	"github.com/jwebster45206/sentry-coach/internal/session"
	"github.com/jwebster45206/sentry-coach/pkg/analysis"
)

// CreateSession starts a session and returns its ID.
func CreateSession(ctx context.Context, client *http.Client, baseURL, language string) (uuid.UUID, error) {
	var out handlers.SessionResponse
	status, body, err := doJSON(ctx, client, http.MethodPost, baseURL+"/v1/sessions", handlers.CreateSessionRequest{Language: language})
	if err != nil {
		return uuid.Nil, err
	}
	if status != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("create session returned %d: %s", status, string(body))
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return out.SessionID, nil
}

// PostTurn submits an adult message. The status is returned alongside the
// decoded result so callers can assert on rejections.
func PostTurn(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID, message string) (int, *session.TurnResult, error) {
	status, body, err := doJSON(ctx, client, http.MethodPost, baseURL+"/v1/sessions/"+id.String()+"/turns", map[string]string{"adult_message": message})
	if err != nil {
		return 0, nil, err
	}
	if status != http.StatusOK {
		return status, nil, nil
	}
	var out session.TurnResult
	if err := json.Unmarshal(body, &out); err != nil {
		return status, nil, fmt.Errorf("failed to decode turn result: %w", err)
	}
	return status, &out, nil
}

// GetAnalysis fetches the JSON analysis for a session.
func GetAnalysis(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID) (*analysis.Report, error) {
	status, body, err := doJSON(ctx, client, http.MethodGet, baseURL+"/v1/sessions/"+id.String()+"/analysis", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("analysis returned %d: %s", status, string(body))
	}
	var out analysis.Report
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return &out, nil
}

// DeleteSession removes a session. Not-found is not an error.
func DeleteSession(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID) error {
	status, body, err := doJSON(ctx, client, http.MethodDelete, baseURL+"/v1/sessions/"+id.String(), nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusNotFound {
		return fmt.Errorf("delete returned %d: %s", status, string(body))
	}
	return nil
}

func doJSON(ctx context.Context, client *http.Client, method, url string, in any) (int, []byte, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
