package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/sentry-coach/internal/handlers"
	"github.com/jwebster45206/sentry-coach/internal/session"
	"github.com/jwebster45206/sentry-coach/pkg/analysis"
)

// apiClient talks to the coach API.
type apiClient struct {
	http    *http.Client
	baseURL string
}

func newAPIClient(client *http.Client, baseURL string) *apiClient {
	return &apiClient{http: client, baseURL: baseURL}
}

func (c *apiClient) testConnection() bool {
	resp, err := c.http.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return resp.StatusCode == http.StatusOK
}

func (c *apiClient) createSession(language string) (*handlers.SessionResponse, error) {
	var out handlers.SessionResponse
	err := c.do(http.MethodPost, "/v1/sessions", handlers.CreateSessionRequest{Language: language}, http.StatusCreated, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &out, nil
}

func (c *apiClient) submitTurn(id uuid.UUID, message string) (*session.TurnResult, error) {
	var out session.TurnResult
	body := map[string]string{"adult_message": message}
	if err := c.do(http.MethodPost, "/v1/sessions/"+id.String()+"/turns", body, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("turn failed: %w", err)
	}
	return &out, nil
}

func (c *apiClient) getAnalysis(id uuid.UUID) (*analysis.Report, error) {
	var out analysis.Report
	if err := c.do(http.MethodGet, "/v1/sessions/"+id.String()+"/analysis", nil, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &out, nil
}

func (c *apiClient) deleteSession(id uuid.UUID) error {
	if err := c.do(http.MethodDelete, "/v1/sessions/"+id.String(), nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// do sends a JSON request and decodes the response into out when the status
// matches. API error bodies are surfaced as the error text.
func (c *apiClient) do(method, path string, in any, wantStatus int, out any) error {
	var reqBody io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
