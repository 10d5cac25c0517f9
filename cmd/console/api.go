package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/jwebster45206/chronicle/internal/handlers"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/session"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// call sends in as a JSON body (when non-nil) and decodes the response into
// out (when non-nil). Any status other than want is an error carrying the
// API's error message.
func call(client *http.Client, method, target string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("%s %s failed: %s", method, target, errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func listEras(client *http.Client, baseURL string) ([]handlers.EraSummary, error) {
	var eras []handlers.EraSummary
	if err := call(client, http.MethodGet, baseURL+"/v1/eras", nil, http.StatusOK, &eras); err != nil {
		return nil, err
	}
	return eras, nil
}

func getWorld(client *http.Client, baseURL, eraID string) (*era.World, error) {
	var world era.World
	target := fmt.Sprintf("%s/v1/eras/%s", baseURL, url.PathEscape(eraID))
	if err := call(client, http.MethodGet, target, nil, http.StatusOK, &world); err != nil {
		return nil, err
	}
	return &world, nil
}

func getAnalysis(client *http.Client, baseURL, eraID, regionID string) (*handlers.AnalysisResponse, error) {
	var res handlers.AnalysisResponse
	target := fmt.Sprintf("%s/v1/eras/%s/regions/%s/analysis", baseURL, url.PathEscape(eraID), url.PathEscape(regionID))
	if err := call(client, http.MethodGet, target, nil, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func getNarration(client *http.Client, baseURL, eraID, regionID string) (*handlers.NarrationResponse, error) {
	var res handlers.NarrationResponse
	target := fmt.Sprintf("%s/v1/eras/%s/regions/%s/narration", baseURL, url.PathEscape(eraID), url.PathEscape(regionID))
	if err := call(client, http.MethodGet, target, nil, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// createSession starts a session at eraID, or at the first era when eraID is empty.
func createSession(client *http.Client, baseURL, eraID string) (*session.Session, error) {
	var s session.Session
	req := handlers.CreateSessionRequest{EraID: eraID}
	if err := call(client, http.MethodPost, baseURL+"/v1/sessions", req, http.StatusCreated, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func applyAction(client *http.Client, baseURL string, id uuid.UUID, action session.Action) (*session.Session, error) {
	var s session.Session
	target := fmt.Sprintf("%s/v1/sessions/%s", baseURL, id)
	if err := call(client, http.MethodPatch, target, action, http.StatusOK, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func deleteSession(client *http.Client, baseURL string, id uuid.UUID) error {
	target := fmt.Sprintf("%s/v1/sessions/%s", baseURL, id)
	return call(client, http.MethodDelete, target, nil, http.StatusNoContent, nil)
}
