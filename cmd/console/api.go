package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/ringtrail/internal/handlers"
)

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

func createRun(client *http.Client, baseURL string, req handlers.CreateRunRequest) (*handlers.RunResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/runs",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeRunResponse(resp, http.StatusCreated)
}

func getRun(client *http.Client, baseURL string, runID uuid.UUID) (*handlers.RunResponse, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/runs/%s", baseURL, runID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeRunResponse(resp, http.StatusOK)
}

func postTravel(client *http.Client, baseURL string, runID uuid.UUID, op string) (*handlers.RunResponse, error) {
	return postRunOp(client, baseURL, runID, "travel", handlers.TravelRequest{Op: op})
}

func postTick(client *http.Client, baseURL string, runID uuid.UUID) (*handlers.RunResponse, error) {
	return postRunOp(client, baseURL, runID, "tick", struct{}{})
}

func postChoice(client *http.Client, baseURL string, runID uuid.UUID, optionIndex int) (*handlers.RunResponse, error) {
	return postRunOp(client, baseURL, runID, "choice", handlers.ChoiceRequest{OptionIndex: optionIndex})
}

func postCamp(client *http.Client, baseURL string, runID uuid.UUID, kind string) (*handlers.RunResponse, error) {
	return postRunOp(client, baseURL, runID, "camp", handlers.CampRequest{Kind: kind})
}

func postTown(client *http.Client, baseURL string, runID uuid.UUID, actionID string) (*handlers.RunResponse, error) {
	return postRunOp(client, baseURL, runID, "town", handlers.TownRequest{ActionID: actionID})
}

func postRunOp(client *http.Client, baseURL string, runID uuid.UUID, op string, req any) (*handlers.RunResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/runs/%s/%s", baseURL, runID, op),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeRunResponse(resp, http.StatusOK)
}

func decodeRunResponse(resp *http.Response, wantStatus int) (*handlers.RunResponse, error) {
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%s", errorResp.Error)
	}

	var runResp handlers.RunResponse
	if err := json.Unmarshal(body, &runResp); err != nil {
		return nil, fmt.Errorf("failed to parse run response: %w", err)
	}
	return &runResp, nil
}
