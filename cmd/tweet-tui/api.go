package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

type tweetItem struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	Style     string    `json:"style"`
	CreatedAt time.Time `json:"createdAt"`
}

// envelope is the shape of every server answer.
type envelope struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Tweet   string      `json:"tweet"`
	ID      string      `json:"id"`
	Tweets  []tweetItem `json:"tweets"`
}

type apiClient struct {
	baseURL string
	client  *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	// generation waits on the inference agent, so allow more than its timeout
	return &apiClient{baseURL: baseURL, client: &http.Client{Timeout: 90 * time.Second}}
}

func (a *apiClient) generate(ctx context.Context, message string) (envelope, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return envelope{}, err
	}
	return a.do(ctx, http.MethodPost, "/api/generate", body)
}

func (a *apiClient) history(ctx context.Context, limit int) ([]tweetItem, error) {
	env, err := a.do(ctx, http.MethodGet, "/api/tweets?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		return nil, err
	}
	return env.Tweets, nil
}

func (a *apiClient) remove(ctx context.Context, id string) error {
	_, err := a.do(ctx, http.MethodDelete, "/api/tweets/"+id, nil)
	return err
}

func (a *apiClient) do(ctx context.Context, method, path string, body []byte) (envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return envelope{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("unexpected response (%d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		if env.Error == "" {
			return env, errors.New("request failed")
		}
		return env, errors.New(env.Error)
	}
	return env, nil
}
