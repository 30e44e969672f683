package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type saveRequest struct {
	Data *string `json:"data"`
}

type response struct {
	Success  bool    `json:"success"`
	Data     *string `json:"data,omitempty"`
	Revision string  `json:"revision,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// HTTPStore talks to a drawdle server's /api/save and /api/load endpoints.
type HTTPStore struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPStore returns a client for the server at baseURL. A nil client
// uses one with a 30 second timeout.
func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPStore{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

// Save posts data to /api/save.
func (h *HTTPStore) Save(ctx context.Context, data string) error {
	body, err := json.Marshal(saveRequest{Data: &data})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/api/save", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = h.do(req)
	return err
}

// Load fetches /api/load.
func (h *HTTPStore) Load(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"/api/load", nil)
	if err != nil {
		return "", err
	}
	resp, err := h.do(req)
	if err != nil {
		return "", err
	}
	if resp.Data == nil {
		return EmptyDrawing, nil
	}
	return *resp.Data, nil
}

func (h *HTTPStore) do(req *http.Request) (*response, error) {
	res, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(io.LimitReader(res.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	var out response
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%s %s: %s: invalid response: %w", req.Method, req.URL.Path, res.Status, err)
	}
	if res.StatusCode != http.StatusOK || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = res.Status
		}
		return nil, fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, msg)
	}
	return &out, nil
}

func (h *HTTPStore) String() string { return h.BaseURL }
