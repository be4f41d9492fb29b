package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// StatusError is returned when the external service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

// ExternalAPIService is a struct representing a configurable external service
type ExternalAPIService struct {
	client  *http.Client
	headers map[string]string
}

// NewExternalAPIService creates a service whose requests are bounded by timeout and carry headers.
func NewExternalAPIService(timeout time.Duration, headers map[string]string) *ExternalAPIService {
	return &ExternalAPIService{
		client:  &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// makeRequest executes the request and fails on any non-2xx status, closing the body in that case.
func (s *ExternalAPIService) makeRequest(ctx context.Context, method, endpoint string, params url.Values) (*http.Response, error) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(snippet)}
	}
	return resp, nil
}

// Get makes a GET request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, http.MethodGet, endpoint, params)
}

// GetJSON performs a GET and decodes the JSON response into result.
func (s *ExternalAPIService) GetJSON(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	resp, err := s.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}
