package fetch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

// headerTransport injects a fixed set of request headers before
// delegating to the base RoundTripper.
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}

// LoadHeaders reads custom HTTP request headers from a JSON file mapping
// header names to values. An empty path yields no headers.
func LoadHeaders(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read headers file: %w", err)
	}

	var headers map[string]string
	if err := json.Unmarshal(data, &headers); err != nil {
		return nil, fmt.Errorf("parse headers file %s: %w", path, err)
	}

	return headers, nil
}
