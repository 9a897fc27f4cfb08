package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Streamer resolves a recognized content link into a direct playable
// URL via the external streamer API.
type Streamer struct {
	baseURL string
	client  *http.Client
}

func NewStreamer(baseURL string) *Streamer {
	return &Streamer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

type resolveResponse struct {
	URL string `json:"url"`
}

// Resolve returns the direct playable URL for link.
func (s *Streamer) Resolve(link string) (string, error) {
	resp, err := s.client.Get(s.baseURL + "/?link=" + url.QueryEscape(link))
	if err != nil {
		return "", fmt.Errorf("error calling streamer API: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading streamer response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-OK HTTP status from streamer API: %s\nResponse body: %s", resp.Status, string(body))
	}

	var resolved resolveResponse
	if err := json.Unmarshal(body, &resolved); err != nil {
		return "", fmt.Errorf("error unmarshalling streamer response: %v", err)
	}
	if resolved.URL == "" {
		return "", fmt.Errorf("streamer response carries no URL: %s", string(body))
	}

	return resolved.URL, nil
}
