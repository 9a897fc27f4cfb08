// Package api holds the thin HTTP clients for the external services the
// bot depends on: the ad link shortener, the streamer API and the remote
// stats sink.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// Shortener calls an ad-shortener endpoint of the form
// "https://host/api?api=KEY&url=". Two endpoints are configured and the
// active one can be toggled at runtime by the /change admin command.
type Shortener struct {
	mu        sync.Mutex
	endpoints [2]string
	active    int
	client    *http.Client
}

func NewShortener(primary, alternate string) *Shortener {
	return &Shortener{
		endpoints: [2]string{primary, alternate},
		client:    &http.Client{},
	}
}

type shortenResponse struct {
	ShortenedURL string `json:"shortenedUrl"`
}

// Shorten submits longURL to the active endpoint and returns the
// shortened URL. Any failure is an error; callers must not proceed
// without a shortened link.
func (s *Shortener) Shorten(longURL string) (string, error) {
	resp, err := s.client.Get(s.Active() + url.QueryEscape(longURL))
	if err != nil {
		return "", fmt.Errorf("error calling shortener: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading shortener response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-OK HTTP status from shortener: %s\nResponse body: %s", resp.Status, string(body))
	}

	var shortened shortenResponse
	if err := json.Unmarshal(body, &shortened); err != nil {
		return "", fmt.Errorf("error unmarshalling shortener response: %v", err)
	}
	if shortened.ShortenedURL == "" {
		return "", fmt.Errorf("shortener response carries no shortened URL: %s", string(body))
	}

	return shortened.ShortenedURL, nil
}

// Toggle switches between the primary and alternate endpoint and
// returns the one now active.
func (s *Shortener) Toggle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = 1 - s.active
	return s.endpoints[s.active]
}

// Active returns the endpoint currently in use.
func (s *Shortener) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endpoints[s.active]
}
