package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// StatsSink is the remote endpoint that accumulates usage numbers and
// the list of known user IDs across restarts. The bot itself keeps no
// durable state, so this is the only place the broadcast command can
// learn who to notify.
type StatsSink struct {
	baseURL string
	client  *http.Client
}

func NewStatsSink(baseURL string) *StatsSink {
	return &StatsSink{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

type statsPayload struct {
	UserCount      int   `json:"userCount"`
	LinksProcessed int64 `json:"linksProcessed"`
}

// SaveStats pushes the daily snapshot to the sink.
func (s *StatsSink) SaveStats(userCount int, linksProcessed int64) error {
	payload, err := json.Marshal(statsPayload{UserCount: userCount, LinksProcessed: linksProcessed})
	if err != nil {
		return fmt.Errorf("error marshalling stats payload: %v", err)
	}

	resp, err := s.client.Get(s.baseURL + "/r/?data=" + url.QueryEscape(string(payload)))
	if err != nil {
		return fmt.Errorf("error saving stats: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("non-OK HTTP status from stats sink: %s\nResponse body: %s", resp.Status, string(body))
	}
	return nil
}

// SaveUserID registers a user ID with the sink's user directory.
func (s *StatsSink) SaveUserID(userID int64) error {
	resp, err := s.client.Get(fmt.Sprintf("%s/r/id.php?data=%d", s.baseURL, userID))
	if err != nil {
		return fmt.Errorf("error saving user ID: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("non-OK HTTP status from stats sink: %s\nResponse body: %s", resp.Status, string(body))
	}
	return nil
}

// FetchUserIDs returns every user ID the directory knows about, in file
// order, duplicates included. Lines that are not numeric are skipped.
func (s *StatsSink) FetchUserIDs() ([]int64, error) {
	resp, err := s.client.Get(s.baseURL + "/r/ids.txt")
	if err != nil {
		return nil, fmt.Errorf("error fetching user IDs: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading user IDs: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-OK HTTP status from stats sink: %s\nResponse body: %s", resp.Status, string(body))
	}

	var userIDs []int64
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			continue
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, nil
}
