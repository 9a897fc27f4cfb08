package access

import (
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeShortener struct {
	mu       sync.Mutex
	requests []string
	fail     bool
}

func (f *fakeShortener) Shorten(longURL string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", errors.New("shortener unavailable")
	}
	f.requests = append(f.requests, longURL)
	return "https://short.example/abc", nil
}

func (f *fakeShortener) lastCode(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatalf("shortener was never called")
	}
	u, err := url.Parse(f.requests[len(f.requests)-1])
	if err != nil {
		t.Fatalf("shortener received a malformed URL: %v", err)
	}
	code := u.Query().Get("start")
	if code == "" {
		t.Fatalf("verification URL %q carries no code", f.requests[len(f.requests)-1])
	}
	return code
}

type fakeRecorder struct {
	mu       sync.Mutex
	verified []int64
}

func (f *fakeRecorder) RecordUserVerified(userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verified = append(f.verified, userID)
}

func newTestEngine(now *time.Time, shorten Shortener, cfg EngineConfig) *Engine {
	store := NewStoreWithClock(func() time.Time { return *now })
	return NewEngine(store, NewCodeRegistry(), shorten, &fakeRecorder{}, cfg)
}

func TestVerificationFlow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	shortener := &fakeShortener{}
	recorder := &fakeRecorder{}
	store := NewStoreWithClock(func() time.Time { return now })
	engine := NewEngine(store, NewCodeRegistry(), shortener, recorder, EngineConfig{BotUsername: "TeraboxAdsFreeBot"})

	shortURL, err := engine.BeginVerification(42)
	if err != nil {
		t.Fatalf("BeginVerification: %v", err)
	}
	if shortURL != "https://short.example/abc" {
		t.Fatalf("expected the shortened URL back, got %q", shortURL)
	}

	longURL := shortener.requests[0]
	if !strings.HasPrefix(longURL, "https://telegram.me/TeraboxAdsFreeBot?start=") {
		t.Fatalf("unexpected verification deep link %q", longURL)
	}

	code := shortener.lastCode(t)
	userID, err := engine.Redeem(code)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected code to redeem for user 42, got %d", userID)
	}
	if !engine.IsAuthorized(42) {
		t.Fatalf("expected user to be authorized after redemption")
	}
	if len(recorder.verified) != 1 || recorder.verified[0] != 42 {
		t.Fatalf("expected user 42 to be recorded as verified, got %v", recorder.verified)
	}

	now = now.Add(AccessWindow - time.Minute)
	if !engine.IsAuthorized(42) {
		t.Fatalf("expected access to last the full window")
	}

	now = now.Add(2 * time.Minute)
	if engine.IsAuthorized(42) {
		t.Fatalf("expected access to lapse after the window")
	}
}

func TestWindowCountsFromRedemptionNotIssuance(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	shortener := &fakeShortener{}
	engine := newTestEngine(&now, shortener, EngineConfig{BotUsername: "bot"})

	if _, err := engine.BeginVerification(42); err != nil {
		t.Fatalf("BeginVerification: %v", err)
	}
	code := shortener.lastCode(t)

	now = now.Add(3 * time.Hour)
	if _, err := engine.Redeem(code); err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	now = now.Add(AccessWindow - time.Minute)
	if !engine.IsAuthorized(42) {
		t.Fatalf("expected the window to start at redemption time")
	}
	now = now.Add(2 * time.Minute)
	if engine.IsAuthorized(42) {
		t.Fatalf("expected the window to end 12 hours after redemption")
	}
}

func TestRedeemUnknownCode(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(&now, &fakeShortener{}, EngineConfig{BotUsername: "bot"})

	if _, err := engine.Redeem("0000000"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if engine.IsAuthorized(42) {
		t.Fatalf("expected a failed redemption to change nothing")
	}
}

func TestRedeemWhileStillAuthorized(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	shortener := &fakeShortener{}
	engine := newTestEngine(&now, shortener, EngineConfig{BotUsername: "bot"})

	if _, err := engine.BeginVerification(42); err != nil {
		t.Fatalf("BeginVerification: %v", err)
	}
	first := shortener.lastCode(t)
	if _, err := engine.Redeem(first); err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	granted := now.Add(AccessWindow)
	now = now.Add(time.Hour)
	userID, err := engine.Redeem(first)
	if !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected the resolved user back, got %d", userID)
	}

	// The original expiry must survive the rejected redemption.
	now = granted.Add(-time.Minute)
	if !engine.IsAuthorized(42) {
		t.Fatalf("expected the original window to be untouched")
	}
	now = granted.Add(time.Minute)
	if engine.IsAuthorized(42) {
		t.Fatalf("expected the original expiry, not an extended one")
	}
}

func TestBeginVerificationShortenerFailure(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(&now, &fakeShortener{fail: true}, EngineConfig{BotUsername: "bot"})

	if _, err := engine.BeginVerification(42); err == nil {
		t.Fatalf("expected shortener failure to propagate")
	}
}

func TestSingleUseCodes(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	shortener := &fakeShortener{}
	engine := newTestEngine(&now, shortener, EngineConfig{BotUsername: "bot", SingleUseCodes: true})

	if _, err := engine.BeginVerification(42); err != nil {
		t.Fatalf("BeginVerification: %v", err)
	}
	code := shortener.lastCode(t)
	if _, err := engine.Redeem(code); err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	now = now.Add(AccessWindow + time.Minute)
	if _, err := engine.Redeem(code); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected a consumed code to be invalid, got %v", err)
	}
}
