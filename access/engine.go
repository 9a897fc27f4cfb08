package access

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

// AccessWindow is how long a user may use the bot after redeeming a
// verification code.
const AccessWindow = 12 * time.Hour

// ErrInvalidCode is returned by Redeem for codes that were never issued.
var ErrInvalidCode = errors.New("unknown verification code")

// ErrAlreadyVerified is returned by Redeem when the resolved user still
// holds an unexpired window. The window is not extended.
var ErrAlreadyVerified = errors.New("user already has an active access window")

// Shortener turns a long URL into a shortened one.
type Shortener interface {
	Shorten(longURL string) (string, error)
}

// VerifiedRecorder receives the IDs of users who complete verification.
type VerifiedRecorder interface {
	RecordUserVerified(userID int64)
}

// EngineConfig wraps the Engine knobs to keep the constructor tidy.
type EngineConfig struct {
	// BotUsername is embedded in the deep link a code is redeemed through.
	BotUsername string
	// SingleUseCodes makes Redeem consume the code. This is a hardened
	// mode: the stock behavior leaves redeemed codes resolvable forever.
	SingleUseCodes bool
}

// Engine drives the verification lifecycle: issuing codes for
// unverified users, turning them into shortened deep links and granting
// the access window when a code comes back.
type Engine struct {
	store    *Store
	codes    *CodeRegistry
	shorten  Shortener
	verified VerifiedRecorder
	cfg      EngineConfig
	inflight singleflight.Group
}

func NewEngine(store *Store, codes *CodeRegistry, shorten Shortener, verified VerifiedRecorder, cfg EngineConfig) *Engine {
	return &Engine{
		store:    store,
		codes:    codes,
		shorten:  shorten,
		verified: verified,
		cfg:      cfg,
	}
}

// BeginVerification issues a fresh code for userID and returns a
// shortened deep link that redeems it. Earlier codes for the same user
// stay valid. Concurrent calls for one user (the update workers can run
// two handlers for the same user in parallel) share a single shortener
// round trip; sequential calls each get their own code.
func (e *Engine) BeginVerification(userID int64) (string, error) {
	v, err, _ := e.inflight.Do(strconv.FormatInt(userID, 10), func() (interface{}, error) {
		code := e.codes.Issue(userID)
		verifyURL := fmt.Sprintf("https://telegram.me/%s?start=%s", e.cfg.BotUsername, code)
		shortURL, err := e.shorten.Shorten(verifyURL)
		if err != nil {
			return nil, fmt.Errorf("shortening verification link: %w", err)
		}
		return shortURL, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Redeem resolves a code and grants the access window, counted from the
// time of redemption rather than issuance. Unknown codes return
// ErrInvalidCode and change nothing; a user who is still inside a
// window gets ErrAlreadyVerified and keeps the old expiry.
func (e *Engine) Redeem(code string) (int64, error) {
	userID, ok := e.codes.Resolve(code)
	if !ok {
		return 0, ErrInvalidCode
	}
	if e.store.IsAuthorized(userID) {
		return userID, ErrAlreadyVerified
	}
	if e.cfg.SingleUseCodes {
		e.codes.Remove(code)
	}
	e.store.Grant(userID, AccessWindow)
	if e.verified != nil {
		e.verified.RecordUserVerified(userID)
	}
	return userID, nil
}

// IsAuthorized reports whether userID currently holds a valid window.
func (e *Engine) IsAuthorized(userID int64) bool {
	return e.store.IsAuthorized(userID)
}

// ResetAll drops every access window; every user has to verify again.
func (e *Engine) ResetAll() {
	e.store.ResetAll()
}
