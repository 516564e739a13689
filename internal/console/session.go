package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/simp-lee/storeadmin/internal/gateway"
)

// loginResponse mirrors the token payload returned by POST /login.
type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Session holds the console's bearer token for the store API and refreshes it
// with the configured operator credentials when it is missing or expired.
// It implements gateway.TokenProvider; the gateway invalidates the session on
// any 401 so the next request triggers a fresh login.
type Session struct {
	email    string
	password string

	mu        sync.Mutex
	client    *gateway.Client
	token     string
	expiresAt time.Time
}

var _ gateway.TokenProvider = (*Session)(nil)

func NewSession(email, password string) *Session {
	return &Session{email: email, password: password}
}

// Bind attaches the API client used for login requests. The session cannot be
// constructed with the client directly because the client itself requires a
// token provider.
func (s *Session) Bind(client *gateway.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// Token returns the current bearer token, or "" when no session is active.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		s.token = ""
	}
	return s.token
}

// Invalidate drops the current token.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}

// Ensure logs in when no valid token is held. It renews tokens 30 seconds
// before expiry so in-flight requests do not race the deadline.
func (s *Session) Ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && (s.expiresAt.IsZero() || time.Now().Before(s.expiresAt.Add(-30*time.Second))) {
		return nil
	}
	if s.client == nil {
		return fmt.Errorf("session has no API client bound")
	}

	var resp loginResponse
	err := s.client.Post(ctx, "/login", map[string]string{
		"email":    s.email,
		"password": s.password,
	}, &resp)
	if err != nil {
		return fmt.Errorf("console login: %w", err)
	}

	s.token = resp.Token
	if resp.ExpiresAt > 0 {
		s.expiresAt = time.Unix(resp.ExpiresAt, 0)
	} else {
		s.expiresAt = time.Time{}
	}
	return nil
}
