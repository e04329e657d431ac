package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/wenturc/prompt-market/internal/api/metrics"
	"github.com/wenturc/prompt-market/internal/core/domain"
	"github.com/wenturc/prompt-market/internal/core/ports"
	"github.com/wenturc/prompt-market/internal/infrastructure/httpclient"
	"github.com/wenturc/prompt-market/pkg/token"
)

// SessionService owns the single process-wide session. The persisted
// credential record is a durable mirror: written on every login/logout,
// read once at init. No ambient global header exists; the shared HTTP
// client pulls the token through a supplier instead.
type SessionService struct {
	creds    ports.CredentialStore
	api      *http.Client
	apiBase  string
	validate *validator.Validate
	log      zerolog.Logger

	mu      sync.RWMutex
	session domain.Session
}

func NewSessionService(creds ports.CredentialStore, api *http.Client, apiBase string, log zerolog.Logger) *SessionService {
	return &SessionService{
		creds:    creds,
		api:      api,
		apiBase:  strings.TrimRight(apiBase, "/"),
		validate: validator.New(),
		log:      log,
	}
}

// Init hydrates the session from the persisted credential record and runs a
// best-effort identity probe against the primary API.
//
// Probe policy is deliberately lenient: only a definite 401 invalidates the
// token. A backend that is down or misbehaving must never force a logged-in
// user out.
func (s *SessionService) Init(ctx context.Context) bool {
	rec, err := s.creds.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("credential record unreadable, starting as guest")
		metrics.SessionInitsTotal.WithLabelValues("guest").Inc()
		return false
	}
	if rec == nil {
		s.log.Debug().Msg("no stored credentials found")
		metrics.SessionInitsTotal.WithLabelValues("guest").Inc()
		return false
	}

	s.mu.Lock()
	s.session = domain.Session{
		Token:    rec.Token,
		Username: rec.Username,
		Role:     rec.Role,
	}
	s.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase+"/api/token-info", nil)
	if err != nil {
		metrics.SessionInitsTotal.WithLabelValues("optimistic").Inc()
		return true
	}

	res, err := s.api.Do(req)
	if err != nil {
		// Network-class failure: keep the session optimistically valid.
		s.log.Warn().Err(err).Msg("identity probe unreachable, keeping session")
		metrics.SessionInitsTotal.WithLabelValues("optimistic").Inc()
		return true
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		s.log.Warn().Str("username", rec.Username).Msg("stored token rejected, logging out")
		if err := s.Logout(ctx); err != nil {
			s.log.Error().Err(err).Msg("logout after expired token failed")
		}
		metrics.SessionInitsTotal.WithLabelValues("expired").Inc()
		return false

	case res.StatusCode == http.StatusOK:
		var body struct {
			UserID json.Number `json:"user_id"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
			s.mu.Lock()
			s.session.UserID = body.UserID.String()
			s.mu.Unlock()
		}
		s.log.Info().Str("username", rec.Username).Msg("session restored")
		metrics.SessionInitsTotal.WithLabelValues("valid").Inc()
		return true

	default:
		// Anything else (404 from a missing probe endpoint, 5xx) keeps
		// the session valid.
		s.log.Warn().Int("status", res.StatusCode).Msg("identity probe inconclusive, keeping session")
		metrics.SessionInitsTotal.WithLabelValues("optimistic").Inc()
		return true
	}
}

// Login overwrites the session and writes the credential record. Missing
// role and user id are backfilled from the token payload when readable;
// this is display metadata only, never a verified claim.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) error {
	role := creds.Role
	userID := creds.UserID
	if claims := token.Decode(creds.AccessToken); claims != nil {
		if role == "" {
			role = claims.Role
		}
		if userID == "" {
			userID = claims.UserID
		}
	}
	if role == "" {
		role = domain.RoleUser
	}

	s.mu.Lock()
	s.session = domain.Session{
		Token:    strings.TrimSpace(creds.AccessToken),
		Username: creds.Username,
		UserID:   userID,
		Role:     role,
	}
	rec := domain.CredentialRecord{
		Token:    s.session.Token,
		Username: s.session.Username,
		Role:     s.session.Role,
	}
	s.mu.Unlock()

	if err := s.creds.Save(ctx, rec); err != nil {
		return err
	}
	s.log.Info().Str("username", creds.Username).Str("role", role).Msg("logged in")
	return nil
}

// Logout clears the session and deletes the credential record.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		return err
	}
	s.log.Info().Msg("logged out")
	return nil
}

// Register checks the payload locally, then forwards it to the upstream
// registration endpoint verbatim.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	if err := s.validate.Struct(in); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("validation").Inc()
		return nil, registerValidationError(err)
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBase+"/api/register", strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.api.Do(req)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer res.Body.Close()

	var body struct {
		UserID  json.Number `json:"user_id"`
		Message string      `json:"msg"`
	}
	_ = json.NewDecoder(res.Body).Decode(&body)

	switch {
	case res.StatusCode == http.StatusConflict:
		metrics.RegistrationsTotal.WithLabelValues("taken").Inc()
		return nil, domain.ErrUsernameTaken

	case res.StatusCode >= 400:
		metrics.RegistrationsTotal.WithLabelValues("server").Inc()
		if body.Message != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrServer, body.Message)
		}
		return nil, fmt.Errorf("%w (%d)", domain.ErrServer, res.StatusCode)

	default:
		metrics.RegistrationsTotal.WithLabelValues("created").Inc()
		s.log.Info().Str("username", in.Username).Msg("registration forwarded")
		return &ports.RegisterResult{UserID: body.UserID.String(), Message: body.Message}, nil
	}
}

// AuthHeader returns {} when logged out, otherwise one canonical
// Authorization entry.
func (s *SessionService) AuthHeader() map[string]string {
	s.mu.RLock()
	tok := s.session.Token
	s.mu.RUnlock()

	if tok == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": httpclient.FormatAuthHeader(tok)}
}

// Snapshot returns a copy of the current session.
func (s *SessionService) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// registerValidationError maps the first failed field check to the
// human-readable message the caller displays directly.
func registerValidationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fe := ve[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "min":
		return fmt.Errorf("%w: %s must be at least %s characters", domain.ErrValidation, field, fe.Param())
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	case "email":
		return fmt.Errorf("%w: %s must be a valid email", domain.ErrValidation, field)
	default:
		return fmt.Errorf("%w: %s is invalid", domain.ErrValidation, field)
	}
}
