// Package biz implements the business logic of the site backend: request
// validation, parameter-object construction and the authentication flow.
package biz

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
	"github.com/edukit/campus/internal/site/store"
	apperrors "github.com/edukit/campus/pkg/errors"
	"github.com/edukit/campus/pkg/security/auth"
	"github.com/edukit/campus/pkg/security/auth/token"
	"github.com/edukit/campus/pkg/validator"
)

// invalidCredentialMessage is deliberately generic: it must not reveal
// whether the username or the password was wrong.
const invalidCredentialMessage = "These credentials do not match our records."

// dummyHash is a bcrypt hash of an unguessable value, compared against when
// the username does not exist so both failure paths cost one bcrypt round.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// LoginResult is returned to the client on successful authentication.
type LoginResult struct {
	User  *model.UserSummary `json:"user"`
	Token string             `json:"token"`
}

// AuthService authenticates credentials and manages session tokens.
type AuthService struct {
	store    store.Factory
	sessions token.Store
	ttl      time.Duration
}

// NewAuthService creates an AuthService issuing sessions with the given ttl.
func NewAuthService(store store.Factory, sessions token.Store, ttl time.Duration) *AuthService {
	return &AuthService{store: store, sessions: sessions, ttl: ttl}
}

func loginRules() *validator.RuleSet {
	return validator.NewRuleSet().
		Field("username", validator.Required(), validator.MaxLen(64)).
		Field("password", validator.Required())
}

// invalidCredentials builds the anti-enumeration error map. Both fields
// carry the same generic message so the payload is identical no matter
// which half of the pair was wrong.
func invalidCredentials() *validator.ValidationErrors {
	verrs := validator.NewValidationErrors()
	verrs.Append("username", "", invalidCredentialMessage)
	verrs.Append("password", "", invalidCredentialMessage)
	return verrs
}

// Login checks the identifier/secret pair and issues a session token. The
// issuance revokes every prior session of the account. Field problems and
// credential mismatches both come back as a validation map; err is reserved
// for infrastructure failures.
func (s *AuthService) Login(ctx context.Context, payload map[string]any) (*LoginResult, *validator.ValidationErrors, error) {
	if verrs := loginRules().Apply(payload); verrs != nil {
		return nil, verrs, nil
	}

	username := validator.StringOr(payload, "username", "")
	password := validator.StringOr(payload, "password", "")

	user, err := s.store.Users().Get(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrDatabase.WithCause(err)
		}
		// Burn a hash comparison anyway so missing accounts are not
		// distinguishable by response time.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, invalidCredentials(), nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, invalidCredentials(), nil
	}
	if !user.Enabled() {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	session, err := s.sessions.Issue(ctx, user.ID, s.ttl)
	if err != nil {
		return nil, nil, apperrors.ErrInternal.WithCause(err)
	}

	return &LoginResult{User: user.Summary(), Token: session.Token}, nil, nil
}

// Refresh exchanges a currently valid token for a fresh one. The issuance
// revokes the presented token along with any other session of the account.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*LoginResult, error) {
	user, err := s.resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Issue(ctx, user.ID, s.ttl)
	if err != nil {
		return nil, apperrors.ErrInternal.WithCause(err)
	}

	return &LoginResult{User: user.Summary(), Token: session.Token}, nil
}

// Logout revokes the presented token. Revoking an already-dead token is
// not an error.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, rawToken); err != nil {
		return apperrors.ErrInternal.WithCause(err)
	}
	return nil
}

// WhoAmI resolves a token to its account summary.
func (s *AuthService) WhoAmI(ctx context.Context, rawToken string) (*model.UserSummary, error) {
	user, err := s.resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	return user.Summary(), nil
}

// Principal resolves a token to the request principal used by middleware
// and the authorization layer.
func (s *AuthService) Principal(ctx context.Context, rawToken string) (*auth.Principal, error) {
	user, err := s.resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	return &auth.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) resolve(ctx context.Context, rawToken string) (*model.User, error) {
	if rawToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	session, err := s.sessions.Validate(ctx, rawToken)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, token.ErrTokenInvalid):
			return nil, apperrors.ErrUnauthorized
		default:
			return nil, apperrors.ErrInternal.WithCause(err)
		}
	}

	user, err := s.store.Users().GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Account deleted since the session was issued.
			_ = s.sessions.Revoke(ctx, rawToken)
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	if !user.Enabled() {
		_ = s.sessions.Revoke(ctx, rawToken)
		return nil, apperrors.ErrAccountDisabled
	}

	return user, nil
}
