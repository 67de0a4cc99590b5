package account

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

type LoginResult struct {
	Token auth.Token
	User  models.User
}

// ======================================================
// LOGIN
// ======================================================

type Login struct {
	store  store.Store
	hasher auth.Hasher
	tokens *auth.TokenIssuer
}

func NewLogin(s store.Store, hasher auth.Hasher, tokens *auth.TokenIssuer) *Login {
	return &Login{store: s, hasher: hasher, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, username, password string) (*LoginResult, error) {
	res, err := uc.login(ctx, username, password)
	switch {
	case err == nil:
		metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	case errors.Is(err, errInvalidCredentials):
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	}
	return res, err
}

func (uc *Login) login(ctx context.Context, username, password string) (*LoginResult, error) {
	repos := uc.store.Repos()

	u, err := repos.Accounts.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, orNotFound(err, errInvalidCredentials)
	}

	if !u.IsActive || !uc.hasher.Verify(u.PasswordHash, password) {
		return nil, errInvalidCredentials
	}

	// conta sem o perfil do papel não autentica
	if _, err := domain.IdentityFor(u); err != nil {
		return nil, errInvalidCredentials
	}

	tok, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	if err := repos.Audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(u.ID),
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
	}); err != nil {
		return nil, err
	}

	return &LoginResult{Token: tok, User: *u}, nil
}

// ======================================================
// LOGOUT
// ======================================================

type Logout struct {
	revocations auth.RevocationStore
}

func NewLogout(revocations auth.RevocationStore) *Logout {
	return &Logout{revocations: revocations}
}

func (uc *Logout) Execute(ctx context.Context, jti string, expiresAt time.Time) error {
	return uc.revocations.Revoke(ctx, jti, expiresAt)
}

// ======================================================
// IDENTITY
// ======================================================

var errAccountUnavailable = httperr.ErrAuthentication("account_unavailable", "Conta inexistente ou desativada.")

// ResolveIdentity carrega o dono de um token. Conta removida, desativada
// ou sem perfil falha como autenticação.
type ResolveIdentity struct {
	store store.Store
}

func NewResolveIdentity(s store.Store) *ResolveIdentity {
	return &ResolveIdentity{store: s}
}

func (uc *ResolveIdentity) Execute(ctx context.Context, userID uint) (domain.Identity, error) {
	u, err := uc.store.Repos().Accounts.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, errAccountUnavailable
		}
		return domain.Identity{}, err
	}

	if !u.IsActive {
		return domain.Identity{}, errAccountUnavailable
	}

	id, err := domain.IdentityFor(u)
	if err != nil {
		return domain.Identity{}, errAccountUnavailable
	}
	return id, nil
}
