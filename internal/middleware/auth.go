package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const (
	ContextIdentity = "identity"
	ContextClaims   = "claims"
)

// IdentityResolver carrega o dono do token (usuário + perfil).
type IdentityResolver interface {
	Execute(ctx context.Context, userID uint) (account.Identity, error)
}

var (
	errMissingHeader = httperr.ErrAuthentication("missing_authorization_header", "Credenciais não informadas.")
	errInvalidHeader = httperr.ErrAuthentication("invalid_authorization_header", "Cabeçalho de autorização inválido.")
	errInvalidToken  = httperr.ErrAuthentication("invalid_token", "Token inválido ou expirado.")
	errRevokedToken  = httperr.ErrAuthentication("revoked_token", "Token revogado.")
	errForbidden     = httperr.ErrAuthorization("forbidden", "Você não tem permissão para esta operação.")
)

// AuthMiddleware valida o bearer, consulta a lista de revogação e resolve a
// identidade. Qualquer falha aborta antes do handler.
func AuthMiddleware(
	tokens *auth.TokenIssuer,
	revocations auth.RevocationStore,
	identities IdentityResolver,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, errMissingHeader)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, errInvalidHeader)
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, errInvalidToken)
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if revoked {
			httperr.Abort(c, errRevokedToken)
			return
		}

		identity, err := identities.Execute(c.Request.Context(), claims.UserID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextIdentity, identity)

		c.Next()
	}
}

// RequireRole deixa passar só os papéis informados. Usar depois do AuthMiddleware.
func RequireRole(roles ...account.Role) gin.HandlerFunc {
	allowed := make(map[account.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			httperr.Abort(c, errMissingHeader)
			return
		}
		if _, ok := allowed[id.Role()]; !ok {
			httperr.Abort(c, errForbidden)
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (account.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return account.Identity{}, false
	}
	id, ok := v.(account.Identity)
	return id, ok
}

func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
