package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
	"ratemymovie/internal/pkg/response"
	"ratemymovie/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote (não colide com chaves string).
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
	RequestIDKey
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// que serão anexados ao contexto.
type UserClaims struct {
	UserID    string
	Nome      string
	TokenID   string
	ExpiresAt time.Time
}

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// RevocationChecker consulta tokens encerrados por logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewAuthMiddleware cria um middleware que valida o JWT do header Authorization,
// rejeita tokens revogados e anexa as claims ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenValidator, revocations RevocationChecker, log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || strings.TrimSpace(tokenString) == "" {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			// 3. Verificar revogação (logout)
			if revocations != nil {
				revoked, err := revocations.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					// Cache indisponível: o token continua aceito até expirar.
					log.Warn("Falha ao consultar revogação de token.", map[string]interface{}{"error": err.Error()})
				} else if revoked {
					response.Error(w, r, log, apperror.NewUnauthorizedError("Sessão encerrada. Faça login novamente."))
					return
				}
			}

			// 4. Anexar Claims ao Contexto
			userClaims := UserClaims{
				UserID:  claims.UserID,
				Nome:    claims.Nome,
				TokenID: claims.ID,
			}
			if claims.ExpiresAt != nil {
				userClaims.ExpiresAt = claims.ExpiresAt.Time
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// WithUserClaims anexa claims ao contexto (usado em testes de handlers).
func WithUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, UserClaimsKey, claims)
}
