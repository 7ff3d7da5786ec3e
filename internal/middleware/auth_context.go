package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"dairysync/internal/platform/web"
	"dairysync/internal/ports/auth"
	"dairysync/internal/ports/capabilities"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TokenSource extrae el token de sesión del request (cookie).
type TokenSource func(r *http.Request) string

// AuthContext:
//   - Si verifier != nil y hay token => intenta Verify() y setea claims.
//   - Si verifier == nil => modo dev: X-Debug-User-ID + X-Debug-Role setean claims,
//     y las capabilities salen del resolver.
//   - Sin claims el request sigue igual; RequireSession/RequireCapability deciden.
func AuthContext(verifier auth.AuthVerifier, tokens TokenSource, resolver capabilities.CapabilitiesResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				claims := auth.Claims{
					UserID:   uid,
					UserRole: strings.ToLower(strings.TrimSpace(r.Header.Get("X-Debug-Role"))),
				}
				if resolver != nil {
					caps, err := resolver.Resolve(r.Context(), claims.UserRole)
					if err == nil {
						claims.Capabilities = caps
					}
				}
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
				return
			}

			token := ""
			if tokens != nil {
				token = tokens(r)
			}
			if token == "" {
				token = bearerToken(r.Header.Get("Authorization"))
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// Token inválido o vencido: seguimos como anónimo.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok && c.Authenticated()
}

// RequireSession: sin sesión, los GET redirigen a /login?next=<path>
// y el resto responde 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		web.WriteError(w, http.StatusUnauthorized, "unauthorized")
	})
}

// RequireCapability asume RequireSession antes; sin la capability => 403.
func RequireCapability(c capabilities.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				web.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !claims.Can(c) {
				web.WriteError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
