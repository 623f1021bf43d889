package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"person-pet-registry/internal/domain/users"
	"person-pet-registry/internal/platform/httperr"
	"person-pet-registry/internal/platform/logger"
	"person-pet-registry/internal/platform/metrics"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Principal es la identidad autenticada que ven los handlers.
type Principal struct {
	Username string
	Roles    []users.Role
}

func (p Principal) HasRole(role users.Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func GetPrincipal(ctx context.Context) (Principal, bool) {
	v := ctx.Value(principalKey)
	if v == nil {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// Rule es un requisito de autorización: primer match (method, pattern)
// decide. Role vacío = basta con estar autenticado.
// Pattern soporta match exacto o prefijo con sufijo "/*".
type Rule struct {
	Method  string
	Pattern string
	Role    users.Role
}

// DefaultRules: la única ruta con rol es el update de dirección.
func DefaultRules() []Rule {
	return []Rule{
		{Method: http.MethodPut, Pattern: "/v1/person/*", Role: users.RoleAdmin},
	}
}

// DefaultAllowList: paths de diagnóstico/documentación sin auth.
func DefaultAllowList() []string {
	return []string{"/health", "/metrics", "/swagger/*"}
}

// Gate es el access gate HTTP Basic: autentica contra el repo de
// usuarios (hash bcrypt, comparación constant-time) y evalúa las
// reglas de autorización antes de que el request llegue a un service.
type Gate struct {
	users   users.Repository
	rules   []Rule
	allow   []string
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewGate(repo users.Repository, rules []Rule, allow []string, log logger.Logger, m *metrics.Metrics) *Gate {
	return &Gate{
		users:   repo,
		rules:   rules,
		allow:   allow,
		log:     log.With(map[string]any{"module": "gate"}),
		metrics: m,
	}
}

// dummyHash mantiene el costo de bcrypt también cuando el username no
// existe, para no delatar usuarios válidos por timing.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if matchAny(g.allow, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok {
			g.unauthorized(w, r, "missing credentials")
			return
		}

		u, err := g.users.GetByUsername(r.Context(), username)
		if err != nil {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			g.unauthorized(w, r, "unknown user")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			g.unauthorized(w, r, "wrong password")
			return
		}

		// Cuenta deshabilitada o bloqueada = autenticación fallida,
		// mismo 401 que credenciales inválidas (no filtramos el motivo).
		if !u.Enabled || u.Locked {
			g.unauthorized(w, r, "account disabled or locked")
			return
		}

		for _, rule := range g.rules {
			if rule.Method != r.Method || !matchPath(rule.Pattern, r.URL.Path) {
				continue
			}
			if rule.Role != "" && !u.HasRole(rule.Role) {
				g.log.Warn("forbidden", map[string]any{
					"user": u.Username,
					"path": r.URL.Path,
					"need": string(rule.Role),
				})
				httperr.Write(w, r, http.StatusForbidden,
					[]string{"Access denied."}, "principal lacks required role")
				return
			}
			break // primer match decide
		}

		principal := Principal{Username: u.Username, Roles: u.Roles}
		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Gate) unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	g.metrics.AuthFailures.Inc()
	g.log.Debug("authentication failed", map[string]any{
		"path":   r.URL.Path,
		"reason": reason,
	})

	w.Header().Set("WWW-Authenticate", `Basic realm="person-pet-registry"`)
	httperr.Write(w, r, http.StatusUnauthorized,
		[]string{"Invalid or missing credentials."}, "authentication failed")
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if matchPath(p, path) {
			return true
		}
	}
	return false
}

func matchPath(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
