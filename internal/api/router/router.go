package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "ratemymovie/docs" // registra a documentação Swagger
	"ratemymovie/internal/api/filme"
	"ratemymovie/internal/api/perfil"
	"ratemymovie/internal/api/usuario"
	"ratemymovie/internal/pkg/cache"
	"ratemymovie/internal/pkg/logger"
	"ratemymovie/internal/pkg/middleware"
	"ratemymovie/internal/pkg/response"
)

// Pinger é satisfeito por *sql.DB e usado pelo health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options reúne os Handlers e a infraestrutura já inicializados por injeção de dependências.
type Options struct {
	Usuarios *usuario.Handler
	Perfil   *perfil.Handler
	Filmes   *filme.Handler

	Tokens      middleware.TokenValidator
	Revocations middleware.RevocationChecker

	Cache cache.Client
	DB    Pinger

	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer

	AllowedOrigins       []string
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	Logger logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal com os middlewares globais.
func NewRouter(opts Options) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.NewAuthMiddleware(opts.Tokens, opts.Revocations, opts.Logger)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	// --- 1. Health Check, métricas e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.HandleFunc("GET /health", HealthHandler(opts.DB, opts.Cache, opts.Logger))
	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// --- 2. Usuários (v1) ---
	mux.HandleFunc("POST /v1/register", opts.Usuarios.RegisterHandler)
	mux.HandleFunc("POST /v1/login", opts.Usuarios.LoginHandler)
	mux.Handle("POST /v1/logout", protected(opts.Usuarios.LogoutHandler))
	mux.Handle("GET /v1/me", protected(opts.Usuarios.MeHandler))
	mux.Handle("GET /v1/usuarios", protected(opts.Usuarios.ListUsuariosHandler))

	// --- 3. Perfil, favoritos e notas (v1) ---
	mux.Handle("GET /v1/perfil", protected(opts.Perfil.GetPerfilHandler))
	mux.Handle("GET /v1/favoritos", protected(opts.Perfil.ListFavoritosHandler))
	mux.Handle("POST /v1/favoritos", protected(opts.Perfil.AddFavoritoHandler))
	mux.Handle("GET /v1/favoritos/{id}", protected(opts.Perfil.GetFavoritoHandler))
	mux.Handle("DELETE /v1/favoritos/{id}", protected(opts.Perfil.RemoveFavoritoHandler))
	mux.Handle("GET /v1/notas", protected(opts.Perfil.ListNotasHandler))
	mux.Handle("PUT /v1/notas/{id}", protected(opts.Perfil.SaveNotaHandler))
	mux.Handle("DELETE /v1/notas/{id}", protected(opts.Perfil.DeleteNotaHandler))

	// --- 4. Catálogo (v1) ---
	mux.Handle("GET /v1/filmes", protected(opts.Filmes.BrowseHandler))
	mux.Handle("GET /v1/filmes/{id}", protected(opts.Filmes.GetFilmeHandler))

	// --- 5. Middlewares Globais ---
	// Metrics fica mais perto do mux para enxergar r.Pattern.
	var handler http.Handler = mux
	if opts.Metrics != nil {
		handler = opts.Metrics.Handler(handler)
	}
	if opts.Cache != nil && opts.RateLimitMaxRequests > 0 {
		handler = middleware.RateLimiter(opts.Cache, opts.RateLimitMaxRequests, opts.RateLimitPeriod, opts.Logger)(handler)
	}
	handler = cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Remaining"},
		MaxAge:         300,
	})(handler)
	handler = middleware.Logging(opts.Logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// HealthStatus é a resposta de GET /health.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// HealthHandler verifica banco e cache. Sem banco a API não atende (503);
// sem cache ela segue degradada.
func HealthHandler(db Pinger, c cache.Client, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := HealthStatus{Status: "ok", Database: "ok", Cache: "ok"}
		code := http.StatusOK

		if db == nil || db.PingContext(ctx) != nil {
			status.Status = "unavailable"
			status.Database = "down"
			code = http.StatusServiceUnavailable
		}
		if c == nil || c.Ping(ctx) != nil {
			status.Cache = "down"
			if code == http.StatusOK {
				status.Status = "degraded"
			}
		}

		if code != http.StatusOK {
			log.Warn("Health check falhou.", map[string]interface{}{"database": status.Database, "cache": status.Cache})
		}
		response.JSON(w, log, code, status)
	}
}
