package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	// Infraestrutura e utilitários
	"ratemymovie/config"
	"ratemymovie/internal/pkg/cache"
	"ratemymovie/internal/pkg/database"
	"ratemymovie/internal/pkg/logger"
	"ratemymovie/internal/pkg/middleware"
	"ratemymovie/internal/pkg/tmdb"
	"ratemymovie/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"ratemymovie/internal/api/filme"
	"ratemymovie/internal/api/perfil"
	"ratemymovie/internal/api/router"
	"ratemymovie/internal/api/usuario"
	"ratemymovie/internal/repository/catalogrepo"
	"ratemymovie/internal/repository/perfilrepo"
	"ratemymovie/internal/repository/usuariorepo"
	"ratemymovie/internal/service/catalogservice"
	"ratemymovie/internal/service/perfilservice"
	"ratemymovie/internal/service/usuarioservice"
)

// @title RateMyMovie API
// @version 1.0
// @description Catálogo de filmes (TMDB) com contas de usuário, favoritos e notas pessoais.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Informe "Bearer <token>" recebido no login.
func main() {
	// 0. Carregar variáveis de ambiente (.env)
	if err := godotenv.Load(); err != nil {
		// Sem .env as variáveis podem vir do ambiente do sistema (ex: Docker).
		log.Println("Aviso: arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Inicializando serviço RateMyMovie...", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis), com fallback em memória para uma única instância
	var cacheClient cache.Client
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
	if err != nil {
		appLog.Warn("Redis indisponível, usando cache em memória.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		cacheClient = cache.NewMemoryClient()
	} else {
		cacheClient = redisClient
		appLog.Info("Conexão Redis estabelecida.", nil)
	}

	// C. Catálogo remoto (TMDB)
	tmdbClient := tmdb.NewClient(tmdb.Config{
		BaseURL:   cfg.TMDBBaseURL,
		APIKey:    cfg.TMDBAPIKey,
		Language:  cfg.TMDBLanguage,
		ImageBase: cfg.TMDBImageBase,
		Timeout:   cfg.TMDBTimeout,
	}, nil)

	// D. Tokens (JWT) e revogação no logout
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	revocations := token.NewRevocationStore(cacheClient)

	// 3. Injeção de Dependências: Repository -> Service -> Handler
	usuarioRepo := usuariorepo.NewUsuarioRepository(db, cfg.DBTimeout, appLog)
	perfilRepo := perfilrepo.NewPerfilRepository(db, cfg.DBTimeout, appLog)
	catalogRepo := catalogrepo.NewCatalogRepository(tmdbClient, cacheClient, cfg.CatalogTTL, cfg.TMDBLanguage, appLog)
	appLog.Debug("Repositórios inicializados.", nil)

	catalogSvc := catalogservice.NewService(catalogRepo, appLog)
	perfilSvc := perfilservice.NewService(perfilRepo, usuarioRepo, catalogSvc, appLog)
	usuarioSvc := usuarioservice.NewService(usuarioRepo, tokenSvc, revocations, perfilSvc, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	usuarioHandler := usuario.NewHandler(usuarioSvc, appLog)
	perfilHandler := perfil.NewHandler(perfilSvc, appLog)
	filmeHandler := filme.NewHandler(catalogSvc, perfilSvc, appLog)
	appLog.Debug("Handlers inicializados.", nil)

	// E. Métricas (Prometheus)
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewMetrics(registry)
	if err != nil {
		appLog.Fatal("Falha ao registrar métricas.", err)
	}

	// 4. Roteador e Servidor
	handler := router.NewRouter(router.Options{
		Usuarios:             usuarioHandler,
		Perfil:               perfilHandler,
		Filmes:               filmeHandler,
		Tokens:               tokenSvc,
		Revocations:          revocations,
		Cache:                cacheClient,
		DB:                   db,
		Metrics:              metrics,
		Gatherer:             registry,
		AllowedOrigins:       cfg.AllowedOrigins,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
		Logger:               appLog,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor RateMyMovie ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	if rc, ok := redisClient.(*cache.RedisClient); ok {
		if err := rc.Close(); err != nil {
			appLog.Error("Falha ao fechar conexão Redis.", err)
		}
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
