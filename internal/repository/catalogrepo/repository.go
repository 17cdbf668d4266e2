package catalogrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ratemymovie/internal/domain"
	"ratemymovie/internal/pkg/cache"
	"ratemymovie/internal/pkg/logger"
)

// Chaves de cache do catálogo.
const (
	popularCacheKey = "catalog:popular:%s:%d"
	searchCacheKey  = "catalog:search:%s:%s:%d"
	movieCacheKey   = "catalog:movie:%s:%d"
)

// Catalog é o contrato do cliente remoto (internal/pkg/tmdb).
type Catalog interface {
	Popular(ctx context.Context, page int) (domain.PaginaFilmes, error)
	Search(ctx context.Context, query string, page int) (domain.PaginaFilmes, error)
	Movie(ctx context.Context, id int64) (domain.Filme, error)
}

// CatalogRepository aplica Cache-Aside (Redis) sobre o catálogo remoto.
// Falhas do cache nunca impedem a consulta remota.
type CatalogRepository struct {
	remote   Catalog
	cache    cache.Client
	ttl      time.Duration
	language string
	logger   logger.Logger
}

// NewCatalogRepository cria o repositório. language entra na chave para não misturar idiomas.
func NewCatalogRepository(remote Catalog, cacheClient cache.Client, ttl time.Duration, language string, logger logger.Logger) *CatalogRepository {
	return &CatalogRepository{
		remote:   remote,
		cache:    cacheClient,
		ttl:      ttl,
		language: language,
		logger:   logger,
	}
}

// Popular busca uma página de filmes populares.
func (r *CatalogRepository) Popular(ctx context.Context, page int) (domain.PaginaFilmes, error) {
	key := fmt.Sprintf(popularCacheKey, r.language, page)
	var out domain.PaginaFilmes
	err := r.cached(ctx, key, &out, func() (interface{}, error) {
		return r.remote.Popular(ctx, page)
	})
	return out, err
}

// Search busca filmes pelo título. A consulta é normalizada em minúsculas na chave.
func (r *CatalogRepository) Search(ctx context.Context, query string, page int) (domain.PaginaFilmes, error) {
	key := fmt.Sprintf(searchCacheKey, r.language, strings.ToLower(query), page)
	var out domain.PaginaFilmes
	err := r.cached(ctx, key, &out, func() (interface{}, error) {
		return r.remote.Search(ctx, query, page)
	})
	return out, err
}

// FindByID busca os detalhes de um filme.
func (r *CatalogRepository) FindByID(ctx context.Context, id int64) (domain.Filme, error) {
	key := fmt.Sprintf(movieCacheKey, r.language, id)
	var out domain.Filme
	err := r.cached(ctx, key, &out, func() (interface{}, error) {
		return r.remote.Movie(ctx, id)
	})
	return out, err
}

// cached implementa o Cache-Aside: lê do cache, senão chama fetch e popula o cache.
func (r *CatalogRepository) cached(ctx context.Context, key string, out interface{}, fetch func() (interface{}, error)) error {
	// 1. Leitura do cache
	cachedData, err := r.cache.Get(ctx, key)
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(cachedData), out); jsonErr == nil {
			r.logger.Debug("Cache HIT no catálogo.", map[string]interface{}{"key": key})
			return nil
		}
		r.logger.Warn("Entrada de cache corrompida, consultando catálogo.", map[string]interface{}{"key": key})
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Falha ao ler do cache, consultando catálogo.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	// 2. Consulta remota
	value, err := fetch()
	if err != nil {
		return err
	}

	// 3. Escrita no cache
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("falha ao serializar resposta do catálogo: %w", err)
	}
	if setErr := r.cache.Set(ctx, key, data, r.ttl); setErr != nil {
		r.logger.Warn("Falha ao gravar no cache.", map[string]interface{}{"key": key, "error": setErr.Error()})
	}

	return json.Unmarshal(data, out)
}
