package catalogservice

import (
	"context"
	"strings"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
)

// CatalogRepository define o contrato de leitura do catálogo (com cache).
type CatalogRepository interface {
	Popular(ctx context.Context, page int) (domain.PaginaFilmes, error)
	Search(ctx context.Context, query string, page int) (domain.PaginaFilmes, error)
	FindByID(ctx context.Context, id int64) (domain.Filme, error)
}

// Service expõe a listagem paginada (populares ou busca) e os detalhes de filmes.
type Service struct {
	repo   CatalogRepository
	logger logger.Logger
}

// NewService cria o serviço de catálogo.
func NewService(repo CatalogRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// Browse devolve uma página da listagem. Consulta vazia lista os populares; caso contrário,
// busca no catálogo e mantém só os títulos que contêm a consulta (sem diferenciar maiúsculas).
// O cliente substitui a lista na página 1 e acrescenta as seguintes enquanto HasMore.
func (s *Service) Browse(ctx context.Context, query string, page int) (domain.PaginaFilmes, error) {
	query = strings.TrimSpace(query)
	page = domain.NormalizarPagina(page)

	if query == "" {
		result, err := s.repo.Popular(ctx, page)
		if err != nil {
			s.logger.Error("Falha ao buscar filmes populares.", err)
			return domain.PaginaFilmes{}, err
		}
		result.HasMore = result.Page < result.TotalPages && result.Page < domain.MaxPagina
		return result, nil
	}

	result, err := s.repo.Search(ctx, query, page)
	if err != nil {
		s.logger.Error("Falha ao buscar filmes.", err)
		return domain.PaginaFilmes{}, err
	}

	queryLower := strings.ToLower(query)
	filtrados := make([]domain.Filme, 0, len(result.Results))
	for _, f := range result.Results {
		if strings.Contains(strings.ToLower(f.Titulo), queryLower) {
			filtrados = append(filtrados, f)
		}
	}
	result.Results = filtrados
	result.HasMore = result.Page < result.TotalPages && result.Page < domain.MaxPagina

	s.logger.Debug("Busca no catálogo concluída.", map[string]interface{}{
		"query":    query,
		"page":     page,
		"returned": len(filtrados),
		"total":    result.TotalResults,
	})
	return result, nil
}

// GetFilme devolve os detalhes de um filme.
func (s *Service) GetFilme(ctx context.Context, id int64) (domain.Filme, error) {
	if id <= 0 {
		return domain.Filme{}, apperror.NewValidationError("ID do filme inválido.")
	}
	return s.repo.FindByID(ctx, id)
}
