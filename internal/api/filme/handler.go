package filme

import (
	"context"
	"net/http"
	"strconv"

	"ratemymovie/internal/api/perfil"
	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
	"ratemymovie/internal/pkg/middleware"
	"ratemymovie/internal/pkg/response"
)

// CatalogService define a listagem e os detalhes do catálogo.
type CatalogService interface {
	Browse(ctx context.Context, query string, page int) (domain.PaginaFilmes, error)
	GetFilme(ctx context.Context, id int64) (domain.Filme, error)
}

// PerfilLookup fornece o estado pessoal usado para marcar os filmes.
type PerfilLookup interface {
	FavoritoIDs(ctx context.Context, userID string) (map[int64]bool, error)
	IsFavorito(ctx context.Context, userID string, filmeID int64) (bool, error)
	GetNota(ctx context.Context, userID string, filmeID int64) (float64, error)
}

// FilmeItem é um filme da listagem marcado com o estado de favorito do usuário.
type FilmeItem struct {
	domain.Filme
	Favoritado bool `json:"favoritado"`
}

// PaginaResponse é a resposta de GET /v1/filmes.
type PaginaResponse struct {
	Results      []FilmeItem `json:"results"`
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
	HasMore      bool        `json:"has_more"`
}

// DetalheResponse é a resposta de GET /v1/filmes/{id}.
// Nota é a avaliação pessoal (-1 quando não definida).
type DetalheResponse struct {
	Filme      domain.Filme `json:"filme"`
	Nota       float64      `json:"nota"`
	Favoritado bool         `json:"favoritado"`
}

// Handler agrupa os handlers do catálogo.
type Handler struct {
	Catalog CatalogService
	Perfil  PerfilLookup
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(catalog CatalogService, perfis PerfilLookup, log logger.Logger) *Handler {
	return &Handler{
		Catalog: catalog,
		Perfil:  perfis,
		Logger:  log,
	}
}

// BrowseHandler lida com a requisição GET /v1/filmes.
// @Summary Lista filmes populares ou busca por título
// @Description Sem q, lista os populares. Com q, busca por título. A página 1 substitui a lista; as seguintes são acrescentadas enquanto has_more.
// @Tags filmes
// @Produce json
// @Security BearerAuth
// @Param q query string false "Texto da busca"
// @Param page query int false "Página (1 a 500)"
// @Success 200 {object} PaginaResponse
// @Failure 400 {object} domain.ErrorResponse "Página inválida"
// @Failure 502 {object} domain.ErrorResponse "Catálogo indisponível"
// @Router /filmes [get]
func (h *Handler) BrowseHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, r, h.Logger, apperror.NewValidationError("Parâmetro page deve ser um número inteiro."))
			return
		}
		page = parsed
	}

	// 1. Buscar a página no catálogo
	pagina, err := h.Catalog.Browse(r.Context(), query, page)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	// 2. Marcar os favoritos do usuário (sem usuário, nada é marcado)
	favoritos := map[int64]bool{}
	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		ids, err := h.Perfil.FavoritoIDs(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, r, h.Logger, err)
			return
		}
		favoritos = ids
	}

	items := make([]FilmeItem, 0, len(pagina.Results))
	for _, f := range pagina.Results {
		items = append(items, FilmeItem{Filme: f, Favoritado: favoritos[f.ID]})
	}

	response.JSON(w, h.Logger, http.StatusOK, PaginaResponse{
		Results:      items,
		Page:         pagina.Page,
		TotalPages:   pagina.TotalPages,
		TotalResults: pagina.TotalResults,
		HasMore:      pagina.HasMore,
	})
}

// GetFilmeHandler lida com a requisição GET /v1/filmes/{id}.
// @Summary Detalhes de um filme
// @Description Filme do catálogo, nota pessoal (-1 quando não definida) e estado de favorito.
// @Tags filmes
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do filme"
// @Success 200 {object} DetalheResponse
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Failure 502 {object} domain.ErrorResponse "Catálogo indisponível"
// @Router /filmes/{id} [get]
func (h *Handler) GetFilmeHandler(w http.ResponseWriter, r *http.Request) {
	filmeID, err := perfil.ParseFilmeID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	filme, err := h.Catalog.GetFilme(r.Context(), filmeID)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	detalhe := DetalheResponse{Filme: filme, Nota: domain.NotaNaoDefinida}
	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		if detalhe.Nota, err = h.Perfil.GetNota(r.Context(), claims.UserID, filmeID); err != nil {
			response.Error(w, r, h.Logger, err)
			return
		}
		if detalhe.Favoritado, err = h.Perfil.IsFavorito(r.Context(), claims.UserID, filmeID); err != nil {
			response.Error(w, r, h.Logger, err)
			return
		}
	}

	response.JSON(w, h.Logger, http.StatusOK, detalhe)
}
