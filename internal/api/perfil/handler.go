package perfil

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
	"ratemymovie/internal/pkg/middleware"
	"ratemymovie/internal/pkg/response"
)

// PerfilService define o contrato esperado da camada de serviço de perfil.
type PerfilService interface {
	GetPerfil(ctx context.Context, userID string) (domain.Perfil, error)
	ListFavoritos(ctx context.Context, userID string) ([]domain.Filme, error)
	IsFavorito(ctx context.Context, userID string, filmeID int64) (bool, error)
	AddFavorito(ctx context.Context, userID string, req domain.FavoritoRequest) ([]domain.Filme, error)
	RemoveFavorito(ctx context.Context, userID string, filmeID int64) ([]domain.Filme, error)
	ListNotas(ctx context.Context, userID string) (map[int64]float64, error)
	SaveNota(ctx context.Context, userID string, filmeID int64, nota *float64) (map[int64]float64, error)
}

// FavoritoStatus é a resposta de GET /v1/favoritos/{id}.
type FavoritoStatus struct {
	FilmeID    int64 `json:"filme_id"`
	Favoritado bool  `json:"favoritado"`
}

// Handler agrupa os handlers de perfil, favoritos e notas.
type Handler struct {
	Service PerfilService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc PerfilService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// userID extrai o usuário autenticado; escreve 401 quando ausente.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		h.Logger.Warn("Requisição de perfil sem claims de usuário no contexto.", map[string]interface{}{"path": r.URL.Path})
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Sessão inválida."))
		return "", false
	}
	return claims.UserID, true
}

// ParseFilmeID lê o segmento {id} da rota como ID de filme.
func ParseFilmeID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("ID do filme inválido.")
	}
	return id, nil
}

// GetPerfilHandler lida com a requisição GET /v1/perfil.
// @Summary Perfil do usuário autenticado
// @Description Usuário, favoritos e notas, carregados por inteiro.
// @Tags perfil
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Perfil
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /perfil [get]
func (h *Handler) GetPerfilHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	perfil, err := h.Service.GetPerfil(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, perfil)
}

// ListFavoritosHandler lida com a requisição GET /v1/favoritos.
// @Summary Lista os favoritos
// @Tags favoritos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Filme
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Router /favoritos [get]
func (h *Handler) ListFavoritosHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	favoritos, err := h.Service.ListFavoritos(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, favoritos)
}

// AddFavoritoHandler lida com a requisição POST /v1/favoritos.
// @Summary Adiciona um favorito
// @Description Guarda um snapshot do filme do catálogo. Repetir a operação não duplica o favorito.
// @Tags favoritos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param favorito body domain.FavoritoRequest true "ID do filme"
// @Success 200 {array} domain.Filme "Lista de favoritos atualizada"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado no catálogo"
// @Failure 502 {object} domain.ErrorResponse "Catálogo indisponível"
// @Router /favoritos [post]
func (h *Handler) AddFavoritoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req domain.FavoritoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	favoritos, err := h.Service.AddFavorito(r.Context(), userID, req)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, favoritos)
}

// GetFavoritoHandler lida com a requisição GET /v1/favoritos/{id}.
// @Summary Indica se o filme é favorito
// @Tags favoritos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do filme"
// @Success 200 {object} FavoritoStatus
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Router /favoritos/{id} [get]
func (h *Handler) GetFavoritoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	filmeID, err := ParseFilmeID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	favoritado, err := h.Service.IsFavorito(r.Context(), userID, filmeID)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, FavoritoStatus{FilmeID: filmeID, Favoritado: favoritado})
}

// RemoveFavoritoHandler lida com a requisição DELETE /v1/favoritos/{id}.
// @Summary Remove um favorito
// @Tags favoritos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do filme"
// @Success 200 {array} domain.Filme "Lista de favoritos atualizada"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Router /favoritos/{id} [delete]
func (h *Handler) RemoveFavoritoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	filmeID, err := ParseFilmeID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	favoritos, err := h.Service.RemoveFavorito(r.Context(), userID, filmeID)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, favoritos)
}

// ListNotasHandler lida com a requisição GET /v1/notas.
// @Summary Lista as notas do usuário
// @Tags notas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]number "ID do filme -> nota"
// @Router /notas [get]
func (h *Handler) ListNotasHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	notas, err := h.Service.ListNotas(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, notas)
}

// SaveNotaHandler lida com a requisição PUT /v1/notas/{id}.
// @Summary Salva a nota de um filme
// @Description Nota de 0 a 5 em passos de 0.5. Nota nula ou -1 remove a avaliação.
// @Tags notas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do filme"
// @Param nota body domain.NotaRequest true "Nota"
// @Success 200 {object} map[string]number "Notas atualizadas"
// @Failure 400 {object} domain.ErrorResponse "Nota inválida"
// @Router /notas/{id} [put]
func (h *Handler) SaveNotaHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	filmeID, err := ParseFilmeID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	var req domain.NotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	notas, err := h.Service.SaveNota(r.Context(), userID, filmeID, req.Nota)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, notas)
}

// DeleteNotaHandler lida com a requisição DELETE /v1/notas/{id}.
// @Summary Remove a nota de um filme
// @Tags notas
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do filme"
// @Success 200 {object} map[string]number "Notas atualizadas"
// @Router /notas/{id} [delete]
func (h *Handler) DeleteNotaHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	filmeID, err := ParseFilmeID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	notas, err := h.Service.SaveNota(r.Context(), userID, filmeID, nil)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, notas)
}
