package usuario

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
	"ratemymovie/internal/pkg/middleware"
	"ratemymovie/internal/pkg/response"
)

// UsuarioService define o contrato para registro, login e sessão.
type UsuarioService interface {
	Register(ctx context.Context, registration domain.UsuarioRegistration) (domain.Usuario, error)
	Login(ctx context.Context, credenciais domain.Credenciais) (domain.Sessao, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	Me(ctx context.Context, userID string) (domain.Usuario, error)
	ListUsuarios(ctx context.Context) ([]domain.Usuario, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UsuarioService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UsuarioService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo usuário
// @Description Cria o usuário com nome único, senha (bcrypt) e foto opcional (URL http ou data URI de imagem).
// @Tags usuarios
// @Accept json
// @Produce json
// @Param registration body domain.UsuarioRegistration true "Nome, senha e foto"
// @Success 201 {object} domain.Usuario "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos obrigatórios ausentes"
// @Failure 409 {object} domain.ErrorResponse "Usuário já existe"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UsuarioRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	novo, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		// ConflictError (nome duplicado) -> 409, ValidationError -> 400
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusCreated, novo)
}

// LoginHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário
// @Description Verifica nome/senha, emite um JWT e devolve o perfil completo (favoritos e notas).
// @Tags usuarios
// @Accept json
// @Produce json
// @Param login body domain.Credenciais true "Nome e senha"
// @Success 200 {object} domain.Sessao "Token e perfil"
// @Failure 400 {object} domain.ErrorResponse "Preencha usuário e senha"
// @Failure 401 {object} domain.ErrorResponse "Usuário ou senha incorretos"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credenciais domain.Credenciais
	if err := json.NewDecoder(r.Body).Decode(&credenciais); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	sessao, err := h.Service.Login(r.Context(), credenciais)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, sessao)
}

// LogoutHandler lida com a requisição POST /v1/logout.
// @Summary Encerra a sessão
// @Description Revoga o token atual até a sua expiração.
// @Tags usuarios
// @Security BearerAuth
// @Success 204 "Sessão encerrada"
// @Failure 401 {object} domain.ErrorResponse "Token ausente, inválido ou revogado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Sessão inválida."))
		return
	}

	if err := h.Service.Logout(r.Context(), claims.TokenID, claims.ExpiresAt); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MeHandler lida com a requisição GET /v1/me.
// @Summary Usuário autenticado
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Usuario
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuário removido"
// @Router /me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Sessão inválida."))
		return
	}

	usuario, err := h.Service.Me(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, usuario)
}

// ListUsuariosHandler lida com a requisição GET /v1/usuarios.
// @Summary Lista os usuários cadastrados
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Usuario
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /usuarios [get]
func (h *Handler) ListUsuariosHandler(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Service.ListUsuarios(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, usuarios)
}
