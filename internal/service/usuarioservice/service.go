package usuarioservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
)

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, nome string) (string, error)
}

// TokenRevoker encerra tokens no logout.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// PerfilLoader carrega favoritos e notas do usuário por inteiro.
type PerfilLoader interface {
	LoadPerfil(ctx context.Context, usuario domain.Usuario) (domain.Perfil, error)
}

// Service implementa o registro, o login e o logout de usuários.
type Service struct {
	repo     domain.UsuarioRepository
	tokens   TokenService
	revoker  TokenRevoker
	perfis   PerfilLoader
	validate *validator.Validate
	logger   logger.Logger
}

// NewService cria uma nova instância do serviço de usuários.
func NewService(repo domain.UsuarioRepository, tokens TokenService, revoker TokenRevoker, perfis PerfilLoader, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		revoker:  revoker,
		perfis:   perfis,
		validate: validator.New(),
		logger:   log,
	}
}

// Register registra um novo usuário: valida, faz o hashing da senha e persiste.
func (s *Service) Register(ctx context.Context, registration domain.UsuarioRegistration) (domain.Usuario, error) {
	// 1. Validação
	registration.Nome = strings.TrimSpace(registration.Nome)
	if err := s.validate.Struct(registration); err != nil {
		return domain.Usuario{}, validationMessage(err)
	}

	// 2. Hashing da Senha
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Senha), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.Usuario{}, apperror.NewValidationError("A senha deve ter no máximo 72 bytes.")
		}
		return domain.Usuario{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 3. Criação do Usuário (foto inválida é descartada)
	novo := domain.Usuario{
		Nome:         registration.Nome,
		PasswordHash: string(hashedPassword),
		Foto:         domain.FotoValida(registration.Foto),
		CreatedAt:    time.Now().UTC(),
	}

	// 4. Persistência (ConflictError para nome duplicado vem do repositório)
	usuario, err := s.repo.Save(ctx, novo)
	if err != nil {
		return domain.Usuario{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": usuario.ID, "nome": usuario.Nome})
	return usuario, nil
}

// Login autentica o usuário, gera o JWT e carrega o perfil completo (favoritos e notas).
func (s *Service) Login(ctx context.Context, credenciais domain.Credenciais) (domain.Sessao, error) {
	nome := strings.TrimSpace(credenciais.Nome)
	if nome == "" || credenciais.Senha == "" {
		return domain.Sessao{}, apperror.NewValidationError("Preencha usuário e senha")
	}

	// 1. Buscar Usuário pelo nome
	usuario, err := s.repo.FindByNome(ctx, nome)
	if err != nil {
		// NotFound vira Unauthorized para não revelar quais nomes existem.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.Sessao{}, apperror.NewUnauthorizedError("Usuário ou senha incorretos")
		}
		return domain.Sessao{}, err
	}

	// 2. Comparar Senhas
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(credenciais.Senha)); err != nil {
		s.logger.Debug("Senha incorreta no login.", map[string]interface{}{"user_id": usuario.ID})
		return domain.Sessao{}, apperror.NewUnauthorizedError("Usuário ou senha incorretos")
	}

	// 3. Gerar JWT
	tokenString, err := s.tokens.GenerateToken(usuario.ID, usuario.Nome)
	if err != nil {
		return domain.Sessao{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	// 4. Recarregar o perfil por inteiro
	perfil, err := s.perfis.LoadPerfil(ctx, usuario)
	if err != nil {
		return domain.Sessao{}, err
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"user_id": usuario.ID})
	return domain.Sessao{Token: tokenString, Perfil: perfil}, nil
}

// Logout revoga o token da sessão até a sua expiração.
func (s *Service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return apperror.NewUnauthorizedError("Sessão inválida.")
	}
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return apperror.NewInternalError("Falha ao encerrar a sessão.", err)
	}
	s.logger.Info("Logout realizado.", map[string]interface{}{"token_id": tokenID})
	return nil
}

// Me devolve o usuário autenticado.
func (s *Service) Me(ctx context.Context, userID string) (domain.Usuario, error) {
	return s.repo.FindByID(ctx, userID)
}

// ListUsuarios lista todos os usuários (sem senhas: PasswordHash não é serializado).
func (s *Service) ListUsuarios(ctx context.Context) ([]domain.Usuario, error) {
	return s.repo.FindAll(ctx)
}

// validationMessage traduz o primeiro erro do validator para uma mensagem de negócio.
func validationMessage(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.NewValidationError("Dados de registro inválidos.")
	}

	fe := verrs[0]
	switch {
	case fe.Tag() == "required":
		return apperror.NewValidationError("Preencha usuário e senha")
	case fe.Field() == "Nome":
		return apperror.NewValidationError("O nome de usuário deve ter no máximo 50 caracteres.")
	default:
		return apperror.NewValidationError("A senha deve ter no máximo 72 caracteres.")
	}
}
