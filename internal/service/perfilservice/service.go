package perfilservice

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
)

// FilmeLookup busca um filme no catálogo para o snapshot do favorito.
type FilmeLookup interface {
	GetFilme(ctx context.Context, id int64) (domain.Filme, error)
}

// UsuarioFinder busca o usuário dono do perfil.
type UsuarioFinder interface {
	FindByID(ctx context.Context, id string) (domain.Usuario, error)
}

// Service gerencia favoritos e notas. Toda operação recebe o ID do usuário autenticado.
type Service struct {
	repo     domain.PerfilRepository
	usuarios UsuarioFinder
	catalogo FilmeLookup
	validate *validator.Validate
	logger   logger.Logger
}

// NewService cria o serviço de perfil.
func NewService(repo domain.PerfilRepository, usuarios UsuarioFinder, catalogo FilmeLookup, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		usuarios: usuarios,
		catalogo: catalogo,
		validate: validator.New(),
		logger:   log,
	}
}

// LoadPerfil carrega favoritos e notas do usuário por inteiro.
func (s *Service) LoadPerfil(ctx context.Context, usuario domain.Usuario) (domain.Perfil, error) {
	favoritos, err := s.repo.ListFavoritos(ctx, usuario.ID)
	if err != nil {
		return domain.Perfil{}, err
	}
	notas, err := s.repo.ListNotas(ctx, usuario.ID)
	if err != nil {
		return domain.Perfil{}, err
	}

	s.logger.Debug("Perfil carregado.", map[string]interface{}{
		"user_id":   usuario.ID,
		"favoritos": len(favoritos),
		"notas":     len(notas),
	})
	return domain.Perfil{Usuario: usuario, Favoritos: favoritos, Notas: notas}, nil
}

// GetPerfil carrega o perfil do usuário autenticado.
func (s *Service) GetPerfil(ctx context.Context, userID string) (domain.Perfil, error) {
	usuario, err := s.usuarios.FindByID(ctx, userID)
	if err != nil {
		return domain.Perfil{}, err
	}
	return s.LoadPerfil(ctx, usuario)
}

// --- Favoritos ---

// ListFavoritos lista os favoritos do usuário.
func (s *Service) ListFavoritos(ctx context.Context, userID string) ([]domain.Filme, error) {
	return s.repo.ListFavoritos(ctx, userID)
}

// FavoritoIDs devolve o conjunto de IDs favoritados (usado para marcar listagens).
func (s *Service) FavoritoIDs(ctx context.Context, userID string) (map[int64]bool, error) {
	favoritos, err := s.repo.ListFavoritos(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]bool, len(favoritos))
	for _, f := range favoritos {
		ids[f.ID] = true
	}
	return ids, nil
}

// IsFavorito indica se o filme está nos favoritos do usuário.
func (s *Service) IsFavorito(ctx context.Context, userID string, filmeID int64) (bool, error) {
	if filmeID <= 0 {
		return false, apperror.NewValidationError("ID do filme inválido.")
	}
	return s.repo.IsFavorito(ctx, userID, filmeID)
}

// AddFavorito adiciona o filme aos favoritos e devolve a lista atualizada.
// Adicionar um filme já favoritado não altera a lista.
func (s *Service) AddFavorito(ctx context.Context, userID string, req domain.FavoritoRequest) ([]domain.Filme, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.NewValidationError("filme_id deve ser um ID de filme válido.")
	}

	exists, err := s.repo.IsFavorito(ctx, userID, req.FilmeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		filme, err := s.catalogo.GetFilme(ctx, req.FilmeID)
		if err != nil {
			return nil, err
		}
		if err := s.repo.AddFavorito(ctx, userID, filme); err != nil {
			return nil, err
		}
		s.logger.Info("Favorito adicionado.", map[string]interface{}{"user_id": userID, "filme_id": req.FilmeID})
	}

	return s.repo.ListFavoritos(ctx, userID)
}

// RemoveFavorito remove o filme dos favoritos e devolve a lista atualizada.
func (s *Service) RemoveFavorito(ctx context.Context, userID string, filmeID int64) ([]domain.Filme, error) {
	if filmeID <= 0 {
		return nil, apperror.NewValidationError("ID do filme inválido.")
	}
	if err := s.repo.RemoveFavorito(ctx, userID, filmeID); err != nil {
		return nil, err
	}
	s.logger.Info("Favorito removido.", map[string]interface{}{"user_id": userID, "filme_id": filmeID})
	return s.repo.ListFavoritos(ctx, userID)
}

// --- Notas ---

// ListNotas devolve o mapa filme -> nota do usuário.
func (s *Service) ListNotas(ctx context.Context, userID string) (map[int64]float64, error) {
	return s.repo.ListNotas(ctx, userID)
}

// GetNota devolve a nota do usuário para o filme, ou NotaNaoDefinida.
func (s *Service) GetNota(ctx context.Context, userID string, filmeID int64) (float64, error) {
	return s.repo.GetNota(ctx, userID, filmeID)
}

// SaveNota grava a nota. Nota nula ou -1 remove a avaliação.
// Devolve o mapa de notas atualizado.
func (s *Service) SaveNota(ctx context.Context, userID string, filmeID int64, nota *float64) (map[int64]float64, error) {
	if filmeID <= 0 {
		return nil, apperror.NewValidationError("ID do filme inválido.")
	}

	if nota == nil || *nota == domain.NotaNaoDefinida {
		if err := s.repo.DeleteNota(ctx, userID, filmeID); err != nil {
			return nil, err
		}
		s.logger.Info("Nota removida.", map[string]interface{}{"user_id": userID, "filme_id": filmeID})
		return s.repo.ListNotas(ctx, userID)
	}

	if !domain.NotaValida(*nota) {
		return nil, apperror.NewValidationError(fmt.Sprintf("Nota %v inválida: use valores de 0 a 5 em passos de 0.5.", *nota))
	}

	if err := s.repo.SaveNota(ctx, userID, filmeID, *nota); err != nil {
		return nil, err
	}
	s.logger.Info("Nota salva.", map[string]interface{}{"user_id": userID, "filme_id": filmeID, "nota": *nota})
	return s.repo.ListNotas(ctx, userID)
}
