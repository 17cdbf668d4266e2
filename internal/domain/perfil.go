package domain

import (
	"context"
	"math"
	"time"
)

// NotaNaoDefinida indica que o usuário ainda não avaliou o filme.
const NotaNaoDefinida = -1.0

// Perfil agrega o estado pessoal do usuário: favoritos e notas.
// É carregado por inteiro no login.
type Perfil struct {
	Usuario   Usuario           `json:"usuario"`
	Favoritos []Filme           `json:"favoritos"`
	Notas     map[int64]float64 `json:"notas"`
}

// Favorito é um filme marcado por um usuário, guardado como snapshot do catálogo.
type Favorito struct {
	UsuarioID string    `json:"usuario_id"`
	Filme     Filme     `json:"filme"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoritoRequest é o payload para adicionar um favorito.
type FavoritoRequest struct {
	FilmeID int64 `json:"filme_id" validate:"required,gt=0"`
}

// NotaRequest é o payload para salvar uma nota. Nota nula remove a avaliação.
type NotaRequest struct {
	Nota *float64 `json:"nota"`
}

// NotaValida indica se a nota é -1 (não definida) ou está entre 0 e 5 em passos de 0.5.
func NotaValida(nota float64) bool {
	if nota == NotaNaoDefinida {
		return true
	}
	if nota < 0 || nota > 5 {
		return false
	}
	return math.Mod(nota*2, 1) == 0
}

// PerfilRepository define o contrato de persistência de favoritos e notas, por usuário.
type PerfilRepository interface {
	ListFavoritos(ctx context.Context, usuarioID string) ([]Filme, error)
	AddFavorito(ctx context.Context, usuarioID string, filme Filme) error
	RemoveFavorito(ctx context.Context, usuarioID string, filmeID int64) error
	IsFavorito(ctx context.Context, usuarioID string, filmeID int64) (bool, error)
	ListNotas(ctx context.Context, usuarioID string) (map[int64]float64, error)
	// GetNota devolve NotaNaoDefinida quando o usuário não avaliou o filme.
	GetNota(ctx context.Context, usuarioID string, filmeID int64) (float64, error)
	SaveNota(ctx context.Context, usuarioID string, filmeID int64, nota float64) error
	DeleteNota(ctx context.Context, usuarioID string, filmeID int64) error
}
