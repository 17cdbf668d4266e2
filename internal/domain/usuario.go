package domain

import (
	"context"
	"strings"
	"time"
)

// Usuario representa o usuário do aplicativo.
// A senha existe apenas na camada de persistência (PasswordHash nunca é serializado).
type Usuario struct {
	ID           string    `json:"id"`
	Nome         string    `json:"nome"`
	Foto         *string   `json:"foto,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UsuarioRegistration representa o payload de entrada para o registro.
type UsuarioRegistration struct {
	Nome  string `json:"nome" validate:"required,max=50"`
	Senha string `json:"senha" validate:"required,max=72"`
	Foto  string `json:"foto,omitempty"`
}

// Credenciais representa o payload de entrada para o login.
type Credenciais struct {
	Nome  string `json:"nome"`
	Senha string `json:"senha"`
}

// Sessao é o resultado de um login bem-sucedido: token e o perfil completo do usuário.
type Sessao struct {
	Token  string `json:"token"`
	Perfil Perfil `json:"perfil"`
}

// FotoValida devolve a foto apenas quando ela é uma URL http(s) ou um data URI de imagem.
// Qualquer outro valor é descartado.
func FotoValida(foto string) *string {
	if strings.HasPrefix(foto, "http") || strings.HasPrefix(foto, "data:image/") {
		return &foto
	}
	return nil
}

// UsuarioRepository define o contrato de persistência para a entidade Usuario.
type UsuarioRepository interface {
	Save(ctx context.Context, usuario Usuario) (Usuario, error)
	FindByNome(ctx context.Context, nome string) (Usuario, error)
	FindByID(ctx context.Context, id string) (Usuario, error)
	FindAll(ctx context.Context) ([]Usuario, error)
}
