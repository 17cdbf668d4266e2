package domain

import "strings"

// MaxPagina é a última página aceita pelo catálogo remoto.
const MaxPagina = 500

// Filme representa um título do catálogo remoto.
// Nota é a média de votos do catálogo, não a avaliação pessoal do usuário.
type Filme struct {
	ID      int64   `json:"id"`
	Titulo  string  `json:"titulo"`
	Imagem  *string `json:"imagem,omitempty"`
	Sinopse string  `json:"sinopse"`
	Nota    float64 `json:"nota"`
}

// PaginaFilmes é uma página de resultados do catálogo.
type PaginaFilmes struct {
	Results      []Filme `json:"results"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	HasMore      bool    `json:"has_more"`
}

// PosterURL monta a URL do pôster; caminhos vazios não geram imagem.
func PosterURL(base, path string) *string {
	if path == "" {
		return nil
	}
	url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	return &url
}

// NormalizarPagina restringe a página ao intervalo aceito pelo catálogo.
func NormalizarPagina(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPagina {
		return MaxPagina
	}
	return page
}
