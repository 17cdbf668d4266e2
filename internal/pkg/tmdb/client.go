// Package tmdb é o cliente somente-leitura do catálogo remoto (The Movie Database, API v3).
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
)

// errNotFound marca a resposta 404 do catálogo; só Movie a traduz para NotFound.
var errNotFound = errors.New("recurso não encontrado no catálogo")

// Config reúne os parâmetros do catálogo.
type Config struct {
	BaseURL   string
	APIKey    string
	Language  string
	ImageBase string
	Timeout   time.Duration
}

// Client consulta os endpoints de filmes populares, busca e detalhes.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient cria o cliente. httpClient nil usa um http.Client com o timeout configurado.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: httpClient}
}

// movieDTO é o formato de um filme nas respostas do TMDB.
type movieDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
}

type pageDTO struct {
	Page         int        `json:"page"`
	Results      []movieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

func (c *Client) toFilme(m movieDTO) domain.Filme {
	f := domain.Filme{
		ID:      m.ID,
		Titulo:  m.Title,
		Sinopse: m.Overview,
		Nota:    m.VoteAverage,
	}
	if m.PosterPath != nil {
		f.Imagem = domain.PosterURL(c.cfg.ImageBase, *m.PosterPath)
	}
	return f
}

func (c *Client) toPagina(p pageDTO) domain.PaginaFilmes {
	filmes := make([]domain.Filme, 0, len(p.Results))
	for _, m := range p.Results {
		filmes = append(filmes, c.toFilme(m))
	}
	return domain.PaginaFilmes{
		Results:      filmes,
		Page:         p.Page,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
		HasMore:      p.Page < p.TotalPages,
	}
}

// Popular busca uma página da lista de filmes populares.
func (c *Client) Popular(ctx context.Context, page int) (domain.PaginaFilmes, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var p pageDTO
	if err := c.get(ctx, "/movie/popular", params, &p); err != nil {
		return domain.PaginaFilmes{}, err
	}
	return c.toPagina(p), nil
}

// Search busca filmes pelo título. Consulta vazia retorna página vazia sem chamada remota.
func (c *Client) Search(ctx context.Context, query string, page int) (domain.PaginaFilmes, error) {
	if query == "" {
		return domain.PaginaFilmes{Results: []domain.Filme{}, Page: page}, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var p pageDTO
	if err := c.get(ctx, "/search/movie", params, &p); err != nil {
		return domain.PaginaFilmes{}, err
	}
	return c.toPagina(p), nil
}

// Movie busca os detalhes de um filme.
func (c *Client) Movie(ctx context.Context, id int64) (domain.Filme, error) {
	var m movieDTO
	err := c.get(ctx, fmt.Sprintf("/movie/%d", id), url.Values{}, &m)
	if errors.Is(err, errNotFound) {
		return domain.Filme{}, apperror.NewNotFoundError("Filme não encontrado.")
	}
	if err != nil {
		return domain.Filme{}, err
	}
	return c.toFilme(m), nil
}

// get executa a chamada e decodifica o JSON em out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("api_key", c.cfg.APIKey)
	if c.cfg.Language != "" {
		params.Set("language", c.cfg.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return apperror.NewInternalError("Falha ao montar requisição ao catálogo.", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.NewUpstreamError("Catálogo indisponível.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		var cause error
		if resp.StatusCode == http.StatusNotFound {
			cause = errNotFound
		}
		return apperror.NewUpstreamError(fmt.Sprintf("Catálogo respondeu com status %d.", resp.StatusCode), cause)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewUpstreamError("Resposta inválida do catálogo.", err)
	}
	return nil
}
