package perfilrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
)

// PerfilRepository persiste favoritos e notas, sempre filtrados pelo ID do usuário.
type PerfilRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPerfilRepository cria o repositório de perfil.
func NewPerfilRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *PerfilRepository {
	return &PerfilRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// --- Favoritos ---

// ListFavoritos devolve os favoritos do usuário na ordem em que foram adicionados.
func (r *PerfilRepository) ListFavoritos(ctx context.Context, usuarioID string) ([]domain.Filme, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT filme_id, titulo, imagem, sinopse, nota
		FROM favoritos
		WHERE usuario_id = $1
		ORDER BY created_at, filme_id`

	rows, err := r.DB.QueryContext(ctxTimeout, query, usuarioID)
	if err != nil {
		r.logger.Error("Falha ao listar favoritos no DB.", err)
		return nil, apperror.NewDBError("failed to list favoritos", err)
	}
	defer rows.Close()

	favoritos := []domain.Filme{}
	for rows.Next() {
		var (
			f      domain.Filme
			imagem sql.NullString
		)
		if err := rows.Scan(&f.ID, &f.Titulo, &imagem, &f.Sinopse, &f.Nota); err != nil {
			return nil, apperror.NewDBError("failed to scan favorito", err)
		}
		if imagem.Valid {
			f.Imagem = &imagem.String
		}
		favoritos = append(favoritos, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate favoritos", err)
	}

	r.logger.Debug("Favoritos carregados.", map[string]interface{}{"user_id": usuarioID, "total": len(favoritos)})
	return favoritos, nil
}

// AddFavorito guarda o snapshot do filme. Um favorito existente não é alterado.
func (r *PerfilRepository) AddFavorito(ctx context.Context, usuarioID string, filme domain.Filme) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		INSERT INTO favoritos (usuario_id, filme_id, titulo, imagem, sinopse, nota, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (usuario_id, filme_id) DO NOTHING`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		usuarioID,
		filme.ID,
		filme.Titulo,
		filme.Imagem,
		filme.Sinopse,
		filme.Nota,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error("Falha ao inserir favorito no DB.", err)
		return apperror.NewDBError("failed to insert favorito", err)
	}
	return nil
}

// RemoveFavorito remove o favorito; remover um filme ausente não é erro.
func (r *PerfilRepository) RemoveFavorito(ctx context.Context, usuarioID string, filmeID int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout,
		`DELETE FROM favoritos WHERE usuario_id = $1 AND filme_id = $2`, usuarioID, filmeID)
	if err != nil {
		r.logger.Error("Falha ao remover favorito no DB.", err)
		return apperror.NewDBError("failed to delete favorito", err)
	}
	return nil
}

// IsFavorito indica se o filme está entre os favoritos do usuário.
func (r *PerfilRepository) IsFavorito(ctx context.Context, usuarioID string, filmeID int64) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT EXISTS (SELECT 1 FROM favoritos WHERE usuario_id = $1 AND filme_id = $2)`,
		usuarioID, filmeID,
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Falha ao verificar favorito no DB.", err)
		return false, apperror.NewDBError("failed to check favorito", err)
	}
	return exists, nil
}

// --- Notas ---

// ListNotas devolve o mapa filme -> nota do usuário.
func (r *PerfilRepository) ListNotas(ctx context.Context, usuarioID string) (map[int64]float64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT filme_id, nota FROM notas WHERE usuario_id = $1`, usuarioID)
	if err != nil {
		r.logger.Error("Falha ao listar notas no DB.", err)
		return nil, apperror.NewDBError("failed to list notas", err)
	}
	defer rows.Close()

	notas := make(map[int64]float64)
	for rows.Next() {
		var (
			filmeID int64
			nota    float64
		)
		if err := rows.Scan(&filmeID, &nota); err != nil {
			return nil, apperror.NewDBError("failed to scan nota", err)
		}
		notas[filmeID] = nota
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate notas", err)
	}
	return notas, nil
}

// GetNota busca a nota de um único filme, ou NotaNaoDefinida se não houver.
func (r *PerfilRepository) GetNota(ctx context.Context, usuarioID string, filmeID int64) (float64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var nota float64
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT nota FROM notas WHERE usuario_id = $1 AND filme_id = $2`, usuarioID, filmeID,
	).Scan(&nota)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotaNaoDefinida, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar nota no DB.", err)
		return 0, apperror.NewDBError("failed to get nota", err)
	}
	return nota, nil
}

// SaveNota grava ou substitui a nota do usuário para o filme.
func (r *PerfilRepository) SaveNota(ctx context.Context, usuarioID string, filmeID int64, nota float64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		INSERT INTO notas (usuario_id, filme_id, nota, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (usuario_id, filme_id) DO UPDATE SET nota = EXCLUDED.nota, updated_at = EXCLUDED.updated_at`

	if _, err := r.DB.ExecContext(ctxTimeout, query, usuarioID, filmeID, nota, time.Now().UTC()); err != nil {
		r.logger.Error("Falha ao salvar nota no DB.", err)
		return apperror.NewDBError("failed to upsert nota", err)
	}
	return nil
}

// DeleteNota remove a nota do usuário para o filme.
func (r *PerfilRepository) DeleteNota(ctx context.Context, usuarioID string, filmeID int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctxTimeout,
		`DELETE FROM notas WHERE usuario_id = $1 AND filme_id = $2`, usuarioID, filmeID); err != nil {
		r.logger.Error("Falha ao remover nota no DB.", err)
		return apperror.NewDBError("failed to delete nota", err)
	}
	return nil
}
