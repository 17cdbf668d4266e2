package usuariorepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/database"
	"ratemymovie/internal/pkg/logger"
)

const (
	insertSQL = `INSERT INTO usuarios (id, nome, password_hash, foto, created_at)
                 VALUES ($1, $2, $3, $4, $5)`
	selectColumns = `SELECT id, nome, password_hash, foto, created_at FROM usuarios`
)

// UsuarioRepository implementa a interface domain.UsuarioRepository sobre o PostgreSQL.
type UsuarioRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUsuarioRepository cria uma nova instância do UsuarioRepository, injetando o DB.
func NewUsuarioRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UsuarioRepository {
	return &UsuarioRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo usuário. Nome duplicado resulta em ConflictError.
func (r *UsuarioRepository) Save(ctx context.Context, usuario domain.Usuario) (domain.Usuario, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"nome": usuario.Nome})

	// 1. Configura Contexto com Timeout
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// 2. Prepara dados e ID
	if usuario.ID == "" {
		usuario.ID = uuid.NewString()
	}
	if usuario.CreatedAt.IsZero() {
		usuario.CreatedAt = time.Now().UTC()
	}

	// 3. Executa o INSERT
	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		usuario.ID,
		usuario.Nome,
		usuario.PasswordHash,
		usuario.Foto,
		usuario.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Info("Nome de usuário já cadastrado.", map[string]interface{}{"nome": usuario.Nome})
			return domain.Usuario{}, apperror.NewConflictError("Usuário já existe")
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.Usuario{}, apperror.NewDBError("failed to insert usuario", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": usuario.ID, "nome": usuario.Nome})
	return usuario, nil
}

// FindByNome busca um usuário pelo nome (comparação exata).
func (r *UsuarioRepository) FindByNome(ctx context.Context, nome string) (domain.Usuario, error) {
	return r.findOne(ctx, selectColumns+` WHERE nome = $1`, nome,
		fmt.Sprintf("Usuário '%s' não encontrado", nome))
}

// FindByID busca um usuário pelo ID.
func (r *UsuarioRepository) FindByID(ctx context.Context, id string) (domain.Usuario, error) {
	return r.findOne(ctx, selectColumns+` WHERE id = $1`, id,
		fmt.Sprintf("Usuário com ID %s não encontrado", id))
}

func (r *UsuarioRepository) findOne(ctx context.Context, query string, arg string, notFoundMsg string) (domain.Usuario, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	u, err := scanUsuario(r.DB.QueryRowContext(ctxTimeout, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug("Usuário não encontrado no DB.", map[string]interface{}{"lookup": arg})
			return domain.Usuario{}, apperror.NewNotFoundError(notFoundMsg)
		}
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.Usuario{}, apperror.NewDBError("failed to find usuario", err)
	}
	return u, nil
}

// FindAll lista todos os usuários em ordem de cadastro.
func (r *UsuarioRepository) FindAll(ctx context.Context) ([]domain.Usuario, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, selectColumns+` ORDER BY created_at`)
	if err != nil {
		r.logger.Error("Falha ao listar usuários no DB.", err)
		return nil, apperror.NewDBError("failed to list usuarios", err)
	}
	defer rows.Close()

	usuarios := []domain.Usuario{}
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan usuario", err)
		}
		usuarios = append(usuarios, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate usuarios", err)
	}
	return usuarios, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUsuario(s scanner) (domain.Usuario, error) {
	var (
		u    domain.Usuario
		foto sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Nome, &u.PasswordHash, &foto, &u.CreatedAt); err != nil {
		return domain.Usuario{}, err
	}
	if foto.Valid {
		u.Foto = &foto.String
	}
	return u, nil
}
