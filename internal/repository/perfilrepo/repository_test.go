package perfilrepo

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
)

func newRepo(t *testing.T) (*PerfilRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPerfilRepository(db, time.Second, logger.NewLoggerWithWriter("error", io.Discard)), mock
}

func TestListFavoritos(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM favoritos").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"filme_id", "titulo", "imagem", "sinopse", "nota"}).
			AddRow(550, "Clube da Luta", "https://image.tmdb.org/t/p/w500/fight.jpg", "Sinopse", 8.4).
			AddRow(13, "Forrest Gump", nil, "", 8.5))

	favoritos, err := repo.ListFavoritos(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, favoritos, 2)
	assert.Equal(t, int64(550), favoritos[0].ID)
	require.NotNil(t, favoritos[0].Imagem)
	assert.Nil(t, favoritos[1].Imagem)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFavoritos_Empty(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM favoritos").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"filme_id", "titulo", "imagem", "sinopse", "nota"}))

	favoritos, err := repo.ListFavoritos(context.Background(), "u1")

	require.NoError(t, err)
	assert.NotNil(t, favoritos)
	assert.Empty(t, favoritos)
}

func TestAddFavorito_IsIdempotentInsert(t *testing.T) {
	repo, mock := newRepo(t)
	filme := domain.Filme{ID: 550, Titulo: "Clube da Luta", Sinopse: "Sinopse", Nota: 8.4}

	mock.ExpectExec("INSERT INTO favoritos (.+) ON CONFLICT \\(usuario_id, filme_id\\) DO NOTHING").
		WithArgs("u1", int64(550), "Clube da Luta", nil, "Sinopse", 8.4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddFavorito(context.Background(), "u1", filme)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavorito(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM favoritos WHERE usuario_id = (.+) AND filme_id = ").
		WithArgs("u1", int64(550)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RemoveFavorito(context.Background(), "u1", 550))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsFavorito(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", int64(550)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.IsFavorito(context.Background(), "u1", 550)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListNotas(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT filme_id, nota FROM notas").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"filme_id", "nota"}).
			AddRow(550, 4.5).
			AddRow(13, 0.0))

	notas, err := repo.ListNotas(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, map[int64]float64{550: 4.5, 13: 0}, notas)
}

func TestGetNota(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT nota FROM notas WHERE usuario_id = (.+) AND filme_id = (.+)").
		WithArgs("u1", int64(550)).
		WillReturnRows(sqlmock.NewRows([]string{"nota"}).AddRow(4.5))

	n, err := repo.GetNota(context.Background(), "u1", 550)

	require.NoError(t, err)
	assert.Equal(t, 4.5, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNota_Unrated(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT nota FROM notas").
		WithArgs("u1", int64(13)).
		WillReturnRows(sqlmock.NewRows([]string{"nota"}))

	n, err := repo.GetNota(context.Background(), "u1", 13)

	require.NoError(t, err)
	assert.Equal(t, domain.NotaNaoDefinida, n)
}

func TestGetNota_DBFailure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT nota FROM notas").
		WillReturnError(errors.New("timeout"))

	_, err := repo.GetNota(context.Background(), "u1", 550)

	assert.IsType(t, &apperror.InternalError{}, err)
}

func TestSaveNota_Upserts(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO notas (.+) ON CONFLICT (.+) DO UPDATE").
		WithArgs("u1", int64(550), 3.5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveNota(context.Background(), "u1", 550, 3.5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNota_DBFailure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM notas").
		WillReturnError(errors.New("timeout"))

	err := repo.DeleteNota(context.Background(), "u1", 550)

	assert.IsType(t, &apperror.InternalError{}, err)
}
