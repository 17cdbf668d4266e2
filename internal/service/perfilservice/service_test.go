package perfilservice_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
	"ratemymovie/internal/service/perfilservice"
)

// MockPerfilRepository é uma implementação mock de domain.PerfilRepository
type MockPerfilRepository struct {
	mock.Mock
}

func (m *MockPerfilRepository) ListFavoritos(ctx context.Context, usuarioID string) ([]domain.Filme, error) {
	args := m.Called(ctx, usuarioID)
	return args.Get(0).([]domain.Filme), args.Error(1)
}

func (m *MockPerfilRepository) AddFavorito(ctx context.Context, usuarioID string, filme domain.Filme) error {
	return m.Called(ctx, usuarioID, filme).Error(0)
}

func (m *MockPerfilRepository) RemoveFavorito(ctx context.Context, usuarioID string, filmeID int64) error {
	return m.Called(ctx, usuarioID, filmeID).Error(0)
}

func (m *MockPerfilRepository) IsFavorito(ctx context.Context, usuarioID string, filmeID int64) (bool, error) {
	args := m.Called(ctx, usuarioID, filmeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPerfilRepository) ListNotas(ctx context.Context, usuarioID string) (map[int64]float64, error) {
	args := m.Called(ctx, usuarioID)
	return args.Get(0).(map[int64]float64), args.Error(1)
}

func (m *MockPerfilRepository) GetNota(ctx context.Context, usuarioID string, filmeID int64) (float64, error) {
	args := m.Called(ctx, usuarioID, filmeID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPerfilRepository) SaveNota(ctx context.Context, usuarioID string, filmeID int64, nota float64) error {
	return m.Called(ctx, usuarioID, filmeID, nota).Error(0)
}

func (m *MockPerfilRepository) DeleteNota(ctx context.Context, usuarioID string, filmeID int64) error {
	return m.Called(ctx, usuarioID, filmeID).Error(0)
}

type MockUsuarioFinder struct {
	mock.Mock
}

func (m *MockUsuarioFinder) FindByID(ctx context.Context, id string) (domain.Usuario, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Usuario), args.Error(1)
}

type MockFilmeLookup struct {
	mock.Mock
}

func (m *MockFilmeLookup) GetFilme(ctx context.Context, id int64) (domain.Filme, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Filme), args.Error(1)
}

type fixture struct {
	repo     *MockPerfilRepository
	usuarios *MockUsuarioFinder
	catalogo *MockFilmeLookup
	svc      *perfilservice.Service
}

func newFixture() fixture {
	f := fixture{
		repo:     new(MockPerfilRepository),
		usuarios: new(MockUsuarioFinder),
		catalogo: new(MockFilmeLookup),
	}
	f.svc = perfilservice.NewService(f.repo, f.usuarios, f.catalogo, logger.NewLoggerWithWriter("debug", io.Discard))
	return f
}

func nota(v float64) *float64 { return &v }

var clubeDaLuta = domain.Filme{ID: 550, Titulo: "Clube da Luta", Nota: 8.4}

// --- Perfil ---

func TestGetPerfil_LoadsEverything(t *testing.T) {
	f := newFixture()
	usuario := domain.Usuario{ID: "u1", Nome: "ana"}

	f.usuarios.On("FindByID", mock.Anything, "u1").Return(usuario, nil)
	f.repo.On("ListFavoritos", mock.Anything, "u1").Return([]domain.Filme{clubeDaLuta}, nil)
	f.repo.On("ListNotas", mock.Anything, "u1").Return(map[int64]float64{550: 5}, nil)

	perfil, err := f.svc.GetPerfil(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, usuario, perfil.Usuario)
	assert.Equal(t, []domain.Filme{clubeDaLuta}, perfil.Favoritos)
	assert.Equal(t, map[int64]float64{550: 5}, perfil.Notas)
}

func TestGetPerfil_Fail_UnknownUser(t *testing.T) {
	f := newFixture()

	f.usuarios.On("FindByID", mock.Anything, "u-x").Return(domain.Usuario{}, apperror.NewNotFoundError("Usuário com ID u-x não encontrado"))

	_, err := f.svc.GetPerfil(context.Background(), "u-x")

	assert.IsType(t, &apperror.NotFoundError{}, err)
	f.repo.AssertNotCalled(t, "ListFavoritos", mock.Anything, mock.Anything)
}

// --- Favoritos ---

func TestAddFavorito_SnapshotsFromCatalog(t *testing.T) {
	f := newFixture()

	f.repo.On("IsFavorito", mock.Anything, "u1", int64(550)).Return(false, nil)
	f.catalogo.On("GetFilme", mock.Anything, int64(550)).Return(clubeDaLuta, nil)
	f.repo.On("AddFavorito", mock.Anything, "u1", clubeDaLuta).Return(nil)
	f.repo.On("ListFavoritos", mock.Anything, "u1").Return([]domain.Filme{clubeDaLuta}, nil)

	favoritos, err := f.svc.AddFavorito(context.Background(), "u1", domain.FavoritoRequest{FilmeID: 550})

	require.NoError(t, err)
	assert.Equal(t, []domain.Filme{clubeDaLuta}, favoritos)
	f.repo.AssertExpectations(t)
	f.catalogo.AssertExpectations(t)
}

func TestAddFavorito_AlreadyFavoriteIsNoop(t *testing.T) {
	f := newFixture()

	f.repo.On("IsFavorito", mock.Anything, "u1", int64(550)).Return(true, nil)
	f.repo.On("ListFavoritos", mock.Anything, "u1").Return([]domain.Filme{clubeDaLuta}, nil)

	favoritos, err := f.svc.AddFavorito(context.Background(), "u1", domain.FavoritoRequest{FilmeID: 550})

	require.NoError(t, err)
	assert.Len(t, favoritos, 1)
	f.catalogo.AssertNotCalled(t, "GetFilme", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "AddFavorito", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFavorito_Fail_InvalidID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AddFavorito(context.Background(), "u1", domain.FavoritoRequest{FilmeID: 0})

	assert.IsType(t, &apperror.ValidationError{}, err)
	f.repo.AssertNotCalled(t, "IsFavorito", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFavorito_Fail_MovieNotInCatalog(t *testing.T) {
	f := newFixture()

	f.repo.On("IsFavorito", mock.Anything, "u1", int64(999999)).Return(false, nil)
	f.catalogo.On("GetFilme", mock.Anything, int64(999999)).Return(domain.Filme{}, apperror.NewNotFoundError("Filme não encontrado."))

	_, err := f.svc.AddFavorito(context.Background(), "u1", domain.FavoritoRequest{FilmeID: 999999})

	assert.IsType(t, &apperror.NotFoundError{}, err)
	f.repo.AssertNotCalled(t, "AddFavorito", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveFavorito(t *testing.T) {
	f := newFixture()

	f.repo.On("RemoveFavorito", mock.Anything, "u1", int64(550)).Return(nil)
	f.repo.On("ListFavoritos", mock.Anything, "u1").Return([]domain.Filme{}, nil)

	favoritos, err := f.svc.RemoveFavorito(context.Background(), "u1", 550)

	require.NoError(t, err)
	assert.Empty(t, favoritos)
	f.repo.AssertExpectations(t)
}

func TestFavoritoIDs(t *testing.T) {
	f := newFixture()

	f.repo.On("ListFavoritos", mock.Anything, "u1").Return([]domain.Filme{clubeDaLuta, {ID: 13}}, nil)

	ids, err := f.svc.FavoritoIDs(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{550: true, 13: true}, ids)
}

// --- Notas ---

func TestSaveNota_Valid(t *testing.T) {
	f := newFixture()

	f.repo.On("SaveNota", mock.Anything, "u1", int64(550), 4.5).Return(nil)
	f.repo.On("ListNotas", mock.Anything, "u1").Return(map[int64]float64{550: 4.5}, nil)

	notas, err := f.svc.SaveNota(context.Background(), "u1", 550, nota(4.5))

	require.NoError(t, err)
	assert.Equal(t, 4.5, notas[550])
	f.repo.AssertExpectations(t)
}

func TestSaveNota_ZeroIsAValidScore(t *testing.T) {
	f := newFixture()

	f.repo.On("SaveNota", mock.Anything, "u1", int64(550), 0.0).Return(nil)
	f.repo.On("ListNotas", mock.Anything, "u1").Return(map[int64]float64{550: 0}, nil)

	_, err := f.svc.SaveNota(context.Background(), "u1", 550, nota(0))

	require.NoError(t, err)
	f.repo.AssertNotCalled(t, "DeleteNota", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveNota_UnsetDeletes(t *testing.T) {
	for name, value := range map[string]*float64{"nula": nil, "menos um": nota(-1)} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()

			f.repo.On("DeleteNota", mock.Anything, "u1", int64(550)).Return(nil)
			f.repo.On("ListNotas", mock.Anything, "u1").Return(map[int64]float64{}, nil)

			notas, err := f.svc.SaveNota(context.Background(), "u1", 550, value)

			require.NoError(t, err)
			assert.Empty(t, notas)
			f.repo.AssertNotCalled(t, "SaveNota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSaveNota_Fail_Invalid(t *testing.T) {
	f := newFixture()

	for _, v := range []float64{5.5, 3.3, -2} {
		_, err := f.svc.SaveNota(context.Background(), "u1", 550, nota(v))
		assert.IsType(t, &apperror.ValidationError{}, err)
	}
	f.repo.AssertNotCalled(t, "SaveNota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetNota(t *testing.T) {
	f := newFixture()

	f.repo.On("GetNota", mock.Anything, "u1", int64(550)).Return(3.0, nil)
	f.repo.On("GetNota", mock.Anything, "u1", int64(13)).Return(domain.NotaNaoDefinida, nil)

	n, err := f.svc.GetNota(context.Background(), "u1", 550)
	require.NoError(t, err)
	assert.Equal(t, 3.0, n)

	n, err = f.svc.GetNota(context.Background(), "u1", 13)
	require.NoError(t, err)
	assert.Equal(t, domain.NotaNaoDefinida, n)

	// Uma única linha por consulta; o mapa completo de notas não é carregado.
	f.repo.AssertNotCalled(t, "ListNotas", mock.Anything, mock.Anything)
}

func TestListNotas_RepoError(t *testing.T) {
	f := newFixture()

	f.repo.On("ListNotas", mock.Anything, "u1").Return(map[int64]float64(nil), apperror.NewDBError("failed to list notas", errors.New("timeout")))

	_, err := f.svc.ListNotas(context.Background(), "u1")

	assert.IsType(t, &apperror.InternalError{}, err)
}
