package usuarioservice_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
	"ratemymovie/internal/service/usuarioservice"
)

// MockUsuarioRepository é uma implementação mock de domain.UsuarioRepository
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) Save(ctx context.Context, usuario domain.Usuario) (domain.Usuario, error) {
	args := m.Called(ctx, usuario)
	return args.Get(0).(domain.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) FindByNome(ctx context.Context, nome string) (domain.Usuario, error) {
	args := m.Called(ctx, nome)
	return args.Get(0).(domain.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) FindByID(ctx context.Context, id string) (domain.Usuario, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) FindAll(ctx context.Context) ([]domain.Usuario, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Usuario), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID string, nome string) (string, error) {
	args := m.Called(userID, nome)
	return args.String(0), args.Error(1)
}

type MockRevoker struct {
	mock.Mock
}

func (m *MockRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

type MockPerfilLoader struct {
	mock.Mock
}

func (m *MockPerfilLoader) LoadPerfil(ctx context.Context, usuario domain.Usuario) (domain.Perfil, error) {
	args := m.Called(ctx, usuario)
	return args.Get(0).(domain.Perfil), args.Error(1)
}

type fixture struct {
	repo    *MockUsuarioRepository
	tokens  *MockTokenService
	revoker *MockRevoker
	perfis  *MockPerfilLoader
	svc     *usuarioservice.Service
}

func newFixture() fixture {
	f := fixture{
		repo:    new(MockUsuarioRepository),
		tokens:  new(MockTokenService),
		revoker: new(MockRevoker),
		perfis:  new(MockPerfilLoader),
	}
	f.svc = usuarioservice.NewService(f.repo, f.tokens, f.revoker, f.perfis, logger.NewLoggerWithWriter("debug", io.Discard))
	return f
}

func hash(t *testing.T, senha string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	f := newFixture()

	f.repo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.Usuario) bool {
		return u.Nome == "ana" &&
			u.Foto != nil && *u.Foto == "data:image/jpeg;base64,AAAA" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo")) == nil
	})).Return(domain.Usuario{ID: "id-ana", Nome: "ana"}, nil)

	usuario, err := f.svc.Register(context.Background(), domain.UsuarioRegistration{
		Nome:  "  ana ",
		Senha: "segredo",
		Foto:  "data:image/jpeg;base64,AAAA",
	})

	require.NoError(t, err)
	assert.Equal(t, "id-ana", usuario.ID)
	f.repo.AssertExpectations(t)
}

func TestRegister_DropsInvalidFoto(t *testing.T) {
	f := newFixture()

	f.repo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.Usuario) bool {
		return u.Foto == nil
	})).Return(domain.Usuario{ID: "id-bruno", Nome: "bruno"}, nil)

	_, err := f.svc.Register(context.Background(), domain.UsuarioRegistration{Nome: "bruno", Senha: "x", Foto: "/tmp/foto.png"})

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestRegister_Fail_MissingFields(t *testing.T) {
	f := newFixture()

	for _, reg := range []domain.UsuarioRegistration{
		{Nome: "", Senha: "segredo"},
		{Nome: "   ", Senha: "segredo"},
		{Nome: "ana", Senha: ""},
	} {
		_, err := f.svc.Register(context.Background(), reg)
		assert.IsType(t, &apperror.ValidationError{}, err)
		assert.Contains(t, err.Error(), "Preencha usuário e senha")
	}
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_Fail_NomeTooLong(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Register(context.Background(), domain.UsuarioRegistration{Nome: strings.Repeat("a", 51), Senha: "segredo"})

	assert.IsType(t, &apperror.ValidationError{}, err)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_Fail_Duplicate(t *testing.T) {
	f := newFixture()

	f.repo.On("Save", mock.Anything, mock.Anything).Return(domain.Usuario{}, apperror.NewConflictError("Usuário já existe"))

	_, err := f.svc.Register(context.Background(), domain.UsuarioRegistration{Nome: "ana", Senha: "segredo"})

	assert.IsType(t, &apperror.ConflictError{}, err)
}

// --- Login ---

func TestLogin_Success_LoadsPerfil(t *testing.T) {
	f := newFixture()
	usuario := domain.Usuario{ID: "id-ana", Nome: "ana", PasswordHash: hash(t, "segredo")}
	perfil := domain.Perfil{
		Usuario:   usuario,
		Favoritos: []domain.Filme{{ID: 550, Titulo: "Clube da Luta"}},
		Notas:     map[int64]float64{550: 4.5},
	}

	f.repo.On("FindByNome", mock.Anything, "ana").Return(usuario, nil)
	f.tokens.On("GenerateToken", "id-ana", "ana").Return("jwt-token", nil)
	f.perfis.On("LoadPerfil", mock.Anything, usuario).Return(perfil, nil)

	sessao, err := f.svc.Login(context.Background(), domain.Credenciais{Nome: "ana", Senha: "segredo"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", sessao.Token)
	assert.Equal(t, perfil, sessao.Perfil)
	f.repo.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
	f.perfis.AssertExpectations(t)
}

func TestLogin_Fail_WrongPassword(t *testing.T) {
	f := newFixture()
	usuario := domain.Usuario{ID: "id-ana", Nome: "ana", PasswordHash: hash(t, "segredo")}

	f.repo.On("FindByNome", mock.Anything, "ana").Return(usuario, nil)

	_, err := f.svc.Login(context.Background(), domain.Credenciais{Nome: "ana", Senha: "errada"})

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	assert.Contains(t, err.Error(), "Usuário ou senha incorretos")
	f.tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_Fail_UnknownUser(t *testing.T) {
	f := newFixture()

	f.repo.On("FindByNome", mock.Anything, "ninguem").Return(domain.Usuario{}, apperror.NewNotFoundError("Usuário 'ninguem' não encontrado"))

	_, err := f.svc.Login(context.Background(), domain.Credenciais{Nome: "ninguem", Senha: "x"})

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

func TestLogin_Fail_MissingFields(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Login(context.Background(), domain.Credenciais{Nome: "ana"})

	assert.IsType(t, &apperror.ValidationError{}, err)
	f.repo.AssertNotCalled(t, "FindByNome", mock.Anything, mock.Anything)
}

func TestLogin_Fail_RepoError(t *testing.T) {
	f := newFixture()

	f.repo.On("FindByNome", mock.Anything, "ana").Return(domain.Usuario{}, apperror.NewDBError("failed to find usuario", errors.New("timeout")))

	_, err := f.svc.Login(context.Background(), domain.Credenciais{Nome: "ana", Senha: "segredo"})

	assert.IsType(t, &apperror.InternalError{}, err)
}

// --- Logout ---

func TestLogout_RevokesToken(t *testing.T) {
	f := newFixture()
	exp := time.Now().Add(time.Hour)

	f.revoker.On("Revoke", mock.Anything, "jti-1", exp).Return(nil)

	require.NoError(t, f.svc.Logout(context.Background(), "jti-1", exp))
	f.revoker.AssertExpectations(t)
}

func TestLogout_Fail_CacheDown(t *testing.T) {
	f := newFixture()

	f.revoker.On("Revoke", mock.Anything, "jti-1", mock.Anything).Return(errors.New("redis down"))

	err := f.svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour))

	assert.IsType(t, &apperror.InternalError{}, err)
}

func TestListUsuarios(t *testing.T) {
	f := newFixture()
	usuarios := []domain.Usuario{{ID: "1", Nome: "ana"}, {ID: "2", Nome: "bruno"}}

	f.repo.On("FindAll", mock.Anything).Return(usuarios, nil)

	result, err := f.svc.ListUsuarios(context.Background())

	require.NoError(t, err)
	assert.Equal(t, usuarios, result)
}
