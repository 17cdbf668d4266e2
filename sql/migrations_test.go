package migrations

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_EmbedsOrderedMigrations(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00001_create_usuarios.sql",
		"00002_create_favoritos.sql",
		"00003_create_notas.sql",
	}, files)

	for _, name := range files {
		body, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

// A nota do catálogo guardada no favorito não pode ser arredondada pelo tipo da coluna.
func TestFavoritos_NotaKeepsCatalogPrecision(t *testing.T) {
	body, err := fs.ReadFile(FS, "00002_create_favoritos.sql")
	require.NoError(t, err)

	col := regexp.MustCompile(`(?m)^\s*nota\s+(.+?)\s+NOT NULL`).FindStringSubmatch(string(body))
	require.Len(t, col, 2)
	assert.Equal(t, "DOUBLE PRECISION", col[1])
}
