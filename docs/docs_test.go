package docs

import (
	"encoding/json"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// annotation lê a primeira anotação geral do swag em cmd/main.go.
func annotation(t *testing.T, src, name string) string {
	t.Helper()
	m := regexp.MustCompile(`(?m)^// @` + regexp.QuoteMeta(name) + ` (.+)$`).FindStringSubmatch(src)
	require.Len(t, m, 2, name)
	return m[1]
}

func TestSwaggerInfo_MatchesMainAnnotations(t *testing.T) {
	raw, err := os.ReadFile("../cmd/main.go")
	require.NoError(t, err)
	src := string(raw)

	assert.Equal(t, annotation(t, src, "title"), SwaggerInfo.Title)
	assert.Equal(t, annotation(t, src, "version"), SwaggerInfo.Version)
	assert.Equal(t, annotation(t, src, "description"), SwaggerInfo.Description)
	assert.Equal(t, annotation(t, src, "BasePath"), SwaggerInfo.BasePath)
	assert.Equal(t, "BearerAuth", annotation(t, src, "securityDefinitions.apikey"))
	assert.Equal(t, "Authorization", annotation(t, src, "name"))
}

func TestReadDoc_IsValidSwagger(t *testing.T) {
	var doc struct {
		Swagger             string                     `json:"swagger"`
		BasePath            string                     `json:"basePath"`
		Paths               map[string]json.RawMessage `json:"paths"`
		SecurityDefinitions map[string]struct {
			Type string `json:"type"`
			Name string `json:"name"`
			In   string `json:"in"`
		} `json:"securityDefinitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/v1", doc.BasePath)
	assert.Contains(t, doc.Paths, "/filmes/{id}")
	assert.Contains(t, doc.Paths, "/notas/{id}")

	bearer, ok := doc.SecurityDefinitions["BearerAuth"]
	require.True(t, ok)
	assert.Equal(t, "apiKey", bearer.Type)
	assert.Equal(t, "Authorization", bearer.Name)
	assert.Equal(t, "header", bearer.In)
}
