package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	summaryRe = regexp.MustCompile(`^//\s*@Summary\s+(.+)$`)
	routerRe  = regexp.MustCompile(`^//\s*@Router\s+(\S+)\s+\[(\w+)\]$`)
)

type operation struct {
	Summary string `json:"summary"`
}

// annotatedRoutes maps "method path" to the @Summary of every handler in dir.
func annotatedRoutes(t *testing.T, dir string) map[string]string {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	require.NoError(t, err)

	routes := make(map[string]string)
	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		raw, err := os.ReadFile(f)
		require.NoError(t, err)

		var summary string
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimSpace(line)
			if m := summaryRe.FindStringSubmatch(line); m != nil {
				summary = strings.TrimSpace(m[1])
			}
			if m := routerRe.FindStringSubmatch(line); m != nil {
				routes[m[2]+" "+m[1]] = summary
				summary = ""
			}
		}
	}
	return routes
}

func TestDocMatchesHandlerAnnotations(t *testing.T) {
	var doc struct {
		BasePath string                          `json:"basePath"`
		Paths    map[string]map[string]operation `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))
	assert.Equal(t, "/api", doc.BasePath)

	documented := make(map[string]string)
	for path, methods := range doc.Paths {
		for method, op := range methods {
			documented[method+" "+path] = op.Summary
		}
	}

	annotated := annotatedRoutes(t, filepath.Join("..", "internal", "api", "handler"))
	require.NotEmpty(t, annotated)
	assert.Equal(t, annotated, documented)
	assert.Contains(t, annotated, "get /health")
	assert.Contains(t, annotated, "get /health/ready")
}

func TestDocDefinitionsResolve(t *testing.T) {
	raw := SwaggerInfo.ReadDoc()

	var doc struct {
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	for _, m := range regexp.MustCompile(`#/definitions/([\w.]+)`).FindAllStringSubmatch(raw, -1) {
		assert.Contains(t, doc.Definitions, m[1])
	}
}
