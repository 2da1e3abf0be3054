package client_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge/pageforge-backend/internal/client"
	"github.com/pageforge/pageforge-backend/internal/exports"
	projecthttp "github.com/pageforge/pageforge-backend/internal/projects/http"
	"github.com/pageforge/pageforge-backend/internal/projects/memory"
	"github.com/pageforge/pageforge-backend/internal/projects/service"
)

func setupServer(t *testing.T) (*client.Client, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	exportDir := t.TempDir()

	router := gin.New()
	svc := service.NewProjectService(memory.NewStore(), nil)
	projecthttp.New(svc).Register(router.Group("/projects"))
	exports.NewHandler(exports.NewExporter(exportDir, "/exports")).Register(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return client.New(server.URL), exportDir
}

func TestEndToEndSaveListExport(t *testing.T) {
	cl, exportDir := setupServer(t)
	ctx := context.Background()

	html := "<html><body><h1>Hi</h1></body></html>"
	saved, err := cl.SaveProject(ctx, client.SaveProjectInput{
		Name:          "Landing",
		HTMLVersion:   html,
		EditorVersion: `{"html":"<h1>Hi</h1>","css":""}`,
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	projects, err := cl.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Landing", projects[0].Name)

	path, err := cl.ExportHTML(ctx, projects[0].HTMLVersion, "landing.html")
	require.NoError(t, err)
	assert.Equal(t, "/exports/landing.html", path)

	data, err := os.ReadFile(filepath.Join(exportDir, "landing.html"))
	require.NoError(t, err)
	assert.Equal(t, html, string(data), "exported file matches the submitted htmlVersion byte-for-byte")
}

func TestGetProject(t *testing.T) {
	cl, _ := setupServer(t)
	ctx := context.Background()

	saved, err := cl.SaveProject(ctx, client.SaveProjectInput{
		Name: "Landing", HTMLVersion: "<html></html>", EditorVersion: "{}",
	})
	require.NoError(t, err)

	got, err := cl.GetProject(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	_, err = cl.GetProject(ctx, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Project not found")
}

func TestDeleteProject(t *testing.T) {
	cl, _ := setupServer(t)
	ctx := context.Background()

	saved, err := cl.SaveProject(ctx, client.SaveProjectInput{
		Name: "Doomed", HTMLVersion: "<html></html>", EditorVersion: "{}",
	})
	require.NoError(t, err)

	require.NoError(t, cl.DeleteProject(ctx, saved.ID))

	err = cl.DeleteProject(ctx, saved.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Project not found")
}

func TestErrorsCarryServerMessage(t *testing.T) {
	cl, _ := setupServer(t)
	ctx := context.Background()

	// stale id on save
	_, err := cl.SaveProject(ctx, client.SaveProjectInput{
		ID: "stale", Name: "Ghost", HTMLVersion: "<html></html>", EditorVersion: "{}",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Project not found")

	// missing fields on export
	_, err = cl.ExportHTML(ctx, "", "landing.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "html and filename")
}

func TestRequestFailure(t *testing.T) {
	cl := client.New("http://127.0.0.1:1")

	_, err := cl.ListProjects(context.Background())
	require.Error(t, err)
}
