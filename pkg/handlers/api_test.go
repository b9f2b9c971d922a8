package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blog-store/pkg/config"
	"blog-store/pkg/models"
	"blog-store/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("blogsession", store))

	r.GET("/api/articles", ListArticles)
	r.GET("/api/article", GetArticle)
	r.GET("/api/article/html", GetArticleHTML)
	r.GET("/api/article/assets", GetArticleAssets)

	// Test-only login shortcut instead of the GitHub OAuth dance.
	r.POST("/test/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("access_token", "test-token")
		session.Save()
		c.Status(http.StatusOK)
	})

	authorized := r.Group("/api")
	authorized.Use(AuthRequired)
	{
		authorized.POST("/article", SaveArticle)
		authorized.POST("/create", CreateArticle)
	}

	return r
}

func setupContentDir(t *testing.T, files map[string]string) {
	t.Helper()

	dir := t.TempDir()
	for path, content := range files {
		fullPath := filepath.Join(dir, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
	}

	prev := config.ContentPath
	config.ContentPath = dir
	services.InvalidateCache()
	t.Cleanup(func() {
		config.ContentPath = prev
		services.InvalidateCache()
	})
}

func loginCookies(t *testing.T, r *gin.Engine) []string {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test/login", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Header().Values("Set-Cookie")
	require.NotEmpty(t, cookies)
	return cookies
}

func TestListArticlesPublic(t *testing.T) {
	setupContentDir(t, map[string]string{
		"posts/live.md": "---\ntitle: Live\ndate: \"2024-01-01\"\ndraft: false\n---\nBody.\n",
		"posts/wip.md":  "---\ntitle: WIP\ndate: \"2024-02-01\"\ndraft: true\n---\nBody.\n",
	})
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var articles []models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, "posts/live.md", articles[0].Path)
}

func TestListArticlesDraftsRequireSession(t *testing.T) {
	setupContentDir(t, map[string]string{
		"posts/wip.md": "---\ntitle: WIP\ndraft: true\n---\nBody.\n",
	})
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles?drafts=true", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/articles?drafts=true", nil)
	for _, c := range loginCookies(t, r) {
		req.Header.Add("Cookie", c)
	}
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var articles []models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &articles))
	assert.Len(t, articles, 1)
}

func TestListArticlesEmptyCorpusReturnsArray(t *testing.T) {
	setupContentDir(t, map[string]string{
		"posts/wip.md": "---\ntitle: WIP\ndraft: true\n---\nBody.\n",
	})
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetArticleByPath(t *testing.T) {
	setupContentDir(t, map[string]string{
		"posts/middleware.md": "---\ntitle: Middleware In Go\ndate: \"2024-03-15\"\n---\nBody.\n",
	})
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/article?path=posts/middleware.md", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var art models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &art))
	assert.Equal(t, "Middleware In Go", art.Title)
	assert.Equal(t, "2024-03-15", art.Date.Format("2006-01-02"))
}

func TestGetArticleNotFound(t *testing.T) {
	setupContentDir(t, map[string]string{})
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/article?path=posts/missing.md", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArticleAssets(t *testing.T) {
	setupContentDir(t, map[string]string{
		"posts/io.md": "---\ntitle: IO\n---\n```go\nvar r io.Reader\n```\n\n![diagram](/img/io.png)\n",
	})
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/article/assets?path=posts/io.md", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var assets models.ArticleAssets
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assets))
	require.Len(t, assets.CodeBlocks, 1)
	assert.Equal(t, "go", assets.CodeBlocks[0].Lang)
	require.Len(t, assets.Images, 1)
	assert.Equal(t, "/img/io.png", assets.Images[0].URL)
}

func TestGetArticleHTML(t *testing.T) {
	setupContentDir(t, map[string]string{
		"posts/p.md": "---\ntitle: P\n---\n# Heading\n",
	})
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/article/html?path=posts/p.md", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h1")
}

func TestSaveArticleRequiresSession(t *testing.T) {
	setupContentDir(t, map[string]string{})
	r := setupRouter()

	payload := `{"path":"posts/new.md","frontmatter":{"title":"New"},"body":"Body.","format":"yaml"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/article", strings.NewReader(payload))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/article", strings.NewReader(payload))
	for _, c := range loginCookies(t, r) {
		req.Header.Add("Cookie", c)
	}
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	art, err := services.GetArticle("posts/new.md")
	require.NoError(t, err)
	assert.Equal(t, "New", art.Title)
}

func TestCreateArticleConflict(t *testing.T) {
	setupContentDir(t, map[string]string{
		"posts/taken.md": "---\ntitle: Taken\n---\nBody.\n",
	})
	r := setupRouter()
	cookies := loginCookies(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create", strings.NewReader(`{"path":"posts/taken.md"}`))
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSaveArticleRejectsJSONBody(t *testing.T) {
	setupContentDir(t, map[string]string{})
	r := setupRouter()
	cookies := loginCookies(t, r)

	payload := `{"path":"posts/j.md","frontmatter":{"title":"J"},"body":"Would be lost.","format":"json"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/article", strings.NewReader(payload))
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, err := services.GetArticle("posts/j.md")
	assert.ErrorIs(t, err, services.ErrArticleNotFound)
}

func TestSaveArticleRejectsTraversal(t *testing.T) {
	setupContentDir(t, map[string]string{})
	r := setupRouter()
	cookies := loginCookies(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/article", strings.NewReader(`{"path":"../evil.md","body":"x"}`))
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
