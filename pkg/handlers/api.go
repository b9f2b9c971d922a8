package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"blog-store/pkg/models"
	"blog-store/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func ListArticles(c *gin.Context) {
	includeDrafts := c.Query("drafts") == "true"
	if includeDrafts {
		// Drafts are unpublished; only a logged-in author may list them.
		session := sessions.Default(c)
		if session.Get("access_token") == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
	}

	articles, err := services.ListArticles(includeDrafts)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch articles"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

func GetArticle(c *gin.Context) {
	targetPath := c.Query("path")
	art, err := services.GetArticle(targetPath)
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			c.JSON(404, gin.H{"error": "Article not found"})
		} else {
			c.JSON(500, gin.H{"error": "Failed to load article"})
		}
		return
	}
	c.JSON(http.StatusOK, art)
}

func GetArticleHTML(c *gin.Context) {
	targetPath := c.Query("path")
	art, err := services.GetArticle(targetPath)
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			c.JSON(404, gin.H{"error": "Article not found"})
		} else {
			c.JSON(500, gin.H{"error": "Failed to load article"})
		}
		return
	}

	html, err := services.RenderBody(art.Body)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to render article"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func GetArticleAssets(c *gin.Context) {
	targetPath := c.Query("path")
	art, err := services.GetArticle(targetPath)
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			c.JSON(404, gin.H{"error": "Article not found"})
		} else {
			c.JSON(500, gin.H{"error": "Failed to load article"})
		}
		return
	}

	blocks, images, err := services.ExtractAssets(art.Body)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to scan article body"})
		return
	}
	c.JSON(http.StatusOK, models.ArticleAssets{
		Path:       art.Path,
		CodeBlocks: blocks,
		Images:     images,
	})
}

func SaveArticle(c *gin.Context) {
	var art models.Article
	if err := c.BindJSON(&art); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if art.Path == "" || strings.Contains(art.Path, "..") {
		c.JSON(400, gin.H{"error": "Invalid path"})
		return
	}
	if art.Format == "" {
		art.Format = "yaml"
	}
	// A JSON article is a single front-matter object; a body would be lost.
	if art.Format == "json" && strings.TrimSpace(art.Body) != "" {
		c.JSON(400, gin.H{"error": "JSON articles cannot carry a body"})
		return
	}

	if err := services.SaveArticle(art.Path, art.FrontMatter, art.Body, art.Format); err != nil {
		c.JSON(500, gin.H{"error": "Save failed: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"status": "saved"})
}

func CreateArticle(c *gin.Context) {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if req.Path == "" || strings.Contains(req.Path, "..") {
		c.JSON(400, gin.H{"error": "Invalid path"})
		return
	}

	if err := services.CreateArticle(req.Path); err != nil {
		if os.IsExist(err) {
			c.JSON(409, gin.H{"error": "Article already exists"})
		} else {
			c.JSON(500, gin.H{"error": "Create failed: " + err.Error()})
		}
		return
	}
	c.JSON(200, gin.H{"status": "created"})
}
