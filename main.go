package main

import (
	"log"
	"os"

	"blog-store/pkg/config"
	"blog-store/pkg/handlers"
	"blog-store/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize config
	config.Init()

	// Invalidate the article cache when content files change on disk.
	watcher, err := services.WatchContent()
	if err != nil {
		log.Fatalf("Failed to watch content directory: %v", err)
	}
	defer watcher.Close()

	r := gin.Default()

	// Session Setup
	store := cookie.NewStore([]byte(os.Getenv("SESSION_SECRET")))
	r.Use(sessions.Sessions("blogsession", store))

	// --- Auth Routes ---
	r.GET("/login", handlers.GithubLogin)
	r.GET("/auth/callback", handlers.AuthCallback)
	r.GET("/logout", handlers.Logout)

	// --- Public read API ---
	r.GET("/api/articles", handlers.ListArticles)
	r.GET("/api/article", handlers.GetArticle)
	r.GET("/api/article/html", handlers.GetArticleHTML)
	r.GET("/api/article/assets", handlers.GetArticleAssets)

	// --- Authoring API (Authorized) ---
	authorized := r.Group("/api")
	authorized.Use(handlers.AuthRequired)
	{
		authorized.POST("/article", handlers.SaveArticle)
		authorized.POST("/create", handlers.CreateArticle)
	}

	r.Run(config.ListenAddr)
}
