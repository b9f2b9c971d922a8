package services

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"blog-store/pkg/config"
	"blog-store/pkg/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrArticleNotFound is returned by GetArticle for an unknown path.
var ErrArticleNotFound = errors.New("article not found")

var (
	articleCache []models.Article
	cacheMutex   sync.Mutex
	cacheLoaded  bool
)

// ListArticles returns the corpus ordered by date descending. Drafts are
// excluded unless includeDrafts is set.
func ListArticles(includeDrafts bool) ([]models.Article, error) {
	all, err := getArticlesCache()
	if err != nil {
		return nil, err
	}
	if includeDrafts {
		out := make([]models.Article, len(all))
		copy(out, all)
		return out, nil
	}
	out := []models.Article{}
	for _, art := range all {
		if !art.Draft {
			out = append(out, art)
		}
	}
	return out, nil
}

// GetArticle returns the article stored under the given content-relative
// path, or ErrArticleNotFound.
func GetArticle(path string) (models.Article, error) {
	all, err := getArticlesCache()
	if err != nil {
		return models.Article{}, err
	}
	path = filepath.ToSlash(path)
	for _, art := range all {
		if art.Path == path {
			return art, nil
		}
	}
	return models.Article{}, ErrArticleNotFound
}

func getArticlesCache() ([]models.Article, error) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	if cacheLoaded {
		return articleCache, nil
	}

	articles, err := scanArticles(config.ContentPath)
	if err != nil {
		return nil, err
	}

	articleCache = articles
	cacheLoaded = true
	return articleCache, nil
}

func scanArticles(contentDir string) ([]models.Article, error) {
	var articles []models.Article

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		relPath, _ := filepath.Rel(contentDir, path)
		relPath = filepath.ToSlash(relPath)

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}

		articles = append(articles, buildArticle(relPath, content))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Newest first, undated entries last.
	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].Date.IsZero() {
			return false
		}
		if articles[j].Date.IsZero() {
			return true
		}
		return articles[i].Date.After(articles[j].Date)
	})

	return articles, nil
}

// buildArticle decodes one content file. A file with unreadable front-matter
// still lists: the whole file becomes the body and the title falls back to
// the file name.
func buildArticle(relPath string, content []byte) models.Article {
	art := models.Article{
		Path: relPath,
		Slug: strings.TrimSuffix(relPath, filepath.Ext(relPath)),
	}

	fm, body, format, err := ParseFrontMatter(content)
	if err != nil {
		art.Body = strings.TrimSpace(string(content))
		art.Title = titleFromPath(relPath)
		return art
	}

	art.FrontMatter = fm
	art.Body = body
	art.Format = format

	if t, ok := fm["title"].(string); ok && t != "" {
		art.Title = t
	} else {
		art.Title = titleFromPath(relPath)
	}
	if date, ok := ParseFrontMatterDate(fm["date"]); ok {
		art.Date = date
	}
	if draft, ok := fm["draft"].(bool); ok {
		art.Draft = draft
	}
	if summary, ok := fm["summary"].(string); ok {
		art.Summary = summary
	}

	return art
}

func titleFromPath(relPath string) string {
	base := filepath.Base(relPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return cases.Title(language.English).String(base)
}

func InvalidateCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	cacheLoaded = false
	articleCache = nil
}
