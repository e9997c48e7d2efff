package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/skillbloom/skillbloom/internal/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrPageNotFound = errors.New("page not found")

type Page struct {
	Title       string
	Slug        string
	Description string
	Content     string
}

// PageService serves static markdown pages such as /about from the content
// directory. Pages are re-read on every request in development.
type PageService struct {
	contentDir string
	reload     bool
	parser     *markdown.Parser

	mu    sync.RWMutex
	pages map[string]*Page
}

func NewPageService(contentDir string, reload bool) *PageService {
	return &PageService{
		contentDir: contentDir,
		reload:     reload,
		parser:     markdown.NewParser(),
		pages:      make(map[string]*Page),
	}
}

func (s *PageService) Page(slug string) (*Page, error) {
	if !s.reload {
		s.mu.RLock()
		page, ok := s.pages[slug]
		s.mu.RUnlock()
		if ok {
			return page, nil
		}
	}

	page, err := s.loadPage(slug)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pages[slug] = page
	s.mu.Unlock()

	return page, nil
}

func (s *PageService) loadPage(slug string) (*Page, error) {
	if strings.ContainsAny(slug, `/\.`) {
		return nil, ErrPageNotFound
	}

	content, err := os.ReadFile(filepath.Join(s.contentDir, slug+".md"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	doc, err := s.parser.Parse(content)
	if err != nil {
		return nil, err
	}

	title := doc.String("title")
	if title == "" {
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}

	return &Page{
		Title:       title,
		Slug:        slug,
		Description: doc.String("description"),
		Content:     string(doc.HTML),
	}, nil
}
