package services

import (
	_ "embed"
	"fmt"

	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"gopkg.in/yaml.v3"
)

//go:embed pages.yaml
var pagesYAML []byte

// pageAliases maps extra routes onto an existing page
var pageAliases = map[string]string{
	"terms": "privacy",
}

// PageService serves the static informational pages
type PageService struct {
	pages map[string]*dto.PageResponse
}

// NewPageService loads the embedded page content
func NewPageService() (*PageService, error) {
	return newPageService(pagesYAML)
}

func newPageService(data []byte) (*PageService, error) {
	var pages []*dto.PageResponse
	if err := yaml.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse pages: %w", err)
	}

	s := &PageService{pages: make(map[string]*dto.PageResponse, len(pages))}
	for _, p := range pages {
		if p.Slug == "" {
			return nil, fmt.Errorf("page %q has no slug", p.Title)
		}
		s.pages[p.Slug] = p
	}
	return s, nil
}

// Get returns the page registered under slug
func (s *PageService) Get(slug string) (*dto.PageResponse, error) {
	if target, ok := pageAliases[slug]; ok {
		slug = target
	}
	page, ok := s.pages[slug]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("page not found")
	}
	return page, nil
}
