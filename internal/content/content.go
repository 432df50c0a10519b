// Package content serves the bundled box plot guides. Each guide is a
// markdown file with YAML front matter, rendered to HTML once at load time.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"boxplot/domain/core"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"
)

//go:embed articles/*.md
var articles embed.FS

// Guide is a rendered article
type Guide struct {
	Slug        string
	Title       string
	Description string
	Keywords    string
	Date        string
	Body        template.HTML
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Keywords    string `yaml:"keywords"`
	Date        string `yaml:"date"`
}

// Library holds every guide found in a filesystem
type Library struct {
	guides []Guide
	bySlug map[string]int
}

var (
	defaultOnce    sync.Once
	defaultLibrary *Library
	defaultErr     error
)

// Default returns the library of embedded guides
func Default() (*Library, error) {
	defaultOnce.Do(func() {
		defaultLibrary, defaultErr = Load(articles, "articles")
	})
	return defaultLibrary, defaultErr
}

// Load reads every .md file in dir of fsys
func Load(fsys fs.FS, dir string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list guides: %w", err)
	}

	lib := &Library{bySlug: make(map[string]int)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read guide %s: %w", entry.Name(), err)
		}
		guide, err := Parse(strings.TrimSuffix(entry.Name(), ".md"), raw)
		if err != nil {
			return nil, err
		}
		lib.guides = append(lib.guides, guide)
	}

	// newest first; undated guides sort last by slug
	sort.SliceStable(lib.guides, func(i, j int) bool {
		if lib.guides[i].Date != lib.guides[j].Date {
			return lib.guides[i].Date > lib.guides[j].Date
		}
		return lib.guides[i].Slug < lib.guides[j].Slug
	})
	for i, g := range lib.guides {
		lib.bySlug[g.Slug] = i
	}
	return lib, nil
}

// Parse splits front matter from the markdown body and renders it. A missing
// title falls back to the slug.
func Parse(slug string, raw []byte) (Guide, error) {
	var meta frontMatter
	body := raw

	if rest, ok := bytes.CutPrefix(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")), []byte("---\n")); ok {
		header, content, found := bytes.Cut(rest, []byte("\n---"))
		if !found {
			return Guide{}, fmt.Errorf("guide %s: unterminated front matter", slug)
		}
		if err := yaml.Unmarshal(header, &meta); err != nil {
			return Guide{}, fmt.Errorf("guide %s: invalid front matter: %w", slug, err)
		}
		body = bytes.TrimLeft(content, "-\r\n")
	}

	if meta.Title == "" {
		meta.Title = slug
	}

	return Guide{
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Keywords:    meta.Keywords,
		Date:        meta.Date,
		Body:        template.HTML(render(body)),
	}, nil
}

func render(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.ToHTML(md, p, r)
}

// All returns every guide, newest first
func (l *Library) All() []Guide {
	return append([]Guide(nil), l.guides...)
}

// BySlug returns one guide
func (l *Library) BySlug(slug string) (Guide, error) {
	i, ok := l.bySlug[slug]
	if !ok {
		return Guide{}, core.ErrGuideNotFound
	}
	return l.guides[i], nil
}
