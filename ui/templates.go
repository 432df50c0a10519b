package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"boxplot/internal/dataset"

	"github.com/gin-gonic/gin"
)

var funcMap = template.FuncMap{
	// two decimals, as shown on the statistic cards
	"fixed": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"num":   dataset.FormatNumber,
	"join": func(values []float64) string {
		return dataset.JoinNumbers(values)
	},
	"add":   func(a, b int) int { return a + b },
	"upper": strings.ToUpper,
}

func parseTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return t, nil
}

// renderTemplate executes a template into a buffer first so that a failing
// template never leaves a half-written page.
func (s *Server) renderTemplate(c *gin.Context, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template error for %s: %v", name, err)
		c.String(http.StatusInternalServerError, "Template rendering failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	s.renderTemplate(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}
