package ui

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"boxplot/adapters/export"
	"boxplot/domain/boxplot"
	"boxplot/domain/core"
	"boxplot/internal/dataset"
	"boxplot/internal/errors"

	"github.com/gin-gonic/gin"
)

// statCard is one tile of the result page
type statCard struct {
	Label string
	Value float64
}

type indexPage struct {
	Title   string
	Input   string
	Name    string
	Error   string
	Samples []boxplot.SampleDataset
	Recent  []*boxplot.Analysis
}

type resultPage struct {
	Title    string
	Analysis *boxplot.Analysis
	Cards    []statCard
	Raw      string
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderIndex(c, http.StatusOK, indexPage{})
}

// handleAnalyze accepts either pasted text in "data" or a multipart "file"
func (s *Server) handleAnalyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes+64<<10)

	var (
		a   *boxplot.Analysis
		err error
	)

	text := c.PostForm("data")
	name := strings.TrimSpace(c.PostForm("name"))

	file, header, fileErr := c.Request.FormFile("file")
	switch {
	case fileErr == nil && header.Filename != "":
		defer file.Close()
		a, err = s.service.AnalyzeFile(c.Request.Context(), header.Filename, file)
	case isTooLarge(fileErr):
		err = errors.UploadTooLarge(s.maxUploadBytes)
	default:
		a, err = s.service.AnalyzeText(c.Request.Context(), name, text)
	}

	if err != nil {
		s.logger.Debug("analysis rejected: %v", err)
		s.renderIndex(c, errors.HTTPStatus(err), indexPage{
			Input: text,
			Name:  name,
			Error: errors.UserMessage(err),
		})
		return
	}
	s.renderResult(c, a)
}

func (s *Server) handleSample(c *gin.Context) {
	// out of range or malformed indexes fall back to the first sample
	index, _ := strconv.Atoi(c.Param("index"))
	a, err := s.service.AnalyzeSample(c.Request.Context(), index)
	if err != nil {
		s.renderError(c, errors.HTTPStatus(err), errors.UserMessage(err))
		return
	}
	s.renderResult(c, a)
}

func (s *Server) handleAnalysis(c *gin.Context) {
	a, ok := s.loadAnalysis(c)
	if !ok {
		return
	}
	s.renderResult(c, a)
}

func (s *Server) handleChart(c *gin.Context) {
	a, ok := s.loadAnalysis(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.exporter.Write(&buf, export.KindPNG, a); err != nil {
		s.logger.Error("chart rendering failed for %s: %v", a.ID, err)
		s.renderError(c, http.StatusInternalServerError, "Failed to draw chart")
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleExport(kind export.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := s.loadAnalysis(c)
		if !ok {
			return
		}

		desc, err := export.Describe(string(kind))
		if err != nil {
			s.renderError(c, http.StatusBadRequest, errors.UserMessage(err))
			return
		}

		var buf bytes.Buffer
		if err := s.exporter.Write(&buf, kind, a); err != nil {
			s.logger.Error("%s export failed for %s: %v", kind, a.ID, err)
			s.renderError(c, http.StatusInternalServerError, "Export failed")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", desc.FileName))
		c.Data(http.StatusOK, desc.ContentType, buf.Bytes())
	}
}

func (s *Server) handleGuides(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "guides.html", gin.H{
		"Title":  "Box Plot Tutorials & Guides",
		"Guides": s.guides.All(),
	})
}

func (s *Server) handleGuide(c *gin.Context) {
	guide, err := s.guides.BySlug(c.Param("slug"))
	if err != nil {
		s.renderError(c, http.StatusNotFound, "Guide not found")
		return
	}
	s.renderTemplate(c, http.StatusOK, "guide.html", gin.H{
		"Title": guide.Title,
		"Guide": guide,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	hits, misses := s.service.CacheStats()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cache":  gin.H{"hits": hits, "misses": misses},
	})
}

func (s *Server) loadAnalysis(c *gin.Context) (*boxplot.Analysis, bool) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusNotFound, "Analysis not found")
		return nil, false
	}

	a, err := s.service.Get(c.Request.Context(), id)
	if err != nil {
		status := errors.HTTPStatus(err)
		if status == http.StatusNotFound {
			s.renderError(c, status, "Analysis not found")
		} else {
			s.logger.Error("failed to load analysis %s: %v", id, err)
			s.renderError(c, status, errors.UserMessage(err))
		}
		return nil, false
	}
	return a, true
}

func (s *Server) renderIndex(c *gin.Context, status int, page indexPage) {
	page.Title = "Box Plot Maker"
	page.Samples = boxplot.Samples()

	recent, err := s.service.Recent(c.Request.Context(), 0)
	if err != nil {
		s.logger.Warn("failed to list recent analyses: %v", err)
	}
	page.Recent = recent

	s.renderTemplate(c, status, "index.html", page)
}

func (s *Server) renderResult(c *gin.Context, a *boxplot.Analysis) {
	sm := a.Summary
	s.renderTemplate(c, http.StatusOK, "result.html", resultPage{
		Title:    a.Name,
		Analysis: a,
		Cards: []statCard{
			{"Minimum", sm.Minimum},
			{"Q1", sm.FirstQuartile},
			{"Median", sm.Median},
			{"Q3", sm.ThirdQuartile},
			{"Maximum", sm.Maximum},
			{"IQR", sm.InterquartileRange},
		},
		Raw: dataset.JoinNumbers(a.Data),
	})
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return stderrors.As(err, &tooLarge)
}
