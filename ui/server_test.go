package ui

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"boxplot/adapters/api"
	"boxplot/adapters/chart"
	"boxplot/adapters/export"
	"boxplot/adapters/memory"
	"boxplot/app"
	"boxplot/internal"
	"boxplot/internal/content"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analysisLink = regexp.MustCompile(`/analyses/([0-9a-f-]{36})/export\.csv`)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := internal.NewLoggerTo(io.Discard, internal.LogLevelError)
	svc := app.NewAnalysisService(memory.NewAnalysisRepository(), app.DefaultServiceConfig(), logger)
	guides, err := content.Default()
	require.NoError(t, err)

	s, err := NewServer(Deps{
		Service:  svc,
		Guides:   guides,
		Exporter: export.NewExporter(chart.DefaultOptions()),
		API:      api.NewRouter(svc, api.Options{Logger: logger}),
		Logger:   logger,
	})
	require.NoError(t, err)
	return s.Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func analysisID(t *testing.T, body string) string {
	t.Helper()
	m := analysisLink.FindStringSubmatch(body)
	require.Len(t, m, 2, "no analysis link in page")
	return m[1]
}

func TestIndex(t *testing.T) {
	rec := get(t, newTestServer(t), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `action="/analyze"`)
	assert.Contains(t, body, `href="/samples/0"`)
	assert.Contains(t, body, "Student Test Scores")
	assert.Contains(t, body, "</html>")
}

func TestAnalyze_Text(t *testing.T) {
	h := newTestServer(t)

	rec := postForm(t, h, url.Values{"data": {"1, 2, 3, 4, 5, 6, 7, 8, 9, 100"}, "name": {"Demo"}})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Demo</h1>")
	assert.Contains(t, body, "3.00")
	assert.Contains(t, body, "5.50")
	assert.Contains(t, body, "8.00")
	assert.Contains(t, body, `<p class="outliers">100</p>`)

	id := analysisID(t, body)

	rec = get(t, h, "/analyses/"+id)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, h, "/")
	assert.Contains(t, rec.Body.String(), `href="/analyses/`+id+`"`)
}

func TestAnalyze_ValidationErrorRerendersForm(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		input   string
		message string
	}{
		{"1, 2, 3", "At least 4 data points required. You have 3."},
		{"5 5 5 5", "All values are identical. Box plot requires some variation."},
		{"", "Please enter at least 4 numbers"},
	}

	for _, tt := range tests {
		rec := postForm(t, h, url.Values{"data": {tt.input}})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, tt.input)
		assert.Contains(t, rec.Body.String(), tt.message)
		assert.Contains(t, rec.Body.String(), `<textarea id="data" name="data" rows="8" placeholder="12, 15, 18, 22, 25">`+tt.input+`</textarea>`)
	}
}

func TestAnalyze_Upload(t *testing.T) {
	h := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "sales.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("month;sales\njan;4500\nfeb;5000\nmar;5250\napr;8200\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "<h1>sales.csv</h1>")
	assert.Contains(t, rec.Body.String(), "4 data points")
}

func TestSamplePages(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/samples/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Sales Data</h1>")
	assert.Contains(t, rec.Body.String(), `<p class="outliers">8200</p>`)

	rec = get(t, h, "/samples/99")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Student Test Scores</h1>")
}

func TestExportsAndChart(t *testing.T) {
	h := newTestServer(t)
	id := analysisID(t, get(t, h, "/samples/2").Body.String())

	rec := get(t, h, "/analyses/"+id+"/export.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="box-plot-data.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "# Box Plot Data Export\n"))
	assert.Contains(t, rec.Body.String(), "Outliers Count,0")

	rec = get(t, h, "/analyses/"+id+"/export.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="box-plot-data.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = get(t, h, "/analyses/"+id+"/chart.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestMissingAnalysis(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{
		"/analyses/0190a7e0-0000-7000-8000-000000000000",
		"/analyses/not-an-id",
		"/analyses/not-an-id/export.csv",
		"/nowhere",
	} {
		rec := get(t, h, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestGuides(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/guides")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/guides/how-to-read-a-box-plot"`)

	rec = get(t, h, "/guides/quartile-methods")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "exclusive median")

	rec = get(t, h, "/guides/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndStatic(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","cache":{"hits":0,"misses":0}}`, rec.Body.String())

	rec = get(t, h, "/static/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIIsDelegated(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", strings.NewReader(`{"data":[1,2,3,4]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"median":2.5`)

	rec = get(t, h, "/api/v1/samples")
	assert.Equal(t, http.StatusOK, rec.Code)
}
