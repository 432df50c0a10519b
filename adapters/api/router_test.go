package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boxplot/adapters/memory"
	"boxplot/app"
	"boxplot/domain/boxplot"
	"boxplot/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := internal.NewLoggerTo(io.Discard, internal.LogLevelError)
	cfg := app.DefaultServiceConfig()
	cfg.MaxUploadBytes = 1 << 10
	svc := app.NewAnalysisService(memory.NewAnalysisRepository(), cfg, logger)
	return NewRouter(svc, Options{MaxUploadBytes: 1 << 10, Logger: logger})
}

func do(t *testing.T, h http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestSummary(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/summary", strings.NewReader(`{"data":[1,2,3,4,5,6,7,8,9,100]}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp summaryResponse
	decode(t, rec, &resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 10, resp.Count)
	assert.Equal(t, 3.0, resp.Summary.FirstQuartile)
	assert.Equal(t, 5.5, resp.Summary.Median)
	assert.Equal(t, 8.0, resp.Summary.ThirdQuartile)
	assert.Equal(t, []float64{100}, resp.Summary.Outliers)

	var raw struct {
		Summary map[string]interface{} `json:"summary"`
	}
	decode(t, rec, &raw)
	for _, key := range []string{"min", "q1", "median", "q3", "max", "iqr", "outliers", "lowerBound", "upperBound", "whiskerMin", "whiskerMax"} {
		assert.Contains(t, raw.Summary, key)
	}
}

func TestSummary_Errors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"too few", `{"data":[1,2,3]}`, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA"},
		{"identical", `[5,5,5,5]`, http.StatusUnprocessableEntity, "DEGENERATE_DATASET"},
		{"malformed", `{"data":[1,2`, http.StatusBadRequest, "PARSE_ERROR"},
		{"missing data", `{"values":[1,2,3,4]}`, http.StatusBadRequest, "NO_NUMERIC_DATA"},
		{"too large", `{"data":[` + strings.Repeat("1,", 1024) + `1]}`, http.StatusRequestEntityTooLarge, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/summary", strings.NewReader(tt.body), "application/json")
			assert.Equal(t, tt.status, rec.Code)

			var resp errorResponse
			decode(t, rec, &resp)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestBatch(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/summary/batch", strings.NewReader(`{"datasets":[[1,2,3,4],[1],[10,20,30,40,50]]}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp batchResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, 0, resp.Results[0].Index)
	require.NotNil(t, resp.Results[0].Summary)
	assert.Equal(t, 2.5, resp.Results[0].Summary.Median)
	assert.Nil(t, resp.Results[0].Error)

	assert.Nil(t, resp.Results[1].Summary)
	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, "INSUFFICIENT_DATA", resp.Results[1].Error.Code)

	require.NotNil(t, resp.Results[2].Summary)
	assert.Equal(t, 15.0, resp.Results[2].Summary.FirstQuartile)
	assert.Equal(t, 45.0, resp.Results[2].Summary.ThirdQuartile)

	rec = do(t, h, http.MethodPost, "/api/v1/summary/batch", strings.NewReader(`{"datasets":5}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartBody(t *testing.T, field, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	h := newTestRouter(t)

	body, ct := multipartBody(t, "file", "data.csv", "value\n4500\n5000\n5250\n8200\n4800\n")
	rec := do(t, h, http.MethodPost, "/api/v1/upload", body, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp summaryResponse
	decode(t, rec, &resp)
	assert.Equal(t, "data.csv", resp.Name)
	assert.Equal(t, 5, resp.Count)

	body, ct = multipartBody(t, "file", "data.docx", "1,2,3,4")
	rec = do(t, h, http.MethodPost, "/api/v1/upload", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, "other", "data.csv", "1,2,3,4")
	rec = do(t, h, http.MethodPost, "/api/v1/upload", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, "file", "big.csv", strings.Repeat("1,", 1024))
	rec = do(t, h, http.MethodPost, "/api/v1/upload", body, ct)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnalysesLifecycle(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/summary?name=first", strings.NewReader(`[1,2,3,4]`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	var created summaryResponse
	decode(t, rec, &created)
	assert.Equal(t, "first", created.Name)

	rec = do(t, h, http.MethodGet, "/api/v1/analyses/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got boxplot.Analysis
	decode(t, rec, &got)
	assert.Equal(t, []float64{1, 2, 3, 4}, got.Data)

	rec = do(t, h, http.MethodGet, "/api/v1/analyses?limit=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list analysesResponse
	decode(t, rec, &list)
	assert.Len(t, list.Analyses, 1)

	rec = do(t, h, http.MethodGet, "/api/v1/analyses?limit=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/analyses/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/analyses/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/analyses/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/analyses/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSamples(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/samples", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp samplesResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Samples, 3)
	assert.Equal(t, "Student Test Scores", resp.Samples[0].Name)
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp errorResponse
	decode(t, rec, &resp)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}
