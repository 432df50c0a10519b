package api

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"boxplot/domain/boxplot"
	"boxplot/domain/core"
	"boxplot/internal/dataset"
	"boxplot/internal/errors"

	"github.com/go-chi/chi/v5"
)

// handleSummary computes a summary for {"data":[...]} or a bare array
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	a, err := h.service.AnalyzeJSON(r.Context(), r.URL.Query().Get("name"), body)
	if err != nil {
		h.logger.Debug("summary rejected: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSummaryResponse(a))
}

// handleBatch computes one summary per entry of {"datasets":[[...],[...]]}
func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	datasets, err := dataset.ParseJSONDatasets(body, "datasets")
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.service.AnalyzeBatch(r.Context(), datasets)
	if err != nil {
		writeError(w, errors.Wrap(err, "batch was interrupted"))
		return
	}

	resp := batchResponse{Results: make([]batchItemResponse, len(items))}
	for i, item := range items {
		resp.Results[i].Index = item.Index
		if item.Err != nil {
			resp.Results[i].Error = errorBodyFor(item.Err)
			continue
		}
		resp.Results[i].ID = item.Analysis.ID.String()
		resp.Results[i].Summary = &item.Analysis.Summary
		resp.Results[i].Count = item.Analysis.Count()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleUpload analyses the multipart field "file"
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, h.bodyError(err, "Invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.InvalidInput("Missing file field"))
		return
	}
	defer file.Close()

	a, err := h.service.AnalyzeFile(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSummaryResponse(a))
}

func (h *Handler) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, notFound("analysis"))
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handleListAnalyses lists the newest analyses, honouring ?limit=N
func (h *Handler) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, errors.InvalidInput("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	analyses, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysesResponse{Analyses: analyses})
}

func (h *Handler) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, notFound("analysis"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, samplesResponse{Samples: boxplot.Samples()})
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadBytes))
	if err != nil {
		return nil, h.bodyError(err, "Failed to read request body")
	}
	return body, nil
}

func (h *Handler) bodyError(err error, message string) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.UploadTooLarge(h.maxUploadBytes)
	}
	return errors.ParseError(message, err)
}
