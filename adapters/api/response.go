package api

import (
	"encoding/json"
	"net/http"

	"boxplot/domain/boxplot"
	"boxplot/internal/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// summaryResponse is returned for every newly computed analysis
type summaryResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Summary boxplot.Summary `json:"summary"`
	Count   int             `json:"count"`
}

type batchItemResponse struct {
	Index   int              `json:"index"`
	ID      string           `json:"id,omitempty"`
	Summary *boxplot.Summary `json:"summary,omitempty"`
	Count   int              `json:"count,omitempty"`
	Error   *errorBody       `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItemResponse `json:"results"`
}

type analysesResponse struct {
	Analyses []*boxplot.Analysis `json:"analyses"`
}

type samplesResponse struct {
	Samples []boxplot.SampleDataset `json:"samples"`
}

func newSummaryResponse(a *boxplot.Analysis) *summaryResponse {
	return &summaryResponse{
		ID:      a.ID.String(),
		Name:    a.Name,
		Summary: a.Summary,
		Count:   a.Count(),
	}
}

func errorBodyFor(err error) *errorBody {
	code := errors.GetCode(err)
	if code == "UNKNOWN" {
		code = errors.CodeInternalError
	}
	return &errorBody{Code: code, Message: errors.UserMessage(err)}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errorResponse{Error: *errorBodyFor(err)})
}

func notFound(resource string) error {
	return errors.NotFound(resource, nil)
}
