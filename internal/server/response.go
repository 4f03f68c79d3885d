package server

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Missing   []string `json:"missing_columns,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// tableResponse carries one tabular view with its resolved filters.
type tableResponse struct {
	DatasetID string     `json:"dataset_id"`
	Years     []int      `json:"years"`
	Payers    []string   `json:"payers"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Warning   string     `json:"warning,omitempty"`
}

// uploadResponse describes a freshly cleaned dataset.
type uploadResponse struct {
	ID              string   `json:"id"`
	FileName        string   `json:"file_name"`
	Format          string   `json:"format"`
	Rows            int64    `json:"rows"`
	DroppedRows     int64    `json:"dropped_rows"`
	CoercedCells    int64    `json:"coerced_cells"`
	MissingOptional []string `json:"missing_optional_columns,omitempty"`
	Years           []int    `json:"years"`
	Payers          []string `json:"payers"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(status), status)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, errorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		RequestID: requestIDFrom(r.Context()),
	})
}

// nonNil keeps empty tables serializing as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
