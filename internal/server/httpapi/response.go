package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/geomap/internal/server/validation"
	"github.com/goccy/go-json"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type messageData struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data})
}

var errBadBody = validation.New("Invalid JSON body")

// decodeJSON reads one JSON value from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return validation.New("Request body is required")
		}
		return errBadBody
	}
	return nil
}

// payload is a request body that converts itself into a domain value.
type payload[V any] interface {
	toModel() (*V, error)
}

// bind decodes, validates and converts a request body.
func bind[V any](r *http.Request, dst payload[V]) (*V, error) {
	if err := decodeJSON(r, dst); err != nil {
		return nil, err
	}
	if err := validation.Struct(dst); err != nil {
		return nil, err
	}
	return dst.toModel()
}
