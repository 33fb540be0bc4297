package prometheus

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/golang/gddo/httputil"
	"github.com/pkg/errors"
)

const (
	contentTypePlainText = "text/plain"
	contentTypeJSON      = "application/json"
)

// generatedResponse is a container for response output.
type generatedResponse struct {
	// Err is protocol error, if any.
	Err string `json:"error"`

	// Data is response output, if any.
	Data interface{} `json:"data"`
}

// negotiateContentType parses "Accept:" header and returns preferred content type string.
func negotiateContentType(r *http.Request) string {
	contentTypes := []string{
		contentTypePlainText,
		contentTypeJSON,
	}
	return httputil.NegotiateContentType(r, contentTypes, contentTypePlainText)
}

// writeResponse is content-type aware response writer.
func writeResponse(w http.ResponseWriter, r *http.Request, code int, response generatedResponse) error {
	contentType := negotiateContentType(r)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	switch contentType {
	case contentTypePlainText:
		buf, ok := response.Data.(bytes.Buffer)
		if !ok {
			return errors.Errorf("unexpected data: %v", response.Data)
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return errors.Wrap(err, "could not write response body")
		}
	case contentTypeJSON:
		if err := json.NewEncoder(w).Encode(response); err != nil {
			return errors.Wrap(err, "could not encode response")
		}
	}
	return nil
}
