package http

import (
	"encoding/json"
	"net/http"

	"github.com/radtech/authd/pkg/httpx"
)

const maxBodyBytes = 1 << 20 // requests are tiny JSON documents

// decodeJSON parses the request body into dst. On failure it writes the 400
// envelope itself and reports false; the handler just returns.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
			Success: false,
			Message: "Invalid request body.",
		})
		return false
	}
	return true
}
