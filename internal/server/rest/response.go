// Package rest exposes the shop over HTTP: auth endpoints that issue access
// tokens, and the seeds inventory API consumed by the storefront client.
package rest

import (
	"encoding/json"
	"net/http"
)

// detailResponse is the error envelope used by every endpoint.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, detailResponse{Detail: detail})
}
