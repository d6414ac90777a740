package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"cargo-offer-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeValidationErrors reports business-rule violations as 422 with
// machine-readable codes, keeping them distinct from malformed-request 400s.
func writeValidationErrors(w http.ResponseWriter, r *http.Request, errs domain.ValidationErrors) {
	type violation struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	out := make([]violation, 0, len(errs))
	for _, e := range errs {
		out = append(out, violation{Code: e.Code, Message: e.Message})
	}

	writeJSON(w, r, http.StatusUnprocessableEntity, map[string]any{"errors": out})
}
