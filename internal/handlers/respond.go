package handlers

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps JSON request bodies at 10kb, same ceiling the API has
// always enforced.
const maxBodyBytes = 10 << 10

// MessageResponse is the generic {"message": ...} body used for simple
// successes and most failures.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationResponse carries field-level validation messages.
type ValidationResponse struct {
	Errors map[string]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusBadRequest, ValidationResponse{Errors: errs})
}

// decodeJSON reads a size-limited JSON body into dst. A false return means
// the 400 has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
