package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// listMeta wraps paginated collections.
type listMeta struct {
	Total int64       `json:"total"`
	Skip  int64       `json:"skip"`
	Limit int64       `json:"limit"`
	Items interface{} `json:"items"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	return true
}
