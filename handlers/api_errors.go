package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// canonical API error messages
const (
	MsgInvalidInput  = "Invalid input data."
	MsgMovieNotFound = "Movie with the given ID was not found."
	MsgNoMoviesFound = "No movies found."
	MsgServerError   = "Internal server error."
)

// ErrorResponse is the standardized error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

// writeError writes an error response with the given HTTP status and detail.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
