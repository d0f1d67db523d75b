package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func RespondWithJSON(writer http.ResponseWriter, code int, payload interface{}) {
	resultData, err := json.Marshal(payload)
	if err != nil {
		RespondWithError(writer, http.StatusInternalServerError, "Error marshalling result", err)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(code)
	writer.Write(resultData)
}

func RespondWithError(writer http.ResponseWriter, code int, message string, err error) {
	slog.Error(message, "http_status", code, "error", err)

	response := struct {
		Error string `json:"error"`
	}{
		Error: message,
	}

	RespondWithJSON(writer, code, response)
}
