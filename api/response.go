package api

import (
	"fmt"
	"net/http"
)

// sendErrorResponse writes a plain text error, the same way the file server
// reports its own errors.
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}

func handleUnsupportedMethod(w http.ResponseWriter, r *http.Request) {
	sendErrorResponse(w, fmt.Sprintf("Unsupported method (%q)", r.Method), http.StatusNotImplemented)
}
