package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marijep/recipeimport"
)

// codes maps application error codes to HTTP status codes.
// A page without a recipe is unprocessable input, not a missing resource.
var codes = map[string]int{
	recipeimport.EINVALID:       http.StatusBadRequest,
	recipeimport.ENOTFOUND:      http.StatusUnprocessableEntity,
	recipeimport.EUNPROCESSABLE: http.StatusUnprocessableEntity,
	recipeimport.EINTERNAL:      http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body of every failed import. Error is the
// message string, or the service's own error value for a page without a
// recipe.
type ErrorResponse struct {
	Error any `json:"error"`
}

// Error writes err as a JSON error response. Internal errors are logged.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := recipeimport.ErrorCode(err), recipeimport.ErrorMessage(err)

	if code == recipeimport.EINTERNAL {
		s.Logger.Error("import failed",
			"request_id", RequestIDFromContext(r.Context()),
			"err", err,
		)
	}

	resp := ErrorResponse{Error: message}
	var e *recipeimport.Error
	if errors.As(err, &e) && len(e.Detail) > 0 {
		resp.Error = e.Detail
	}

	body, _ := json.Marshal(&resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatusCode(code))
	_, _ = w.Write(body)
}
