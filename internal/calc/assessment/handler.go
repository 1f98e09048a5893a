package assessment

import (
	"encoding/json"
	"errors"
	"net/http"

	"CasingSafe/internal/calc/failure"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Run(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// StatusFor maps an assessment error to an HTTP status.
func StatusFor(err error) int {
	if errors.Is(err, failure.ErrPressuresRequired) || errors.Is(err, failure.ErrNonPositiveMargin) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
