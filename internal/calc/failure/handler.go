package failure

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handler struct{}

type calcRequest struct {
	Input
	Pressures Pressures `json:"pressures"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req calcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := req.WallLoss.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Assess(req.Input, req.Pressures)
	switch {
	case errors.Is(err, ErrPressuresRequired), errors.Is(err, ErrNonPositiveMargin):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
