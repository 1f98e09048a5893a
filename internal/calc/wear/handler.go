package wear

import (
	"encoding/json"
	"net/http"

	"CasingSafe/internal/calc/sweep"
)

type Handler struct{}

type sweepRequest struct {
	Input Input       `json:"input"`
	Range sweep.Range `json:"range"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Calculate(input))
}

func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	points, err := SweepROP(r.Context(), req.Input, req.Range.Values(ROPRange))
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sweep.Curve{
		Title:  "Wear model",
		XLabel: "Rate of penetration (m/h)",
		YLabel: "Wear area (m2)",
		Points: points,
	})
}
