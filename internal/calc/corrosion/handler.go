package corrosion

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
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	points, err := SweepTemperature(r.Context(), req.Input, req.Range.Values(TemperatureRange))
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sweep.Curve{
		Title:  ChartTitle(req.Input),
		XLabel: "Temperature (C)",
		YLabel: "Corrosion rate (mm/year)",
		Points: points,
	})
}
