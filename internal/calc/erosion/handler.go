package erosion

import (
	"encoding/json"
	"net/http"

	"CasingSafe/internal/calc/sweep"
)

type Handler struct{}

type gasSweepRequest struct {
	Input GasInput    `json:"input"`
	Range sweep.Range `json:"range"`
}

type oilSweepRequest struct {
	Input OilInput    `json:"input"`
	Range sweep.Range `json:"range"`
}

func (h *Handler) GasCalc(w http.ResponseWriter, r *http.Request) {
	var input GasInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Gas(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) GasSweep(w http.ResponseWriter, r *http.Request) {
	var req gasSweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	points, err := SweepGasArea(r.Context(), req.Input, req.Range.Values(GasAreaRange))
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	writeJSON(w, sweep.Curve{
		Title:  "Tulsa angle dependent model",
		XLabel: "Pipe section area (m2)",
		YLabel: "Erosion rate (mm/year)",
		Points: points,
	})
}

func (h *Handler) OilCalc(w http.ResponseWriter, r *http.Request) {
	var input OilInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	writeJSON(w, Oil(input))
}

func (h *Handler) OilSweep(w http.ResponseWriter, r *http.Request) {
	var req oilSweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	points, err := SweepOilArea(r.Context(), req.Input, req.Range.Values(OilAreaRange))
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	writeJSON(w, sweep.Curve{
		Title:  "Bend erosion model",
		XLabel: "Pipe section area (m2)",
		YLabel: "Erosion rate (mm/year)",
		Points: points,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
