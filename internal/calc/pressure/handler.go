package pressure

import (
	"context"
	"encoding/json"
	"net/http"

	"CasingSafe/internal/calc/sweep"
)

type Handler struct{}

func (h *Handler) NonPlasticCalc(w http.ResponseWriter, r *http.Request) {
	calc(w, r, ExternalNonPlastic)
}

func (h *Handler) PlasticCalc(w http.ResponseWriter, r *http.Request) {
	calc(w, r, ExternalPlastic)
}

func (h *Handler) GasCalc(w http.ResponseWriter, r *http.Request) {
	calc(w, r, InternalGas)
}

func (h *Handler) OilCalc(w http.ResponseWriter, r *http.Request) {
	calc(w, r, InternalOil)
}

func (h *Handler) NonPlasticSweep(w http.ResponseWriter, r *http.Request) {
	depthCurve(w, r, DepthRange, SweepNonPlasticDepth, "Max external pressure, non-creeping formation", "External pressure (MPa)")
}

func (h *Handler) PlasticSweep(w http.ResponseWriter, r *http.Request) {
	depthCurve(w, r, DepthRange, SweepPlasticDepth, "Max external pressure, creeping formation", "External pressure (MPa)")
}

func (h *Handler) GasSweep(w http.ResponseWriter, r *http.Request) {
	depthCurve(w, r, DepthRange, SweepGasDepth, "Max internal pressure, gas well", "Internal pressure (MPa)")
}

func (h *Handler) OilSweep(w http.ResponseWriter, r *http.Request) {
	depthCurve(w, r, OilDepthRange, SweepOilDepth, "Max internal pressure, oil well", "Internal pressure (MPa)")
}

func calc[I, R any](w http.ResponseWriter, r *http.Request, fn func(I) (R, error)) {
	var input I
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := fn(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func depthCurve[I any](w http.ResponseWriter, r *http.Request, def sweep.Range, fn func(context.Context, I, []float64) ([]sweep.Point, error), title, yLabel string) {
	var req struct {
		Input I           `json:"input"`
		Range sweep.Range `json:"range"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	points, err := fn(r.Context(), req.Input, req.Range.Values(def))
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sweep.Curve{
		Title:  title,
		XLabel: "Depth (m)",
		YLabel: yLabel,
		Points: points,
	})
}
