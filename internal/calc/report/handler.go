package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"CasingSafe/internal/auth"
	"CasingSafe/internal/calc/assessment"
)

type Input struct {
	Meta
	Assessment assessment.Input `json:"assessment"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	bundle, err := assessment.Run(r.Context(), input.Assessment)
	if err != nil {
		http.Error(w, err.Error(), assessment.StatusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, withAuthor(r.Context(), input.Meta), bundle); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}

// withAuthor signs the report with the session login when no author was given.
func withAuthor(ctx context.Context, meta Meta) Meta {
	if meta.Author == "" {
		meta.Author = auth.UserLogin(ctx)
	}
	return meta
}
