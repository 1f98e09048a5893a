package importer

import (
	"encoding/json"
	"net/http"

	"CasingSafe/internal/calc/assessment"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct{}

// Import runs a full assessment on an uploaded workbook. The form carries the file plus
// the well_type and formation selections.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		http.Error(w, "File too big", http.StatusBadRequest)
		return
	}
	well, err := assessment.ParseWellType(r.FormValue("well_type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	formation, err := assessment.ParseFormation(r.FormValue("formation"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	input, err := Load(file, well, formation)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := assessment.Run(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), assessment.StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
