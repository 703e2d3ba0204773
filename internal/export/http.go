package export

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/prepmate/interview-coach/pkg/http/errors"
)

// Handler exposes report rendering over HTTP.
type Handler struct {
	logger zerolog.Logger
}

func NewHandler(logger zerolog.Logger) *Handler {
	return &Handler{logger: logger.With().Str("component", "export_handler").Logger()}
}

// ExportReport handles POST /v1/export-report and streams back the PDF.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var report Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidJSON, "Request body must be valid JSON")
		return
	}
	if len(report.Questions) == 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Report must contain at least one question")
		return
	}

	// Render into memory first so a mid-document failure does not leave a
	// truncated response with a 200 status.
	var buf bytes.Buffer
	if err := Render(&buf, report); err != nil {
		h.logger.Error().Err(err).Msg("report rendering failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeExportFailed,
			"Failed to generate the report. Please try again.")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="interview-practice-report.pdf"`)
	_, _ = w.Write(buf.Bytes())
}
