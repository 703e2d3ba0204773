package document

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/prepmate/interview-coach/pkg/http/errors"
)

// Handler exposes document extraction over HTTP.
type Handler struct {
	extractor   *Extractor
	maxFileSize int64
	logger      zerolog.Logger
}

func NewHandler(extractor *Extractor, maxFileSize int64, logger zerolog.Logger) *Handler {
	return &Handler{
		extractor:   extractor,
		maxFileSize: maxFileSize,
		logger:      logger.With().Str("component", "document_handler").Logger(),
	}
}

type extractResult struct {
	Text           string `json:"text"`
	CharacterCount int    `json:"characterCount"`
}

type extractEnvelope struct {
	Success bool          `json:"success"`
	Data    extractResult `json:"data"`
}

// Extract handles POST /v1/extract-document: multipart upload, field "document".
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		httperrors.RespondError(w, http.StatusRequestEntityTooLarge, httperrors.ErrCodeFileTooLarge,
			"The uploaded file is too large. Maximum size is 10 MB.")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Missing file field \"document\"")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read uploaded file")
		httperrors.RespondInternalError(w, "Failed to read the uploaded file")
		return
	}

	text, err := h.extractor.Extract(header.Filename, data)
	switch {
	case errors.Is(err, ErrUnsupportedType):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnsupportedFileType,
			"Unsupported file type. Please upload a PDF or Word document.")
		return
	case errors.Is(err, ErrInsufficientText):
		httperrors.RespondError(w, http.StatusUnprocessableEntity, httperrors.ErrCodeInsufficientText,
			"Could not extract sufficient text from the document. Please ensure the file contains readable text.")
		return
	case err != nil:
		h.logger.Error().Err(err).Str("file", header.Filename).Msg("document extraction failed")
		httperrors.RespondError(w, http.StatusUnprocessableEntity, httperrors.ErrCodeExtractionFailed,
			"Could not read the document. Please try a different file.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(extractEnvelope{
		Success: true,
		Data:    extractResult{Text: text, CharacterCount: len(text)},
	})
}
