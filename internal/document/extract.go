// Package document turns uploaded résumé / job-description files into plain
// text suitable for prompt interpolation.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

var (
	// ErrUnsupportedType is returned for any extension other than pdf/doc/docx.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrInsufficientText is returned when fewer characters than the configured
	// minimum survive extraction and sanitization.
	ErrInsufficientText = errors.New("could not extract sufficient text from the document")
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Extractor converts PDF and DOC/DOCX uploads to sanitized plain text.
type Extractor struct {
	minTextChars int
	logger       zerolog.Logger
}

func NewExtractor(minTextChars int, logger zerolog.Logger) *Extractor {
	if minTextChars <= 0 {
		minTextChars = 50
	}
	return &Extractor{
		minTextChars: minTextChars,
		logger:       logger.With().Str("component", "document_extractor").Logger(),
	}
}

// Extract dispatches on the file extension, extracts raw text, and sanitizes
// it. Fails with ErrInsufficientText when less than the minimum is recoverable.
func (e *Extractor) Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var (
		raw string
		err error
	)
	switch ext {
	case "pdf":
		raw, err = e.extractPDF(data)
	case "docx", "doc":
		raw, err = e.extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedType, ext)
	}
	if err != nil {
		return "", err
	}

	sanitized := Sanitize(raw)
	if len(sanitized) < e.minTextChars {
		e.logger.Warn().Str("file", filename).Int("chars", len(sanitized)).Msg("extraction yielded too little text")
		return "", ErrInsufficientText
	}
	return sanitized, nil
}

// extractPDF walks the pages and concatenates their plain text. A page that
// fails to decode is skipped rather than failing the whole document.
func (e *Extractor) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var builder strings.Builder
	totalPages := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug().Int("page", pageIndex).Err(err).Msg("skipping unreadable PDF page")
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n\n")
	}
	return builder.String(), nil
}

// extractDOCX reads word/document.xml from the OOXML archive and collects the
// text runs, breaking lines at paragraph boundaries.
func (e *Extractor) extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open DOCX archive: %w", err)
	}

	var docXML io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("open document.xml: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("no document.xml in DOCX archive")
	}
	defer docXML.Close()

	return collectOOXMLText(docXML)
}

// collectOOXMLText walks the WordprocessingML token stream; text lives in
// <w:t> elements and paragraphs end at </w:p>.
func collectOOXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var builder strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}
	return builder.String(), nil
}

// Sanitize strips HTML-ish tags and collapses all whitespace runs into single
// spaces, mirroring what the web client does to pasted text.
func Sanitize(text string) string {
	withoutTags := htmlTagRe.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(withoutTags, " "))
}
