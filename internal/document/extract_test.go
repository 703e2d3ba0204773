package document

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const resumeDocXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe, Senior Backend Engineer with eight years of experience.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Built distributed systems in Go</w:t></w:r><w:r><w:t> and operated them in production.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestExtractDOCX(t *testing.T) {
	extractor := NewExtractor(50, zerolog.Nop())

	text, err := extractor.Extract("resume.docx", buildDOCX(t, resumeDocXML))
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe, Senior Backend Engineer")
	assert.Contains(t, text, "Built distributed systems in Go and operated them in production.")
	assert.NotContains(t, text, "<w:t>")
	assert.NotContains(t, text, "\n", "whitespace collapsed to single spaces")
}

func TestExtractUnsupportedType(t *testing.T) {
	extractor := NewExtractor(50, zerolog.Nop())

	_, err := extractor.Extract("resume.txt", []byte("plain text resume"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = extractor.Extract("archive.zip", buildDOCX(t, resumeDocXML))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractInsufficientText(t *testing.T) {
	extractor := NewExtractor(50, zerolog.Nop())

	short := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>Too short.</w:t></w:r></w:p></w:body></w:document>`

	_, err := extractor.Extract("resume.docx", buildDOCX(t, short))
	assert.ErrorIs(t, err, ErrInsufficientText)
}

func TestExtractCorruptDOCX(t *testing.T) {
	extractor := NewExtractor(50, zerolog.Nop())

	_, err := extractor.Extract("resume.docx", []byte("not a zip archive"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractDOCXWithoutDocumentXML(t *testing.T) {
	extractor := NewExtractor(50, zerolog.Nop())

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<w:styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = extractor.Extract("resume.docx", buf.Bytes())
	assert.ErrorContains(t, err, "document.xml")
}

func TestExtractCorruptPDF(t *testing.T) {
	extractor := NewExtractor(50, zerolog.Nop())

	_, err := extractor.Extract("resume.pdf", []byte("%PDF-1.4 truncated garbage"))
	require.Error(t, err)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips tags",
			in:   "<p>Hello <b>world</b></p>",
			want: "Hello world",
		},
		{
			name: "collapses whitespace",
			in:   "one\t\ttwo\n\n\nthree    four",
			want: "one two three four",
		},
		{
			name: "trims edges",
			in:   "   padded   ",
			want: "padded",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "tags only",
			in:   "<div><span></span></div>",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}

	long := Sanitize(strings.Repeat("word ", 100))
	assert.Len(t, long, 499)
}
