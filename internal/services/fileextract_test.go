package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_TXT(t *testing.T) {
	svc := NewFileExtractService()

	text, err := svc.ExtractText("notes.txt", []byte("  first line  \r\n\r\n\r\n\r\nsecond line\n"))
	require.NoError(t, err)
	assert.Equal(t, "first line\n\nsecond line", text)
}

func TestExtractText_DOCX(t *testing.T) {
	doc := buildDOCX(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Hello &amp; welcome</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Line</w:t><w:br/><w:t>break</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := NewFileExtractService().ExtractText("Report.DOCX", doc)
	require.NoError(t, err)
	assert.Equal(t, "Hello & welcome\nLine\nbreak", text)
}

func TestExtractText_DOCXWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.Create("other.xml")
	zw.Close()

	_, err := NewFileExtractService().ExtractText("a.docx", buf.Bytes())
	assert.Error(t, err)
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := NewFileExtractService().ExtractText("slides.pptx", []byte("x"))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), ".pptx")
}

func TestExtractText_EmptyFile(t *testing.T) {
	_, err := NewFileExtractService().ExtractText("empty.txt", []byte("  \n\n "))

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := NewFileExtractService().ExtractText("broken.pdf", []byte("definitely not a pdf"))
	assert.Error(t, err)
}

func TestSupportedExtension(t *testing.T) {
	assert.True(t, SupportedExtension("a.pdf"))
	assert.True(t, SupportedExtension("b.DOCX"))
	assert.True(t, SupportedExtension("c.txt"))
	assert.True(t, SupportedExtension("d.md"))
	assert.False(t, SupportedExtension("e.exe"))
	assert.False(t, SupportedExtension("noext"))
}
