package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

// invoicePDF renders a minimal invoice-shaped PDF for extraction tests,
// avoiding binary fixtures in the repo.
func invoicePDF(t *testing.T, lines []string) []byte {
	t.Helper()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range lines {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestTextExtractor_InvoiceRoundtrip(t *testing.T) {
	extractor := NewTextExtractor(arbor.NewLogger(), t.TempDir())

	pdfBytes := invoicePDF(t, []string{
		"FACTURA ELECTRÓNICA",
		"RUC: 20100070970",
		"Señor(es) : Acme Trading S.A.C.",
		"Fecha de Emisión : 13/08/2024",
	})

	text, err := extractor.TextFromBytes(pdfBytes)
	require.NoError(t, err)
	require.NotEmpty(t, text)

	attrs := AttributesFromText(text)
	assert.Equal(t, "20100070970", attrs.TaxID)
	assert.Equal(t, "Acme Trading S.A.C.", attrs.Recipient)
	assert.Equal(t, "13/08/2024", attrs.IssueDate)
	assert.Empty(t, attrs.Description)
}

func TestTextExtractor_MultiPageOrder(t *testing.T) {
	extractor := NewTextExtractor(arbor.NewLogger(), t.TempDir())

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 10)
	pdf.AddPage()
	pdf.Cell(0, 6, "pagina uno")
	pdf.AddPage()
	pdf.Cell(0, 6, "RUC: 10456789012")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))

	text, err := extractor.TextFromBytes(buf.Bytes())
	require.NoError(t, err)

	// Pages concatenate in document order, so the label on page two is found
	attrs := AttributesFromText(text)
	assert.Equal(t, "10456789012", attrs.TaxID)
	assert.Less(t, indexOf(text, "pagina uno"), indexOf(text, "RUC:"))
}

func TestTextExtractor_NotAPDF(t *testing.T) {
	extractor := NewTextExtractor(arbor.NewLogger(), t.TempDir())

	path := filepath.Join(t.TempDir(), "bogus.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0644))

	_, err := extractor.TextFromFile(path)
	assert.Error(t, err)
}

func indexOf(s, sub string) int {
	return bytes.Index([]byte(s), []byte(sub))
}
