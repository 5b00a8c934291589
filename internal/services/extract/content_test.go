package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextFromContentStream(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "Single Tj",
			content: "BT /F1 9 Tf 10 700 Td (RUC: 20100070970) Tj ET",
			want:    "RUC: 20100070970\n",
		},
		{
			name:    "Lines Split On Td",
			content: "BT 10 700 Td (linea uno) Tj 0 -12 Td (linea dos) Tj ET",
			want:    "linea uno\nlinea dos\n",
		},
		{
			name:    "TJ Array Concatenates",
			content: "BT 10 700 Td [(Fec)-12(ha de Emisi)8(\\363n : 13/08/2024)] TJ ET",
			want:    "Fecha de Emisión : 13/08/2024\n",
		},
		{
			name:    "Escaped Parentheses",
			content: `BT 10 700 Td (Se\361or\(es\) : Acme S.A.C.) Tj ET`,
			want:    "Señor(es) : Acme S.A.C.\n",
		},
		{
			name:    "Hex String",
			content: "BT 10 700 Td <52554320> Tj (ok) Tj ET",
			want:    "RUC ok\n",
		},
		{
			name:    "Quote Operator Breaks Line",
			content: "BT 10 700 Td (uno ) Tj (dos) ' ET",
			want:    "uno dos\n",
		},
		{
			name:    "No Text Operators",
			content: "q 1 0 0 1 0 0 cm 0 0 100 100 re f Q",
			want:    "",
		},
		{
			name:    "Comment Skipped",
			content: "% comment with (fake string)\nBT 10 700 Td (real) Tj ET",
			want:    "real\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textFromContentStream([]byte(tt.content))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextFromContentStream_FeedsAttributeSearch(t *testing.T) {
	content := "BT /F1 9 Tf " +
		"10 700 Td (RUC: 20600055519) Tj " +
		`0 -12 Td (Se\361or\(es\) : Transportes del Sur S.R.L.) Tj ` +
		"0 -12 Td (Fecha de Emisi\\363n : 05/09/2024) Tj ET"

	attrs := AttributesFromText(textFromContentStream([]byte(content)))
	assert.Equal(t, "20600055519", attrs.TaxID)
	assert.Equal(t, "Transportes del Sur S.R.L.", attrs.Recipient)
	assert.Equal(t, "05/09/2024", attrs.IssueDate)
}
