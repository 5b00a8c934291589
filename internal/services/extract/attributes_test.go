package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributesFromText(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantTaxID     string
		wantRecipient string
		wantIssueDate string
	}{
		{
			name: "All Attributes Present",
			text: "FACTURA ELECTRÓNICA\nRUC: 20100070970\nSeñor(es) : Acme Trading S.A.C.  \nFecha de Emisión : 13/08/2024\nTotal: 1,250.00",
			wantTaxID:     "20100070970",
			wantRecipient: "Acme Trading S.A.C.",
			wantIssueDate: "13/08/2024",
		},
		{
			name: "Label Without Parenthetical Suffix",
			text: "Señor : Comercial Lima E.I.R.L.\n",
			wantRecipient: "Comercial Lima E.I.R.L.",
		},
		{
			name: "No Labels",
			text: "Totally unrelated document text",
		},
		{
			name:      "First RUC Wins",
			text:      "RUC: 11111111111\nRUC: 22222222222",
			wantTaxID: "11111111111",
		},
		{
			name: "Date Must Match Format",
			text: "Fecha de Emisión : 5/8/2024",
		},
		{
			name: "Empty Text",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := AttributesFromText(tt.text)
			assert.Equal(t, tt.wantTaxID, attrs.TaxID)
			assert.Equal(t, tt.wantRecipient, attrs.Recipient)
			assert.Equal(t, tt.wantIssueDate, attrs.IssueDate)
			// Description never comes from PDF text
			assert.Empty(t, attrs.Description)
		})
	}
}

func TestAttributesFromText_RecipientStopsAtLineEnd(t *testing.T) {
	text := "Señor(es): Distribuidora Andina S.A.\nDirección: Av. Arequipa 1234"
	attrs := AttributesFromText(text)
	assert.Equal(t, "Distribuidora Andina S.A.", attrs.Recipient)
}
