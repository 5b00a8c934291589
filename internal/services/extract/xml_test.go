package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionFromXML(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		want    string
		wantErr bool
	}{
		{
			name: "Namespaced Description With CDATA",
			xml: `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>F001-123</cbc:ID>
  <InvoiceLine>
    <cbc:Description><![CDATA[  Venta de bienes  ]]></cbc:Description>
  </InvoiceLine>
</Invoice>`,
			want: "Venta de bienes",
		},
		{
			name: "Unprefixed Description",
			xml:  `<doc><Description>Servicio de transporte</Description></doc>`,
			want: "Servicio de transporte",
		},
		{
			name: "First Description Wins",
			xml:  `<doc><Description>primera</Description><Description>segunda</Description></doc>`,
			want: "primera",
		},
		{
			name: "No Description Element",
			xml:  `<doc><Detail>sin descripcion</Detail></doc>`,
			want: "",
		},
		{
			name: "Empty Description Element",
			xml:  `<doc><Description>   </Description></doc>`,
			want: "",
		},
		{
			name:    "Malformed XML",
			xml:     `this is not xml at all`,
			wantErr: true,
		},
		{
			name:    "Truncated XML",
			xml:     `<doc><Description>Venta`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DescriptionFromXML(strings.NewReader(tt.xml))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptionFromXML_EmptyStream(t *testing.T) {
	// An empty stream has no Description element and is not treated as malformed
	got, err := DescriptionFromXML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
