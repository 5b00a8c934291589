// -----------------------------------------------------------------------
// Attribute extraction - pattern searches over flattened invoice PDF text
// Pure functions: text in, partial attribute record out
// -----------------------------------------------------------------------

package extract

import (
	"regexp"
	"strings"

	"github.com/ternarybob/archivo/internal/models"
)

// Label patterns as printed on SUNAT-style invoices. First match wins; a
// missing label leaves the field empty, it is never an error.
var (
	taxIDPattern     = regexp.MustCompile(`RUC:\s*(\d+)`)
	recipientPattern = regexp.MustCompile(`Señor(?:\(es\))?\s*:\s*(.+)`)
	issueDatePattern = regexp.MustCompile(`Fecha de Emisión\s*:\s*(\d{2}/\d{2}/\d{4})`)
)

// AttributesFromText applies the three independent pattern searches against
// the concatenated page text of one invoice PDF. Description is never
// populated here; it comes from the companion XML.
func AttributesFromText(text string) models.InvoiceAttributes {
	var attrs models.InvoiceAttributes

	if m := taxIDPattern.FindStringSubmatch(text); m != nil {
		attrs.TaxID = m[1]
	}

	if m := recipientPattern.FindStringSubmatch(text); m != nil {
		// Remainder of the line after the colon, trimmed
		attrs.Recipient = strings.TrimSpace(m[1])
	}

	if m := issueDatePattern.FindStringSubmatch(text); m != nil {
		attrs.IssueDate = m[1]
	}

	return attrs
}
