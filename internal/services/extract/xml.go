package extract

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DescriptionFromXML parses the stream as XML and returns the trimmed text
// content of the first element whose local name is "Description", regardless
// of namespace prefix or URI (UBL invoices use cbc:Description, other
// issuers bind other prefixes). Returns "" when no such element
// exists or its text is empty. Malformed XML is an error, contained by the
// caller at attachment granularity.
func DescriptionFromXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("malformed xml: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Description" {
			continue
		}

		// Collects character data including CDATA sections
		var content string
		if err := dec.DecodeElement(&content, &se); err != nil {
			return "", fmt.Errorf("malformed xml: %w", err)
		}
		return strings.TrimSpace(content), nil
	}
}
