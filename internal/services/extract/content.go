package extract

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// textFromContentStream recovers the shown text from one decoded PDF page
// content stream. String arguments of the text-showing operators (Tj, TJ,
// ', ") are collected in stream order; the line-positioning operators
// (Td, TD, T*) and ET emit newlines so the result stays line-oriented for
// pattern searches. Strings of the standard fonts are WinAnsi encoded and
// are mapped to UTF-8.
func textFromContentStream(content []byte) string {
	var sb strings.Builder
	var line []byte

	flushLine := func() {
		if len(line) == 0 {
			return
		}
		sb.WriteString(decodeWinAnsi(line))
		sb.WriteByte('\n')
		line = line[:0]
	}

	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '%':
			// Comment runs to end of line
			for i < len(content) && content[i] != '\n' && content[i] != '\r' {
				i++
			}

		case c == '(':
			i = appendLiteralString(content, i, &line)

		case c == '<':
			if i+1 < len(content) && content[i+1] == '<' {
				i += 2 // Dictionary open, contents tokenize normally
			} else {
				i = appendHexString(content, i, &line)
			}

		case c == '\'' || c == '"':
			// Show-with-newline operators; the string argument was already
			// collected, the line break belongs after it
			flushLine()
			i++

		case isOperatorByte(c):
			start := i
			for i < len(content) && isOperatorByte(content[i]) {
				i++
			}
			switch string(content[start:i]) {
			case "Td", "TD", "T*", "ET":
				flushLine()
			}

		default:
			i++
		}
	}
	flushLine()

	return sb.String()
}

func isOperatorByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '*'
}

// appendLiteralString consumes a ( ... ) string starting at content[i] and
// appends its unescaped bytes to line. Handles \-escapes, octal codes and
// balanced nested parentheses per the PDF string grammar.
func appendLiteralString(content []byte, i int, line *[]byte) int {
	i++ // opening paren
	depth := 1
	for i < len(content) {
		c := content[i]
		switch c {
		case '\\':
			i++
			if i >= len(content) {
				return i
			}
			switch e := content[i]; e {
			case 'n':
				*line = append(*line, '\n')
			case 'r':
				*line = append(*line, '\r')
			case 't':
				*line = append(*line, '\t')
			case 'b':
				*line = append(*line, '\b')
			case 'f':
				*line = append(*line, '\f')
			case '\n':
				// Line continuation
			case '\r':
				if i+1 < len(content) && content[i+1] == '\n' {
					i++
				}
			default:
				if e >= '0' && e <= '7' {
					val := 0
					for d := 0; d < 3 && i < len(content) && content[i] >= '0' && content[i] <= '7'; d++ {
						val = val*8 + int(content[i]-'0')
						i++
					}
					i--
					*line = append(*line, byte(val))
				} else {
					*line = append(*line, e)
				}
			}
			i++
		case '(':
			depth++
			*line = append(*line, c)
			i++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
			*line = append(*line, c)
			i++
		default:
			*line = append(*line, c)
			i++
		}
	}
	return i
}

// appendHexString consumes a < ... > hex string starting at content[i] and
// appends its decoded bytes to line. An odd trailing digit is padded with
// zero per the PDF grammar.
func appendHexString(content []byte, i int, line *[]byte) int {
	i++ // opening angle
	var hi byte
	haveHi := false
	for i < len(content) {
		c := content[i]
		if c == '>' {
			if haveHi {
				*line = append(*line, hi<<4)
			}
			return i + 1
		}
		v, ok := hexVal(c)
		if ok {
			if haveHi {
				*line = append(*line, hi<<4|v)
				haveHi = false
			} else {
				hi = v
				haveHi = true
			}
		}
		i++
	}
	return i
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// decodeWinAnsi maps WinAnsi (cp1252) string bytes to UTF-8
func decodeWinAnsi(b []byte) string {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}
