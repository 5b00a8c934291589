// -----------------------------------------------------------------------
// PDF text extraction - flat page text from invoice PDFs
// Uses pdfcpu for Go-native PDF processing
// -----------------------------------------------------------------------

package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
)

var contentPagePattern = regexp.MustCompile(`Content_page_(\d+)`)

// TextExtractor extracts flat text from PDF files via pdfcpu. Extraction goes
// through a scoped temp directory per call; artifacts are removed on every
// exit path.
type TextExtractor struct {
	logger  arbor.ILogger
	tempDir string
}

// NewTextExtractor creates a new PDF text extractor. tempDir is the staging
// root; empty selects the OS temp directory.
func NewTextExtractor(logger arbor.ILogger, tempDir string) *TextExtractor {
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "archivo-pdf")
	}
	os.MkdirAll(tempDir, 0755)

	return &TextExtractor{
		logger:  logger,
		tempDir: tempDir,
	}
}

// TextFromFile extracts the text of every page, concatenated in document
// order. The result is flat extracted text suitable for pattern searches;
// no layout reconstruction is attempted.
func (e *TextExtractor) TextFromFile(path string) (string, error) {
	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF context: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir, err := os.MkdirTemp(e.tempDir, "pages-")
	if err != nil {
		return "", fmt.Errorf("failed to create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	// Extracted content files carry the page number in their name
	files, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction dir: %w", err)
	}

	pageTexts := make(map[int]string)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		m := contentPagePattern.FindStringSubmatch(file.Name())
		if m == nil {
			continue
		}
		var pageNum int
		fmt.Sscanf(m[1], "%d", &pageNum)

		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			e.logger.Warn().Err(err).Str("file", file.Name()).Msg("Failed to read extracted page content")
			continue
		}
		pageTexts[pageNum] = textFromContentStream(content)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		if text, ok := pageTexts[pageNum]; ok {
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return builder.String(), nil
}

// TextFromBytes extracts text directly from PDF bytes without a prior staged
// file, via a scoped temp file.
func (e *TextExtractor) TextFromBytes(data []byte) (string, error) {
	tempFile, err := os.CreateTemp(e.tempDir, "direct-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp PDF file: %w", err)
	}
	path := tempFile.Name()
	defer os.Remove(path)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp PDF file: %w", err)
	}

	return e.TextFromFile(path)
}
