package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// DescriptionFromZip opens the bytes as a ZIP archive and inspects its first
// member (in archive order) whose name ends in ".xml", case-insensitive. That
// member alone decides the result: once it has been fully inspected the
// remaining members are never visited, even when it yielded no description.
// Members are read in memory, so the scoped extraction artifact is released
// when the member reader closes.
func DescriptionFromZip(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open zip archive: %w", err)
	}

	for _, member := range zr.File {
		if !strings.HasSuffix(strings.ToLower(member.Name), ".xml") {
			continue
		}

		rc, err := member.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open zip member %s: %w", member.Name, err)
		}
		desc, err := descriptionFromZipMember(rc)
		if err != nil {
			return "", fmt.Errorf("zip member %s: %w", member.Name, err)
		}
		return desc, nil
	}

	return "", nil
}

func descriptionFromZipMember(rc io.ReadCloser) (string, error) {
	defer rc.Close()
	return DescriptionFromXML(rc)
}
