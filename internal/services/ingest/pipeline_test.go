package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/archivo/internal/models"
)

type fakeSource struct {
	messages []models.MailMessage
	err      error
}

func (f *fakeSource) FetchMessages(_ context.Context, _, _ time.Time) ([]models.MailMessage, error) {
	return f.messages, f.err
}

type fakeStorage struct {
	saved  []*models.Document
	blobs  [][]byte
	failOn map[string]error // keyed by document filename
}

func (f *fakeStorage) SaveDocumentWithBlob(doc *models.Document, pdf []byte) error {
	if err, ok := f.failOn[doc.Filename]; ok {
		return err
	}
	doc.BlobKey = "blob_test"
	doc.CreatedAt = time.Now()
	f.saved = append(f.saved, doc)
	f.blobs = append(f.blobs, pdf)
	return nil
}

func (f *fakeStorage) GetDocument(string) (*models.Document, error)           { return nil, nil }
func (f *fakeStorage) GetBlob(string) ([]byte, error)                         { return nil, nil }
func (f *fakeStorage) Search(*models.DocumentFilter) ([]*models.Document, error) { return nil, nil }
func (f *fakeStorage) CountDocuments() (int, error)                           { return len(f.saved), nil }

func testPipeline(t *testing.T, source *fakeSource, storage *fakeStorage) *Pipeline {
	t.Helper()
	logger := arbor.NewLogger()
	pdf := &stubPDFReader{byPayload: map[string]string{
		"pdf-1": invoiceText("20100070970", "Acme", "27/09/2024"),
	}}
	return NewPipeline(source, storage, NewProcessor(pdf, logger, t.TempDir(), time.Second), logger)
}

func pdfMessage(subject string, received time.Time) models.MailMessage {
	return models.MailMessage{
		Subject:    subject,
		ReceivedAt: received,
		Attachments: []models.Attachment{
			{Filename: "factura.pdf", Data: []byte("pdf-1")},
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestPipeline_WindowIsInclusiveByDay(t *testing.T) {
	lima := time.FixedZone("-05", -5*3600)
	source := &fakeSource{messages: []models.MailMessage{
		pdfMessage("dentro inicio", time.Date(2024, 9, 22, 0, 15, 0, 0, lima)),
		pdfMessage("dentro fin", time.Date(2024, 9, 27, 23, 59, 0, 0, lima)),
		pdfMessage("fuera despues", time.Date(2024, 9, 28, 10, 0, 0, 0, lima)),
		pdfMessage("fuera antes", time.Date(2024, 9, 21, 23, 59, 0, 0, lima)),
	}}
	storage := &fakeStorage{}

	summary, err := testPipeline(t, source, storage).Run(context.Background(), day(2024, 9, 22), day(2024, 9, 27))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Matched)
	assert.Equal(t, 2, summary.Stored)
	assert.Equal(t, 0, summary.WithoutPDF)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, storage.saved, 2)
	assert.Equal(t, "dentro inicio", storage.saved[0].Subject)
	assert.Equal(t, "dentro fin", storage.saved[1].Subject)
}

func TestPipeline_TimezoneStrippedBeforeComparison(t *testing.T) {
	// 23:30 on the 27th in UTC+14 is the 27th by wall clock, even though the
	// same instant is the 27th 09:30 UTC. The wall-clock day is what counts.
	east := time.FixedZone("+14", 14*3600)
	source := &fakeSource{messages: []models.MailMessage{
		pdfMessage("borde", time.Date(2024, 9, 27, 23, 30, 0, 0, east)),
	}}
	storage := &fakeStorage{}

	summary, err := testPipeline(t, source, storage).Run(context.Background(), day(2024, 9, 27), day(2024, 9, 27))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Matched)
	require.Len(t, storage.saved, 1)
	assert.Equal(t, 27, storage.saved[0].ReceivedAt.Day())
	assert.Equal(t, time.Local, storage.saved[0].ReceivedAt.Location())
}

func TestPipeline_SummaryDistinguishesOutcomes(t *testing.T) {
	noPDF := models.MailMessage{
		Subject:    "sin adjunto",
		ReceivedAt: day(2024, 9, 25),
		Attachments: []models.Attachment{
			{Filename: "nota.txt", Data: []byte("hola")},
		},
	}
	failing := pdfMessage("falla almacen", day(2024, 9, 25))
	source := &fakeSource{messages: []models.MailMessage{
		pdfMessage("ok", day(2024, 9, 25)),
		noPDF,
		failing,
	}}
	// Both PDF messages share the filename, so both storage writes fail
	storage := &fakeStorage{failOn: map[string]error{
		"factura.pdf": errors.New("disk full"),
	}}

	summary, err := testPipeline(t, source, storage).Run(context.Background(), day(2024, 9, 25), day(2024, 9, 25))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Matched)
	assert.Equal(t, 0, summary.Stored)
	assert.Equal(t, 1, summary.WithoutPDF)
	assert.Equal(t, 2, summary.Failed)
}

func TestPipeline_SourceErrorIsFatal(t *testing.T) {
	source := &fakeSource{err: errors.New("imap: connection refused")}
	_, err := testPipeline(t, source, &fakeStorage{}).Run(context.Background(), day(2024, 9, 25), day(2024, 9, 25))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch messages")
}

func TestPipeline_RerunArchivesDuplicates(t *testing.T) {
	source := &fakeSource{messages: []models.MailMessage{
		pdfMessage("repetida", day(2024, 9, 25)),
	}}
	storage := &fakeStorage{}
	p := testPipeline(t, source, storage)

	for i := 0; i < 2; i++ {
		summary, err := p.Run(context.Background(), day(2024, 9, 25), day(2024, 9, 25))
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Stored)
	}
	// Write-once storage with no dedup: same message twice, two documents
	require.Len(t, storage.saved, 2)
	assert.NotEqual(t, storage.saved[0].ID, storage.saved[1].ID)
}

func TestPipeline_EmptyMailbox(t *testing.T) {
	summary, err := testPipeline(t, &fakeSource{}, &fakeStorage{}).Run(context.Background(), day(2024, 9, 25), day(2024, 9, 25))
	require.NoError(t, err)
	assert.Equal(t, &models.IngestSummary{}, summary)
}
