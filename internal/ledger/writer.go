// Package ledger persists confirmed receipt records: one row appended to a
// CSV file plus a plain-text sidecar holding the raw OCR output.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hyeonwoo/receipt-ledger/internal/fileutils"
	"hyeonwoo/receipt-ledger/internal/logging"
	"hyeonwoo/receipt-ledger/internal/models"

	"github.com/gocarina/gocsv"
)

// Writer appends confirmed drafts to the ledger CSV. A single writer mutex
// serializes appends so concurrent persists never interleave partial rows.
type Writer struct {
	mu         sync.Mutex
	ledgerPath string
	dataDir    string
	uploadDir  string
	logger     logging.Logger
}

// NewWriter prepares the data directories and creates the ledger CSV with its
// header row when the file does not exist yet.
func NewWriter(dataDir string, logger logging.Logger) (*Writer, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	w := &Writer{
		ledgerPath: filepath.Join(dataDir, "labels.csv"),
		dataDir:    dataDir,
		uploadDir:  filepath.Join(dataDir, "uploads"),
		logger:     logger,
	}

	if err := fileutils.EnsureDirectoryExists(w.uploadDir); err != nil {
		return nil, err
	}
	if err := w.ensureHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

// LedgerPath returns the location of the ledger CSV.
func (w *Writer) LedgerPath() string {
	return w.ledgerPath
}

// SidecarPath returns where the raw OCR text for a draft id is stored.
func (w *Writer) SidecarPath(id string) string {
	return filepath.Join(w.dataDir, id+".txt")
}

// SaveImage stores uploaded image bytes under the draft id, preserving the
// original extension and defaulting to .jpg when there is none. It returns
// the stored filename.
func (w *Writer) SaveImage(id, originalName string, data []byte) (string, error) {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".jpg"
	}
	filename := id + ext
	if err := fileutils.WriteFile(filepath.Join(w.uploadDir, filename), data, 0o640); err != nil {
		return "", fmt.Errorf("error saving image: %w", err)
	}
	return filename, nil
}

// ImagePath returns the on-disk location of a stored image filename.
func (w *Writer) ImagePath(filename string) string {
	return filepath.Join(w.uploadDir, filename)
}

// Persist writes the draft's raw OCR sidecar and appends one ledger row.
// Absent amount and timestamp become empty fields. The row append holds the
// writer lock for its full duration, so each row lands as one unit.
func (w *Writer) Persist(draft *models.Draft) error {
	sidecar := w.SidecarPath(draft.ID)
	if err := fileutils.WriteFile(sidecar, []byte(draft.OCRText), 0o640); err != nil {
		return fmt.Errorf("error writing OCR sidecar: %w", err)
	}

	row := models.LedgerRow{
		ID:          draft.ID,
		Filename:    draft.Filename,
		Category:    draft.Category,
		Amount:      models.FormatAmount(draft.Amount),
		DateTime:    models.FormatWhen(draft.When),
		OCRTextPath: sidecar,
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	file, err := os.OpenFile(w.ledgerPath, os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("error opening ledger: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close ledger file")
		}
	}()

	rows := []models.LedgerRow{row}
	if err := gocsv.MarshalWithoutHeaders(&rows, file); err != nil {
		return fmt.Errorf("error appending ledger row: %w", err)
	}

	w.logger.WithFields(
		logging.Field{Key: "id", Value: draft.ID},
		logging.Field{Key: "category", Value: draft.Category},
	).Info("Persisted ledger row")
	return nil
}

// ensureHeader creates the ledger CSV with only its header row when absent.
func (w *Writer) ensureHeader() error {
	if fileutils.FileExists(w.ledgerPath) {
		return nil
	}

	file, err := os.Create(w.ledgerPath)
	if err != nil {
		return fmt.Errorf("error creating ledger: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close ledger file")
		}
	}()

	empty := []models.LedgerRow{}
	if err := gocsv.Marshal(&empty, file); err != nil {
		return fmt.Errorf("error writing ledger header: %w", err)
	}
	return nil
}
