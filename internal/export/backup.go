package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mmynk/fairsplit/internal/models"
)

// Backup is the downloadable JSON form of a bill.
type Backup struct {
	models.BillRecord
	Timestamp string `json:"timestamp"`
}

// WriteBackup writes bill to w as indented JSON, stamped with now.
func WriteBackup(w io.Writer, bill *models.Bill, now time.Time) error {
	backup := Backup{
		BillRecord: models.ToRecord(bill),
		Timestamp:  now.UTC().Format(time.RFC3339),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ReadBackup parses a backup written by WriteBackup, or any bare bill record,
// and rebuilds the bill from it.
func ReadBackup(r io.Reader) (*models.Bill, error) {
	var backup Backup
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	return models.FromRecord(backup.BillRecord), nil
}

// BackupFilename is the download name for a backup produced on now.
func BackupFilename(now time.Time) string {
	return "fairsplit-backup-" + now.UTC().Format(time.DateOnly) + ".json"
}
