package progress

import (
	"os"

	json "github.com/goccy/go-json"

	"mindbloom/internal/models"
	"mindbloom/internal/progress/interfaces"
	"mindbloom/internal/providers"
)

const archiveVersion = 1

// SnapshotManager persists the report history to a compressed archive
// file and restores it at boot. Snapshots are write-once history; the
// aggregation path never consults them.
type SnapshotManager struct {
	history    *History
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewSnapshotManager(compressor interfaces.CompressorInterface, history *History, logger providers.Logger) *SnapshotManager {
	return &SnapshotManager{
		compressor: compressor,
		history:    history,
		logger:     logger,
	}
}

func (s *SnapshotManager) SaveToFile(fileName string) error {
	archive := models.ReportArchive{
		Version: archiveVersion,
		Reports: s.history.Reports(),
	}

	jsonData, err := json.Marshal(archive)
	if err != nil {
		return err
	}
	data, err := s.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (s *SnapshotManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := s.compressor.Decompress(data)
	if err != nil {
		// Archives written before compression was introduced are
		// plain JSON; fall back to reading the raw bytes.
		s.logger.Warnf(providers.TypeApp, "Snapshot not compressed, trying plain JSON")
		decompressed = data
	}

	var archive models.ReportArchive
	if err := json.Unmarshal(decompressed, &archive); err != nil {
		return err
	}
	s.history.Put(archive.Reports)
	return nil
}
