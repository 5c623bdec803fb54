package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Feature prefixes name both the subdirectory and the file prefix of
// stored photos.
const (
	PhotoAvance     = "avance"
	PhotoAveria     = "averia"
	PhotoIncidencia = "incidencia"
	PhotoPrevencion = "prevencion"
	PhotoOrden      = "orden"
)

// PhotoStore writes uploaded photos to flat per-feature directories on
// local disk. A missing file on read is treated as "no photo", never an
// error.
type PhotoStore struct {
	BaseDir string
	Logger  *logrus.Logger
}

// NewPhotoStore creates the per-feature directories under baseDir.
func NewPhotoStore(baseDir string, logger *logrus.Logger) (*PhotoStore, error) {
	for _, prefix := range []string{PhotoAvance, PhotoAveria, PhotoIncidencia, PhotoPrevencion, PhotoOrden} {
		dir := filepath.Join(baseDir, prefix+"_fotos")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create photo directory %s: %w", dir, err)
		}
	}
	return &PhotoStore{BaseDir: baseDir, Logger: logger}, nil
}

// FileName builds the canonical photo name for a feature, user and moment:
// <prefix>_<userID>_<YYYYMMDD_HHMMSS>.jpg.
func FileName(prefix string, userID int64, at time.Time) string {
	return fmt.Sprintf("%s_%d_%s.jpg", prefix, userID, at.Format("20060102_150405"))
}

// Save writes photo bytes for a feature and returns the stored path.
func (s *PhotoStore) Save(prefix string, userID int64, data []byte) (string, error) {
	path := filepath.Join(s.BaseDir, prefix+"_fotos", FileName(prefix, userID, time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.Logger.WithFields(logrus.Fields{
			"path":  path,
			"error": err.Error(),
		}).Error("Failed to save photo")
		return "", fmt.Errorf("failed to save photo: %w", err)
	}

	s.Logger.WithField("path", path).Debug("Saved photo")
	return path, nil
}

// Open returns the photo bytes at a stored path, or (nil, false) when the
// file is gone.
func (s *PhotoStore) Open(path string) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.Logger.WithFields(logrus.Fields{
				"path":  path,
				"error": err.Error(),
			}).Warn("Failed to read stored photo")
		}
		return nil, false
	}
	return data, true
}
