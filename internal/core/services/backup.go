package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driving"
	"github.com/custodia-labs/typedstore/internal/logger"
)

// Ensure BackupService implements the interface.
var _ driving.BackupService = (*BackupService)(nil)

// BackupService lists and prunes the backups JSONStorage leaves next to its file.
// JSONStorage never removes backups itself; retention is the host's decision.
type BackupService struct {
	loc *time.Location
}

// NewBackupService creates a backup service. Backup timestamps are read in
// loc, which should match the clock the storage used; nil means time.Local.
func NewBackupService(loc *time.Location) *BackupService {
	if loc == nil {
		loc = time.Local
	}
	return &BackupService{loc: loc}
}

// List returns the backups of filePath, newest first.
func (s *BackupService) List(filePath string) ([]domain.Backup, error) {
	dir := filepath.Dir(filePath)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	stem := domain.FileStem(filePath)
	var backups []domain.Backup //nolint:prealloc // most entries are not backups
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		createdAt, ok := domain.ParseBackupName(stem, entry.Name(), s.loc)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		backups = append(backups, domain.Backup{
			Path:      filepath.Join(dir, entry.Name()),
			CreatedAt: createdAt,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Prune removes all but the newest keep backups of filePath.
func (s *BackupService) Prune(filePath string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	backups, err := s.List(filePath)
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	removed := 0
	for _, b := range backups[keep:] {
		if err := os.Remove(b.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("removing backup %s: %w", b.Path, err)
		}
		logger.Debug("Removed backup <%s>", b.Path)
		removed++
	}
	return removed, nil
}
