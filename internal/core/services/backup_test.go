package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/typedstore/internal/core/domain"
)

func writeBackups(t *testing.T, filePath string, times ...time.Time) []string {
	t.Helper()
	paths := make([]string, 0, len(times))
	for _, ts := range times {
		p := domain.BackupPath(filePath, ts)
		require.NoError(t, os.WriteFile(p, []byte("{}"), 0600))
		paths = append(paths, p)
	}
	return paths
}

func TestBackupService_List_NewestFirst(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "settings.json")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	paths := writeBackups(t, filePath, base, base.Add(2*time.Hour), base.Add(time.Hour))

	// Files that are not backups of settings.json are ignored.
	require.NoError(t, os.WriteFile(filePath, []byte("{}"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history-2024-01-01-00-00-00-0000000.json"), nil, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings_version.txt"), []byte("v1.0.0"), 0600))

	backups, err := NewBackupService(time.UTC).List(filePath)

	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, paths[1], backups[0].Path)
	assert.Equal(t, paths[2], backups[1].Path)
	assert.Equal(t, paths[0], backups[2].Path)
	assert.Equal(t, int64(2), backups[0].Size)
	assert.True(t, base.Add(2*time.Hour).Equal(backups[0].CreatedAt))
}

func TestBackupService_List_MissingDirectory(t *testing.T) {
	backups, err := NewBackupService(nil).List(filepath.Join(t.TempDir(), "missing", "settings.json"))

	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestBackupService_Prune(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "settings.json")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	paths := writeBackups(t, filePath, base, base.Add(time.Minute), base.Add(2*time.Minute), base.Add(3*time.Minute))
	svc := NewBackupService(time.UTC)

	removed, err := svc.Prune(filePath, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	remaining, err := svc.List(filePath)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, paths[3], remaining[0].Path)
	assert.Equal(t, paths[2], remaining[1].Path)
}

func TestBackupService_Prune_KeepAll(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "settings.json")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeBackups(t, filePath, base, base.Add(time.Second))
	svc := NewBackupService(time.UTC)

	tests := []struct {
		name string
		keep int
	}{
		{"zero keeps everything", 0},
		{"negative keeps everything", -1},
		{"more than present", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			removed, err := svc.Prune(filePath, tt.keep)
			require.NoError(t, err)
			assert.Equal(t, 0, removed)
		})
	}

	remaining, err := svc.List(filePath)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestBackupService_ListsStorageBackups(t *testing.T) {
	f := newStorageFixture(t)
	s := f.storage()

	f.write(t, "{bad")
	_, err := s.Load()
	require.NoError(t, err)
	f.write(t, "")
	_, err = s.Load()
	require.NoError(t, err)

	backups, err := NewBackupService(time.Local).List(f.path)

	require.NoError(t, err)
	assert.Len(t, backups, 2)
}
