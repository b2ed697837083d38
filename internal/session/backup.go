package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bashup/dotenv/internal/envfile"
	"github.com/bashup/dotenv/internal/logger"
	"github.com/bashup/dotenv/internal/paths"
)

// backupFile copies the current image content into the state-dir backups
// folder under a timestamped name, then prunes backups older than keepDays.
// An image for a file that doesn't exist yet has nothing to back up.
func backupFile(ctx context.Context, current *envfile.File, keepDays int) error {
	if _, err := os.Stat(current.Path); os.IsNotExist(err) {
		return nil
	}

	backupsDir := paths.GetBackupsDir()
	if err := os.MkdirAll(backupsDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", backupsDir, err)
	}

	stamp := time.Now().Format("20060102.15.04.05")
	name := fmt.Sprintf("%s.%s", filepath.Base(current.Path), stamp)
	dst := filepath.Join(backupsDir, name)

	logger.Info(ctx, "Copying '{{_File_}}%s{{|-|}}' to '{{_File_}}%s{{|-|}}'.", current.Path, dst)
	if err := os.WriteFile(dst, []byte(current.Text()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}

	pruneOldBackups(ctx, backupsDir, keepDays)
	return nil
}

func pruneOldBackups(ctx context.Context, backupsDir string, keepDays int) {
	if keepDays <= 0 {
		return
	}
	entries, err := os.ReadDir(backupsDir)
	if err != nil {
		return
	}

	threshold := time.Now().AddDate(0, 0, -keepDays)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(threshold) {
			logger.Debug(ctx, "Removing old backup '{{_File_}}%s{{|-|}}'.", e.Name())
			_ = os.Remove(filepath.Join(backupsDir, e.Name()))
		}
	}
}
