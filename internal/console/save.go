package console

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	fullTimestampLayout  = "2006-01-02 15:04:05.000"
	shortTimestampLayout = "15:04:05"

	saveSuffix = "_log.html"
)

// Save writes the document verbatim to a new file named after the current
// time and returns its path. A failure is logged and leaves the document as is.
func (c *Console) Save() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked()
}

func (c *Console) saveLocked() (string, error) {
	path := filepath.Join(c.saveDir, SaveFileName(c.now()))
	if err := c.fs.MkdirAll(c.saveDir, 0o755); err != nil {
		c.logger.Error("save console log failed", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("create save dir: %w", err)
	}
	if err := afero.WriteFile(c.fs, path, []byte(c.doc.String()), 0o644); err != nil {
		c.logger.Error("save console log failed", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("save log: %w", err)
	}
	c.logger.Info("console log saved", zap.String("path", path), zap.Int("bytes", c.doc.Len()))
	if c.onSave != nil {
		c.onSave(path)
	}
	return path, nil
}

// SaveFileName returns the file name used for a log saved at t, for example
// 2024-03-09_14-05-07.042_log.html.
func SaveFileName(t time.Time) string {
	stamp := t.Format(fullTimestampLayout)
	stamp = strings.ReplaceAll(stamp, " ", "_")
	stamp = strings.ReplaceAll(stamp, ":", "-")
	return stamp + saveSuffix
}
