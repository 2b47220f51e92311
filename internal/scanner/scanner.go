// Package scanner lists and watches the photo folders handed to the
// pipeline. Only image files are reported; everything else in a site
// folder (cache databases, exports, notes) is ignored.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/genba-labs/shashin-cli/internal/logger"
)

// ImageInfo describes one image file found in a scan.
type ImageInfo struct {
	// Path is the absolute or caller-relative file path.
	Path string

	// FileName is the base name, the record key used downstream.
	FileName string

	// Size is the file size in bytes.
	Size int64

	// ModTime is the file modification time.
	ModTime time.Time
}

// imageExtensions are the photo formats site cameras produce.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".heic": {},
}

// IsImageFile reports whether name has a recognised image extension,
// case-insensitively.
func IsImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := imageExtensions[ext]
	return ok
}

// Scan returns the image files directly inside dir, sorted by file
// name. Subdirectories are not descended: one folder is one batch.
func Scan(dir string) ([]ImageInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading photo folder: %w", err)
	}

	var images []ImageInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logger.Warn("skipping %s: %v", entry.Name(), err)
			continue
		}

		images = append(images, ImageInfo{
			Path:     filepath.Join(dir, entry.Name()),
			FileName: entry.Name(),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].FileName < images[j].FileName
	})
	return images, nil
}

// Watch emits the path of every image file created in dir until ctx is
// done. The events channel is not closed by Watch; ownership stays
// with the caller.
func Watch(ctx context.Context, dir string, events chan<- string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating folder watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("watching %s for new photos", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && IsImageFile(event.Name) {
				select {
				case events <- event.Name:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}
