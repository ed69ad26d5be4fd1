package tui

import (
	"fmt"
	"image"
	"os"
	"strings"

	// Formats the daemon is known to capture.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImageInfo is the decoded "thumbnail" a terminal can actually show:
// format, dimensions, and size of the referenced image file.
type ImageInfo struct {
	Format    string
	Width     int
	Height    int
	SizeBytes int64
	Err       string
}

// Describe renders the info as a short annotation for a list row.
func (i ImageInfo) Describe() string {
	if i.Err != "" {
		return "[" + i.Err + "]"
	}
	return fmt.Sprintf("%s %dx%d, %s", strings.ToUpper(i.Format), i.Width, i.Height, formatSize(i.SizeBytes))
}

// imageInfo returns cached metadata for an image reference, decoding the
// header on a cache miss. Failures are cached too, so a broken file is not
// re-read on every frame.
func (m *Model) imageInfo(ref string) ImageInfo {
	if info, ok := m.thumbs.Get(ref); ok {
		return info
	}
	info := decodeImageInfo(ref)
	m.thumbs.Put(ref, info)
	return info
}

func decodeImageInfo(path string) ImageInfo {
	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{Err: "missing image"}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{Err: "unreadable image"}
	}

	var size int64
	if stat, err := f.Stat(); err == nil {
		size = stat.Size()
	}
	return ImageInfo{
		Format:    format,
		Width:     cfg.Width,
		Height:    cfg.Height,
		SizeBytes: size,
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
