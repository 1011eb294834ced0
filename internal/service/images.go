package service

import (
	"archive/zip"
	"bytes"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultExportWorkers = 6
	exportSize           = "original"
)

// ImageService exports every image of an item into a zip archive
type ImageService struct {
	details domain.DetailRepository
	images  domain.ImageRepository
	workers int
	logger  *slog.Logger
}

// NewImageService creates an image exporter. workers <= 0 selects the default.
func NewImageService(details domain.DetailRepository, images domain.ImageRepository, workers int, logger *slog.Logger) *ImageService {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = defaultExportWorkers
	}
	return &ImageService{details: details, images: images, workers: workers, logger: logger}
}

type download struct {
	index int
	name  string
	data  []byte
	err   error
}

// Export downloads all images of ref with a bounded worker pool and writes
// them to {dir}/{kind}-{id}-images.zip. Failed downloads are counted and
// skipped; the export only fails when nothing could be downloaded.
func (s *ImageService) Export(ctx context.Context, ref domain.ItemRef, dir string, progress domain.ProgressFunc) (domain.ExportResult, error) {
	result := domain.ExportResult{Ref: ref}

	images, err := s.details.Images(ctx, ref)
	if err != nil {
		return result, fmt.Errorf("failed to list images for %s: %w", ref, err)
	}
	if len(images) == 0 {
		result.Skipped = true
		return result, nil
	}

	total := len(images)
	var done atomic.Int32

	p := pool.NewWithResults[download]().WithMaxGoroutines(s.workers)
	for i, img := range images {
		p.Go(func() download {
			d := download{index: i, name: archiveName(i, img)}
			var buf bytes.Buffer
			url := s.images.ImageURL(img.FilePath, exportSize)
			if _, err := s.images.Download(ctx, url, &buf); err != nil {
				d.err = err
			} else {
				d.data = buf.Bytes()
			}
			if progress != nil {
				progress(int(done.Add(1)), total)
			}
			return d
		})
	}
	downloads := p.Wait()
	slices.SortFunc(downloads, func(a, b download) int { return cmp.Compare(a.index, b.index) })

	if err := ctx.Err(); err != nil {
		return result, err
	}

	var firstErr error
	for _, d := range downloads {
		if d.err != nil {
			result.Failed++
			if firstErr == nil {
				firstErr = d.err
			}
			s.logger.Warn("image download failed", "ref", ref.String(), "image", d.name, "error", d.err)
		}
	}
	if result.Failed == total {
		return result, fmt.Errorf("no images could be downloaded for %s: %w", ref, firstErr)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, err
	}
	result.Path = filepath.Join(dir, fmt.Sprintf("%s-%d-images.zip", ref.Kind, ref.ID))
	if err := writeArchive(result.Path, downloads); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", result.Path, err)
	}

	for _, d := range downloads {
		if d.err == nil {
			result.Images++
			result.Bytes += int64(len(d.data))
		}
	}
	s.logger.Info("exported images", "ref", ref.String(), "path", result.Path, "images", result.Images, "failed", result.Failed)
	return result, nil
}

// archiveName is {type}s/{nnn}{ext}, e.g. posters/003.jpg
func archiveName(i int, img domain.Image) string {
	ext := path.Ext(img.FilePath)
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%ss/%03d%s", img.Type, i+1, ext)
}

func writeArchive(dest string, downloads []download) error {
	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(f)
	for _, d := range downloads {
		if d.err != nil {
			continue
		}
		// Images are already compressed
		w, err := zw.CreateHeader(&zip.FileHeader{Name: d.name, Method: zip.Store})
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
		if _, err := w.Write(d.data); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}
