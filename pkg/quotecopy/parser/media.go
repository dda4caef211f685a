package parser

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ukaji3/quotecopy/pkg/logger"
	"go.uber.org/zap"
)

// MediaDir is the package folder holding embedded images.
const MediaDir = "xl/media/"

// DefaultMediaExtensions are the image types carried over by ReinjectMedia.
var DefaultMediaExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".emf"}

// ListMedia returns the media entries of r whose extension is in exts.
func ListMedia(r *zip.Reader, exts []string) []string {
	var names []string
	for _, f := range r.File {
		if !strings.HasPrefix(f.Name, MediaDir) || strings.HasSuffix(f.Name, "/") {
			continue
		}
		ext := strings.ToLower(path.Ext(f.Name))
		for _, want := range exts {
			if ext == strings.ToLower(want) {
				names = append(names, f.Name)
				break
			}
		}
	}
	return names
}

// MediaResult reports what ReinjectMedia did.
type MediaResult struct {
	Detected   int
	Reinjected int
	Skipped    []string
}

// ReinjectMedia extracts the media entries of srcPath into a scratch
// directory under scratchRoot and appends them to the archive at dstPath
// under the same entry names. Existing destination entries are never
// modified, and names already present in the destination are skipped rather
// than duplicated. The scratch directory is always removed.
func ReinjectMedia(srcPath, dstPath, scratchRoot string, exts []string, log *zap.Logger) (MediaResult, error) {
	log = logger.OrNop(log)
	var res MediaResult

	src, err := zip.OpenReader(srcPath)
	if err != nil {
		return res, fmt.Errorf("open source archive: %w", err)
	}
	defer src.Close()

	media := ListMedia(&src.Reader, exts)
	res.Detected = len(media)
	log.Info("media fallback", zap.Int("detected", len(media)))
	if len(media) == 0 {
		return res, nil
	}

	if scratchRoot == "" {
		scratchRoot = os.TempDir()
	}
	scratch := filepath.Join(scratchRoot, "quotecopy-media-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return res, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			log.Warn("cannot remove scratch dir", zap.String("dir", scratch), zap.Error(err))
		}
	}()

	extracted := make(map[string]string, len(media))
	for _, name := range media {
		local, err := extractEntry(&src.Reader, name, scratch)
		if err != nil {
			return res, fmt.Errorf("extract %s: %w", name, err)
		}
		extracted[name] = local
		log.Debug("media extracted", zap.String("entry", name))
	}

	existing, err := entryNames(dstPath)
	if err != nil {
		return res, err
	}

	var toAppend []string
	for _, name := range media {
		if existing[name] {
			res.Skipped = append(res.Skipped, name)
			log.Debug("media already present in copy, not duplicating", zap.String("entry", name))
			continue
		}
		toAppend = append(toAppend, name)
	}
	if len(toAppend) == 0 {
		return res, nil
	}

	if err := appendEntries(dstPath, toAppend, extracted); err != nil {
		return res, err
	}
	res.Reinjected = len(toAppend)
	for _, name := range toAppend {
		log.Info("media reinjected", zap.String("entry", name))
	}
	return res, nil
}

func extractEntry(r *zip.Reader, name, dir string) (string, error) {
	f, err := r.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	local := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(name, MediaDir)))
	if err := os.MkdirAll(filepath.Dir(local), 0755); err != nil {
		return "", err
	}
	out, err := os.Create(local)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, f); err != nil {
		out.Close()
		return "", err
	}
	return local, out.Close()
}

func entryNames(archivePath string) (map[string]bool, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open destination archive: %w", err)
	}
	defer r.Close()

	names := make(map[string]bool, len(r.File))
	for _, f := range r.File {
		names[f.Name] = true
	}
	return names, nil
}

// appendEntries rewrites archivePath with every existing entry copied raw
// followed by the given files, then swaps it into place.
func appendEntries(archivePath string, names []string, files map[string]string) (err error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open destination archive: %w", err)
	}
	defer r.Close()

	tmp := archivePath + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(tmp)
		}
	}()

	w := zip.NewWriter(out)
	for _, f := range r.File {
		if err = w.Copy(f); err != nil {
			return fmt.Errorf("copy entry %s: %w", f.Name, err)
		}
	}
	for _, name := range names {
		if err = addFile(w, name, files[name]); err != nil {
			return fmt.Errorf("append %s: %w", name, err)
		}
	}
	if err = w.Close(); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	r.Close()
	return os.Rename(tmp, archivePath)
}

func addFile(w *zip.Writer, name, local string) error {
	in, err := os.Open(local)
	if err != nil {
		return err
	}
	defer in.Close()

	dst, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, in)
	return err
}
