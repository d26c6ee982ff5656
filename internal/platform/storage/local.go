// Package storage is the flat public media tree. Uploads land in a staging
// directory first and are promoted into the public root with an atomic
// rename under a collision-free name. Callers only ever see root-relative
// web paths.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

type Store struct {
	log          *logger.Logger
	root         string
	staging      string
	publicPrefix string
}

// StagedFile is an accepted upload sitting in the staging directory,
// not yet part of the public tree.
type StagedFile struct {
	OriginalName string
	TempPath     string
	Size         int64
}

func New(baseLog *logger.Logger, root, publicPrefix string) (*Store, error) {
	staging := filepath.Join(root, ".staging")
	for _, dir := range []string{root, staging} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create media dir %s: %w", dir, err)
		}
	}
	prefix := "/" + strings.Trim(publicPrefix, "/")
	return &Store{
		log:          baseLog.With("service", "MediaStore"),
		root:         root,
		staging:      staging,
		publicPrefix: prefix,
	}, nil
}

// ErrUnreadable marks an upload whose multipart part cannot be opened.
// It separates a broken request from a staging write failure, which is
// this server's fault.
var ErrUnreadable = errors.New("unreadable upload")

// Stage copies an incoming multipart part into the staging directory.
func (s *Store) Stage(fh *multipart.FileHeader) (*StagedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file '%s': %w: %v", fh.Filename, ErrUnreadable, err)
	}
	defer src.Close()
	return s.StageReader(src, fh.Filename)
}

// StageReader writes r to a staging file, keeping the original extension.
func (s *Store) StageReader(r io.Reader, originalName string) (*StagedFile, error) {
	tempName := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	tempPath := filepath.Join(s.staging, tempName)

	dst, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("create staging file for '%s': %w", originalName, err)
	}
	size, err := io.Copy(dst, r)
	closeErr := dst.Close()
	if err != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("write staging file for '%s': %w", originalName, err)
	}
	if closeErr != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("close staging file for '%s': %w", originalName, closeErr)
	}
	return &StagedFile{OriginalName: originalName, TempPath: tempPath, Size: size}, nil
}

// Promote relocates a staged file into the public root. The rename is
// atomic because staging lives on the same filesystem as the root.
func (s *Store) Promote(f *StagedFile) (filename string, publicPath string, err error) {
	if f == nil || f.TempPath == "" {
		return "", "", fmt.Errorf("invalid staged file")
	}
	filename = s.uniqueName(f.OriginalName)
	target := filepath.Join(s.root, filename)
	if err := os.Rename(f.TempPath, target); err != nil {
		return "", "", fmt.Errorf("failed to move uploaded file '%s': %w", f.OriginalName, err)
	}
	return filename, path.Join(s.publicPrefix, filename), nil
}

// Discard drops a staged file that will not be promoted.
func (s *Store) Discard(f *StagedFile) {
	if f == nil || f.TempPath == "" {
		return
	}
	if err := os.Remove(f.TempPath); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to discard staged file", "path", f.TempPath, "error", err)
	}
}

// Remove deletes the backing file of a public path. Unknown prefixes are
// rejected so a bad row can never delete outside the media root.
func (s *Store) Remove(publicPath string) error {
	diskPath, err := s.DiskPath(publicPath)
	if err != nil {
		return err
	}
	return os.Remove(diskPath)
}

// SiblingPath returns the disk and public paths a derived file (e.g. a
// thumbnail) of the given name would live at.
func (s *Store) SiblingPath(filename string) (diskPath string, publicPath string) {
	return filepath.Join(s.root, filename), path.Join(s.publicPrefix, filename)
}

// DiskPath maps a root-relative public path back to its file on disk.
func (s *Store) DiskPath(publicPath string) (string, error) {
	rel := strings.TrimPrefix(publicPath, s.publicPrefix+"/")
	if rel == publicPath || rel == "" {
		return "", fmt.Errorf("path '%s' is outside the media tree", publicPath)
	}
	name := filepath.Base(rel)
	return filepath.Join(s.root, name), nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// uniqueName builds timestamp_cleanName, bumping a numeric suffix while a
// file of that name already exists.
func (s *Store) uniqueName(originalName string) string {
	clean := unsafeNameChars.ReplaceAllString(strings.ReplaceAll(originalName, " ", "_"), "")
	if clean == "" || clean == "." {
		clean = "photo"
	}
	ts := time.Now().UnixMilli()
	name := fmt.Sprintf("%d_%s", ts, clean)
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(s.root, name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%d_%d_%s", ts, n, clean)
	}
}
