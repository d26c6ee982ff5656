package services

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"

	"gorm.io/gorm"

	goredis "github.com/daniluce/portfolio-backend/internal/clients/redis"
	"github.com/daniluce/portfolio-backend/internal/data/repos"
	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/apierr"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
	"github.com/daniluce/portfolio-backend/internal/platform/media"
	"github.com/daniluce/portfolio-backend/internal/platform/slug"
	"github.com/daniluce/portfolio-backend/internal/platform/storage"
)

const primaryFileField = "firstFile"
const additionalFileField = "additionalFiles"

// imageExts is the allow-list for additional album files. The primary
// file may be any media type.
var imageExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "webp": {}, "gif": {}, "heic": {}, "avif": {},
}

// AlbumInput is one parsed multipart album upload. Files holds the raw
// multipart file map; clients may send additional files under
// index-suffixed names (additionalFiles[0], ...), which are coalesced
// into one ordered collection.
type AlbumInput struct {
	Name        string
	Description string
	Tags        string
	Files       map[string][]*multipart.FileHeader
}

// StoredFile describes one file promoted into the public media tree.
type StoredFile struct {
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

// UploadService turns multipart payloads into catalog rows. A failing
// file aborts the batch but earlier relocated files and rows stay in
// place: at-least-partial completion, not batch atomicity.
type UploadService interface {
	CreateAlbum(dbc dbctx.Context, input AlbumInput) (string, error)
	StoreSingle(fh *multipart.FileHeader) (*StoredFile, error)
}

type uploadService struct {
	db          *gorm.DB
	log         *logger.Logger
	photoRepo   repos.PhotoRepo
	tagResolver TagResolver
	photoTags   repos.PhotoTagRepo
	store       *storage.Store
	cache       *goredis.Cache
}

func NewUploadService(
	db *gorm.DB,
	baseLog *logger.Logger,
	photoRepo repos.PhotoRepo,
	tagResolver TagResolver,
	photoTags repos.PhotoTagRepo,
	store *storage.Store,
	cache *goredis.Cache,
) UploadService {
	serviceLog := baseLog.With("service", "UploadService")
	return &uploadService{
		db:          db,
		log:         serviceLog,
		photoRepo:   photoRepo,
		tagResolver: tagResolver,
		photoTags:   photoTags,
		store:       store,
		cache:       cache,
	}
}

func (us *uploadService) CreateAlbum(dbc dbctx.Context, input AlbumInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", apierr.Validation("album name is required")
	}

	primary, additional := CollectAlbumFiles(input.Files)
	if primary == nil {
		return "", apierr.Validation("first file (video or image) is required")
	}
	for _, fh := range additional {
		ext := fileExt(fh.Filename)
		if _, ok := imageExts[ext]; ext != "" && !ok {
			return "", apierr.Validation("additional file '%s' is not a supported image", fh.Filename)
		}
	}

	sessionSlug := slug.Make(name)

	// Primary first, then additional files in order. No rollback of
	// already-relocated files when a later one fails.
	created := make([]*domain.Photo, 0, 1+len(additional))
	primaryTitle := primary.Filename
	if primaryTitle == "" {
		primaryTitle = name
	}
	photo, err := us.storeAsPhoto(dbc, primary, primaryTitle, sessionSlug)
	if err != nil {
		return "", err
	}
	created = append(created, photo)

	for _, fh := range additional {
		photo, err := us.storeAsPhoto(dbc, fh, fh.Filename, sessionSlug)
		if err != nil {
			us.log.Warn("album batch aborted with earlier files kept",
				"session_slug", sessionSlug,
				"stored_count", len(created),
				"error", err,
			)
			return "", err
		}
		created = append(created, photo)
	}

	if tagNames := splitTags(input.Tags); len(tagNames) > 0 {
		for _, p := range created {
			if err := us.linkTags(dbc, p.ID, tagNames); err != nil {
				return "", err
			}
		}
	}

	us.cache.InvalidateListings(dbc.Ctx)
	return sessionSlug, nil
}

func (us *uploadService) StoreSingle(fh *multipart.FileHeader) (*StoredFile, error) {
	if fh == nil {
		return nil, apierr.Validation("no file uploaded")
	}
	staged, err := us.stageUpload(fh)
	if err != nil {
		return nil, err
	}
	filename, publicPath, err := us.store.Promote(staged)
	if err != nil {
		us.store.Discard(staged)
		return nil, apierr.Storage(err)
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}
	return &StoredFile{
		Filename: filename,
		Filepath: publicPath,
		Size:     staged.Size,
		MimeType: mimeType,
	}, nil
}

// storeAsPhoto relocates one file and inserts its catalog row,
// unpublished until explicitly flipped.
func (us *uploadService) storeAsPhoto(dbc dbctx.Context, fh *multipart.FileHeader, title, sessionSlug string) (*domain.Photo, error) {
	staged, err := us.stageUpload(fh)
	if err != nil {
		return nil, err
	}
	filename, publicPath, err := us.store.Promote(staged)
	if err != nil {
		us.store.Discard(staged)
		return nil, apierr.Storage(err)
	}

	photo := &domain.Photo{
		Title:     title,
		Slug:      slug.Photo(title),
		Filename:  filename,
		Filepath:  publicPath,
		Published: false,
	}
	if sessionSlug != "" {
		photo.SessionSlug = &sessionSlug
	}
	if thumb := us.generateThumbnail(filename, publicPath); thumb != "" {
		photo.ThumbPath = &thumb
	}

	if _, err := us.photoRepo.Create(dbc, []*domain.Photo{photo}); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("create photo row for '%s': %w", fh.Filename, err))
	}
	return photo, nil
}

// stageUpload classifies a failed stage: a part that cannot be opened is
// the caller's fault, anything past that is a storage failure.
func (us *uploadService) stageUpload(fh *multipart.FileHeader) (*storage.StagedFile, error) {
	staged, err := us.store.Stage(fh)
	if err == nil {
		return staged, nil
	}
	if errors.Is(err, storage.ErrUnreadable) {
		return nil, apierr.Validation("uploaded file '%s' missing temporary filepath", fh.Filename)
	}
	return nil, apierr.Storage(err)
}

// generateThumbnail is best-effort: a photo without a thumbnail is fine,
// a failed upload is not.
func (us *uploadService) generateThumbnail(filename, publicPath string) string {
	if !media.CanThumbnail(filepath.Ext(filename)) {
		return ""
	}
	srcDisk, err := us.store.DiskPath(publicPath)
	if err != nil {
		return ""
	}
	thumbName := filename + "_thumb.jpg"
	thumbDisk, thumbPublic := us.store.SiblingPath(thumbName)
	if err := media.GenerateThumbnail(srcDisk, thumbDisk); err != nil {
		us.log.Warn("thumbnail generation failed", "filename", filename, "error", err)
		return ""
	}
	return thumbPublic
}

func (us *uploadService) linkTags(dbc dbctx.Context, photoID int64, names []string) error {
	for _, name := range names {
		tagID, err := us.tagResolver.Resolve(dbc, name)
		if err != nil {
			return apierr.Persistence(fmt.Errorf("resolve tag %q: %w", name, err))
		}
		if err := us.photoTags.Link(dbc, photoID, tagID); err != nil {
			return apierr.Persistence(fmt.Errorf("link tag %q: %w", name, err))
		}
	}
	return nil
}

// CollectAlbumFiles coalesces the primary file and the possibly
// index-suffixed additional file fields into one ordered collection.
func CollectAlbumFiles(files map[string][]*multipart.FileHeader) (*multipart.FileHeader, []*multipart.FileHeader) {
	var primary *multipart.FileHeader
	var additional []*multipart.FileHeader

	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	// additionalFiles[2] must sort before additionalFiles[10].
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		headers := files[k]
		if len(headers) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(k, primaryFileField):
			if primary == nil {
				primary = headers[0]
			}
		case strings.HasPrefix(k, additionalFileField):
			additional = append(additional, headers...)
		}
	}
	return primary, additional
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func fileExt(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
