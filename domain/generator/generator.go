package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/cache"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
)

// GenerationRequest is a single form submission
type GenerationRequest struct {
	TargetURL  string
	BoxSize    int
	BorderSize int
}

// ImageFile is a QR code PNG persisted in the output directory
type ImageFile struct {
	Path      string
	Filename  string
	CreatedAt time.Time
	Size      int64
}

// GalleryEntry is the gallery projection of an ImageFile
type GalleryEntry struct {
	Filename  string
	CreatedAt string
	Downloads uint
}

// Generation is the history record of a fulfilled GenerationRequest
type Generation struct {
	ID         uint
	TargetURL  string
	Filename   string
	BoxSize    int
	BorderSize int
	Bytes      int
	Downloads  uint
	CreatedAt  time.Time
}

// Result is what Generate hands back to the caller
type Result struct {
	TargetURL string
	Filename  string
	Path      string
	PNG       []byte
	CacheHit  bool
}

// Base64 returns the PNG encoded for a data: URI
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.PNG)
}

// Encoder renders QR symbols
type Encoder interface {
	Encode(content string, boxSize, border int) (*qrcode.Image, error)
}

// ImageStore persists rendered PNGs
type ImageStore interface {
	Save(ctx context.Context, filename string, src io.WriterTo) (string, error)
	ListRecent(ctx context.Context, max int) ([]ImageFile, error)
	Open(ctx context.Context, filename string) (io.ReadSeekCloser, ImageFile, error)
}

// Repository records generation history and download counters
type Repository interface {
	Record(ctx context.Context, g *Generation) error
	IncrementDownloads(ctx context.Context, filename string) error
	DownloadCounts(ctx context.Context, filenames []string) (map[string]uint, error)
}

// Service represents the domain service for QR code generation
type Service struct {
	encoder Encoder
	store   ImageStore
	repo    Repository
	cache   *cache.NamespaceLRU[[]byte]
	now     func() time.Time
}

// NewService creates a new generator service
func NewService(encoder Encoder, store ImageStore, repo Repository, lru *cache.NamespaceLRU[[]byte]) *Service {
	logger.Debug("Creating generator service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "generator",
		},
	})

	return &Service{
		encoder: encoder,
		store:   store,
		repo:    repo,
		cache:   lru,
		now:     time.Now,
	}
}

// Validate checks the request and returns it with the URL normalized
func Validate(req GenerationRequest) (GenerationRequest, error) {
	req.TargetURL = NormalizeURL(req.TargetURL)
	if req.TargetURL == "" {
		return req, ErrEmptyURL
	}
	if req.BoxSize < 1 || req.BoxSize > constant.MaxBoxSize {
		return req, ErrInvalidSize
	}
	if req.BorderSize < 0 || req.BorderSize > constant.MaxBorder {
		return req, ErrInvalidBorder
	}
	return req, nil
}

// Generate renders the QR code, writes it to the store and returns the PNG
func (s *Service) Generate(ctx context.Context, req GenerationRequest) (*Result, error) {
	req, err := Validate(req)
	if err != nil {
		logger.CtxWarn(ctx, "Invalid generation request", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    validationCode(err),
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataBoxSize: req.BoxSize,
				constant.DataBorder:  req.BorderSize,
			},
		})
		return nil, err
	}

	png, cacheHit, err := s.render(ctx, req)
	if err != nil {
		return nil, err
	}

	createdAt := s.now()
	filename := DeriveFilename(req.TargetURL, createdAt)
	path, err := s.store.Save(ctx, filename, bytes.NewReader(png))
	if err != nil {
		logger.CtxError(ctx, "Failed to store QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeStorageFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataFilename: filename,
			},
		})
		return nil, err
	}

	record := &Generation{
		TargetURL:  req.TargetURL,
		Filename:   filename,
		BoxSize:    req.BoxSize,
		BorderSize: req.BorderSize,
		Bytes:      len(png),
		CreatedAt:  createdAt,
	}
	if err := s.repo.Record(ctx, record); err != nil {
		// History is an audit log only, the file on disk is what counts
		logger.CtxWarn(ctx, "Failed to record generation", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeRecordHistory,
				Message: err.Error(),
				Type:    constant.ErrTypeHistory,
			},
			Data: map[string]interface{}{
				constant.DataFilename: filename,
			},
		})
	}

	logger.CtxInfo(ctx, "QR code generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataURL:      req.TargetURL,
			constant.DataFilename: filename,
			constant.DataBytes:    len(png),
			constant.DataCacheHit: cacheHit,
		},
	})

	return &Result{
		TargetURL: req.TargetURL,
		Filename:  filename,
		Path:      path,
		PNG:       png,
		CacheHit:  cacheHit,
	}, nil
}

func (s *Service) render(ctx context.Context, req GenerationRequest) ([]byte, bool, error) {
	key := fmt.Sprintf("%d:%d:%s", req.BoxSize, req.BorderSize, req.TargetURL)
	if png, found := s.cache.Get(constant.PNGNamespace, key); found {
		return png, true, nil
	}

	img, err := s.encoder.Encode(req.TargetURL, req.BoxSize, req.BorderSize)
	if err != nil {
		code := constant.ErrCodeEncode
		if errors.Is(err, ErrEncodingCapacityExceeded) {
			code = constant.ErrCodeCapacity
		}
		logger.CtxError(ctx, "Failed to encode QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    code,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataURL: req.TargetURL,
			},
		})
		return nil, false, err
	}

	png, err := img.PNG()
	if err != nil {
		logger.CtxError(ctx, "Failed to encode PNG", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEncodePNG,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
		})
		return nil, false, fmt.Errorf("encode png: %w", err)
	}

	s.cache.Set(constant.PNGNamespace, key, png)
	return png, false, nil
}

// Download opens a stored file for download and counts the download
func (s *Service) Download(ctx context.Context, filename string) (io.ReadSeekCloser, ImageFile, error) {
	rc, file, err := s.Preview(ctx, filename)
	if err != nil {
		return nil, ImageFile{}, err
	}

	if err := s.repo.IncrementDownloads(ctx, filename); err != nil {
		logger.CtxWarn(ctx, "Failed to increment download count", logger.LoggerInfo{
			ContextFunction: constant.CtxOpen,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeIncrementDownload,
				Message: err.Error(),
				Type:    constant.ErrTypeHistory,
			},
			Data: map[string]interface{}{
				constant.DataFilename: filename,
			},
		})
	}

	return rc, file, nil
}

// Preview opens a stored file without touching download counters
func (s *Service) Preview(ctx context.Context, filename string) (io.ReadSeekCloser, ImageFile, error) {
	rc, file, err := s.store.Open(ctx, filename)
	if err != nil {
		logger.CtxInfo(ctx, "Requested file unavailable", logger.LoggerInfo{
			ContextFunction: constant.CtxOpen,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeFileNotFound,
				Message: err.Error(),
				Type:    constant.ErrTypeRetrieval,
			},
			Data: map[string]interface{}{
				constant.DataFilename: filename,
			},
		})
		return nil, ImageFile{}, err
	}
	return rc, file, nil
}

// Gallery returns up to limit of the most recently created files, newest first
func (s *Service) Gallery(ctx context.Context, limit int) ([]GalleryEntry, error) {
	files, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		logger.CtxError(ctx, "Failed to list QR codes", logger.LoggerInfo{
			ContextFunction: constant.CtxGallery,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeListFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeRetrieval,
			},
		})
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}

	counts, err := s.repo.DownloadCounts(ctx, names)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to load download counts", logger.LoggerInfo{
			ContextFunction: constant.CtxGallery,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeLookupHistory,
				Message: err.Error(),
				Type:    constant.ErrTypeHistory,
			},
		})
		counts = nil
	}

	entries := make([]GalleryEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, GalleryEntry{
			Filename:  f.Filename,
			CreatedAt: f.CreatedAt.Format(galleryTimeLayout),
			Downloads: counts[f.Filename],
		})
	}

	logger.CtxDebug(ctx, "Gallery listed", logger.LoggerInfo{
		ContextFunction: constant.CtxGallery,
		Data: map[string]interface{}{
			constant.DataCount: len(entries),
			constant.DataLimit: limit,
		},
	})

	return entries, nil
}

func validationCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSize):
		return constant.ErrCodeInvalidSize
	case errors.Is(err, ErrInvalidBorder):
		return constant.ErrCodeInvalidBorder
	default:
		return constant.ErrCodeEmptyURL
	}
}

// IsNotFound reports whether err means the requested file cannot be served
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidFilename)
}
