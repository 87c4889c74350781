package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

const imageExt = ".png"

// FileStore implements generator.ImageStore on a single flat directory
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created lazily.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: filepath.Clean(dir)}
}

// Dir returns the output directory
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes src to filename, replacing any existing file with that name
func (s *FileStore) Save(ctx context.Context, filename string, src io.WriterTo) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logFailure(ctx, constant.CtxSave, constant.ErrCodeFSMkdir, err, filename)
		return "", fmt.Errorf("%w: %v", generator.ErrPersistence, err)
	}

	path := filepath.Join(s.dir, filename)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		s.logFailure(ctx, constant.CtxSave, constant.ErrCodeFSCreate, err, filename)
		return "", fmt.Errorf("%w: %v", generator.ErrPersistence, err)
	}

	n, err := src.WriteTo(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		s.logFailure(ctx, constant.CtxSave, constant.ErrCodeFSWrite, err, filename)
		return "", fmt.Errorf("%w: %v", generator.ErrPersistence, err)
	}

	appLogger.CtxDebug(ctx, "QR code written", appLogger.LoggerInfo{
		ContextFunction: constant.CtxSave,
		Data: map[string]interface{}{
			constant.DataPath:  path,
			constant.DataBytes: n,
		},
	})

	return path, nil
}

// ListRecent returns at most max PNG files, newest first. A missing directory
// is an empty listing.
func (s *FileStore) ListRecent(ctx context.Context, max int) ([]generator.ImageFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []generator.ImageFile{}, nil
		}
		s.logFailure(ctx, constant.CtxListRecent, constant.ErrCodeFSReadDir, err, "")
		return nil, err
	}

	files := make([]generator.ImageFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), imageExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			s.logFailure(ctx, constant.CtxListRecent, constant.ErrCodeFSStat, err, entry.Name())
			return nil, err
		}
		files = append(files, s.imageFile(info))
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].CreatedAt.Equal(files[j].CreatedAt) {
			return files[i].Filename > files[j].Filename
		}
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})

	if max >= 0 && len(files) > max {
		files = files[:max]
	}

	return files, nil
}

// Open returns the file contents for streaming
func (s *FileStore) Open(ctx context.Context, filename string) (io.ReadSeekCloser, generator.ImageFile, error) {
	if err := validateFilename(filename); err != nil {
		appLogger.CtxWarn(ctx, "Rejected filename", appLogger.LoggerInfo{
			ContextFunction: constant.CtxOpen,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeFSFilename,
				Message: err.Error(),
				Type:    constant.ErrTypeFS,
			},
			Data: map[string]interface{}{
				constant.DataFilename: filename,
			},
		})
		return nil, generator.ImageFile{}, err
	}

	f, err := os.Open(filepath.Join(s.dir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, generator.ImageFile{}, generator.ErrNotFound
		}
		s.logFailure(ctx, constant.CtxOpen, constant.ErrCodeFSOpen, err, filename)
		return nil, generator.ImageFile{}, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		s.logFailure(ctx, constant.CtxOpen, constant.ErrCodeFSStat, err, filename)
		return nil, generator.ImageFile{}, err
	}
	if info.IsDir() {
		f.Close()
		return nil, generator.ImageFile{}, generator.ErrNotFound
	}

	return f, s.imageFile(info), nil
}

func (s *FileStore) imageFile(info fs.FileInfo) generator.ImageFile {
	return generator.ImageFile{
		Path:      filepath.Join(s.dir, info.Name()),
		Filename:  info.Name(),
		CreatedAt: info.ModTime(),
		Size:      info.Size(),
	}
}

func (s *FileStore) logFailure(ctx context.Context, fn, code string, err error, filename string) {
	appLogger.CtxError(ctx, "Filesystem operation failed", appLogger.LoggerInfo{
		ContextFunction: fn,
		Error: &appLogger.CustomError{
			Code:    code,
			Message: err.Error(),
			Type:    constant.ErrTypeFS,
		},
		Data: map[string]interface{}{
			constant.DataDir:      s.dir,
			constant.DataFilename: filename,
		},
	})
}

// validateFilename accepts a single path segment of [A-Za-z0-9_.-] ending in .png
func validateFilename(name string) error {
	if len(name) <= len(imageExt) || !strings.HasSuffix(name, imageExt) {
		return generator.ErrInvalidFilename
	}
	if strings.HasPrefix(name, ".") || strings.Contains(name, "..") {
		return generator.ErrInvalidFilename
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
		default:
			return generator.ErrInvalidFilename
		}
	}
	return nil
}
