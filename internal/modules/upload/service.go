package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
)

const MaxFileSize = 10 * 1024 * 1024

// allowed maps sniffed mime types to the stored extension.
var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Repository interface {
	Create(ctx context.Context, u *domain.Upload) error
	GetByID(ctx context.Context, id int64) (*domain.Upload, error)
}

// Service stores images on local disk under baseDir and serves them from staticBase.
type Service struct {
	repo       Repository
	baseDir    string
	staticBase string
	now        func() time.Time
}

func NewService(repo Repository, baseDir, staticBase string) *Service {
	return &Service{
		repo:       repo,
		baseDir:    baseDir,
		staticBase: staticBase,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// File is the part of an uploaded file the service needs.
type File struct {
	Name   string
	Size   int64
	Reader io.Reader
}

func (s *Service) Upload(ctx context.Context, userID int64, f File) (*domain.Upload, error) {
	if f.Size == 0 {
		return nil, ErrEmptyFile
	}
	if f.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	mimeType := http.DetectContentType(head)
	ext, ok := allowed[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}

	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, filepath.FromSlash(relDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	absPath := filepath.Join(absDir, name)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	// One byte past the limit is enough to tell the declared size lied.
	written, err := io.Copy(dst, io.LimitReader(io.MultiReader(bytes.NewReader(head), f.Reader), MaxFileSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("write file: %w", err)
	}
	if written > MaxFileSize {
		_ = os.Remove(absPath)
		return nil, ErrFileTooLarge
	}

	relPath := path.Join(relDir, name)
	u := &domain.Upload{
		UserID:       userID,
		OriginalName: filepath.Base(f.Name),
		MimeType:     mimeType,
		Size:         written,
		Path:         relPath,
		URL:          s.staticBase + "/" + relPath,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("save upload record: %w", err)
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Upload, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return u, nil
}
