// Package documents implements the attachment policy for car files: naming,
// placement under the uploads root, single-slot supersession, and retrieval.
package documents

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/inesh111/pj-motors/internal/models"
	"github.com/inesh111/pj-motors/internal/pkg/apperr"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
	// Root is the uploads directory; per-car subdirectories are created
	// beneath it on demand.
	Root string
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// SanitizeName reduces an uploader-supplied filename to a filesystem-safe
// token. An empty name falls back to "document".
func SanitizeName(name string) string {
	if name == "" {
		return "document"
	}
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// Attach stores the file bytes and inserts the metadata row. For single-slot
// types the previous document of that type is superseded first: its backing
// file is removed best-effort, then its row, so at most one row of the type
// exists per car. Bytes hit disk before any metadata changes, so a row never
// points at a file that was never written.
func (s *Service) Attach(ctx context.Context, carID uint, docType, originalName string, data []byte) (*models.CarDocument, error) {
	if strings.TrimSpace(docType) == "" {
		return nil, apperr.New(apperr.Validation, "Missing document type")
	}
	if len(data) == 0 {
		return nil, apperr.New(apperr.Validation, "File is empty")
	}

	var car models.Car
	if err := s.DB.WithContext(ctx).First(&car, carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Car not found")
		}
		return nil, err
	}

	carDir := filepath.Join(s.Root, strconv.FormatUint(uint64(carID), 10))
	if err := os.MkdirAll(carDir, 0o755); err != nil {
		return nil, apperr.New(apperr.Storage, "Failed to create upload directory")
	}

	filename := fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), docType, SanitizeName(originalName))
	absPath := filepath.Join(carDir, filename)
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return nil, apperr.New(apperr.Storage, "Failed to write file")
	}

	if SlotKindOf(docType) == SingleSlot {
		if err := s.supersede(ctx, carID, docType); err != nil {
			return nil, err
		}
	}

	relPath, err := filepath.Rel(s.Root, absPath)
	if err != nil {
		relPath = filepath.Join(strconv.FormatUint(uint64(carID), 10), filename)
	}

	doc := &models.CarDocument{
		CarID:    carID,
		Type:     docType,
		FilePath: filepath.ToSlash(relPath),
		Name:     originalName,
	}
	if doc.Name == "" {
		doc.Name = "document"
	}
	if err := s.DB.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// supersede removes the existing document of a single-slot type for a car:
// backing file first (failure logged and swallowed), then the row.
func (s *Service) supersede(ctx context.Context, carID uint, docType string) error {
	var existing models.CarDocument
	err := s.DB.WithContext(ctx).Where("car_id = ? AND type = ?", carID, docType).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.removeFile(existing.FilePath)
	return s.DB.WithContext(ctx).Delete(&models.CarDocument{}, existing.ID).Error
}

// FetchResult is a retrieved document: bytes plus what a handler needs to
// serve them.
type FetchResult struct {
	Data        []byte
	Name        string
	ContentType string
}

// Fetch reads a document's bytes from disk. A missing row is the client's
// mistake; a row whose file is gone is ours.
func (s *Service) Fetch(ctx context.Context, docID uint) (*FetchResult, error) {
	var doc models.CarDocument
	if err := s.DB.WithContext(ctx).First(&doc, docID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Document not found")
		}
		return nil, err
	}

	absPath := filepath.Join(s.Root, filepath.FromSlash(doc.FilePath))
	data, err := os.ReadFile(absPath)
	if err != nil {
		log.Error().Err(err).Uint("doc_id", docID).Str("path", doc.FilePath).Msg("documents: file missing on disk")
		return nil, apperr.New(apperr.Storage, "File missing on disk")
	}

	return &FetchResult{
		Data:        data,
		Name:        doc.Name,
		ContentType: ContentTypeFor(doc.FilePath),
	}, nil
}

// ContentTypeFor infers a content type from the file extension.
func ContentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".xls":
		return "application/vnd.ms-excel"
	default:
		return "application/octet-stream"
	}
}

// RemoveCarFiles removes a car's upload directory. Best-effort: failure is
// logged and the caller's deletion is not blocked.
func (s *Service) RemoveCarFiles(carID uint) {
	dir := filepath.Join(s.Root, strconv.FormatUint(uint64(carID), 10))
	if err := os.RemoveAll(dir); err != nil {
		log.Warn().Err(err).Uint("car_id", carID).Str("dir", dir).Msg("documents: failed to remove car files")
	}
}

func (s *Service) removeFile(relPath string) {
	absPath := filepath.Join(s.Root, filepath.FromSlash(relPath))
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", relPath).Msg("documents: failed to remove superseded file")
	}
}
