package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"portos/internal/config"
	"portos/internal/domain"
	"portos/internal/port"
)

// allowedExtensions maps accepted file extensions to their MIME types.
var allowedExtensions = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"webp": "image/webp",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"csv":  "text/csv",
}

// allowedContentTypes holds the MIME types accepted after sniffing the first
// bytes of an upload. Office and csv files sniff as zip or plain text.
var allowedContentTypes = map[string]struct{}{
	"application/pdf":           {},
	"image/png":                 {},
	"image/jpeg":                {},
	"image/webp":                {},
	"application/zip":           {},
	"text/plain; charset=utf-8": {},
	"text/csv":                  {},
}

// DocumentUploadInput is the DTO for document upload requests.
type DocumentUploadInput struct {
	EnterpriseID uuid.UUID
	UploadedBy   uuid.UUID
	Type         domain.DocumentType
	File         multipart.File
	Header       *multipart.FileHeader
}

// DocumentService defines the document management contract.
type DocumentService interface {
	Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error)
	GetByID(ctx context.Context, enterpriseID, documentID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	GetDownloadURL(ctx context.Context, enterpriseID, documentID uuid.UUID) (string, error)
	Delete(ctx context.Context, enterpriseID, documentID uuid.UUID, role domain.Role) error
}

type docService struct {
	docRepo port.DocumentRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) DocumentService {
	return &docService{
		docRepo: docRepo,
		storage: storage,
		cfg:     cfg,
	}
}

func (s *docService) Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	mimeType, ok := allowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Sniff the real content type from the first bytes.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, ok := allowedContentTypes[http.DetectContentType(buf[:n])]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	docType := input.Type
	if docType == "" {
		docType = domain.DocGeneric
	}

	docID := uuid.New()
	storageKey := fmt.Sprintf("enterprises/%s/documents/%s/%s", input.EnterpriseID, docID, input.Header.Filename)
	doc := &domain.Document{
		ID:           docID,
		EnterpriseID: input.EnterpriseID,
		UploadedBy:   input.UploadedBy,
		FileName:     docID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		StorageKey:   storageKey,
		SizeBytes:    input.Header.Size,
		MimeType:     mimeType,
		Type:         docType,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	log.Printf("documentService.Upload: uploading %s (%s, %d bytes) for enterprise %s",
		input.Header.Filename, mimeType, input.Header.Size, input.EnterpriseID)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         storageKey,
		Body:        input.File,
		ContentType: mimeType,
		Size:        input.Header.Size,
	}); err != nil {
		log.Printf("documentService.Upload: storage upload failed: %v", err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document metadata: %w", err)
	}
	return doc, nil
}

func (s *docService) GetByID(ctx context.Context, enterpriseID, documentID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, enterpriseID, documentID)
}

func (s *docService) List(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.ListByEnterprise(ctx, enterpriseID, offset, limit)
}

func (s *docService) GetDownloadURL(ctx context.Context, enterpriseID, documentID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, enterpriseID, documentID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, doc.StorageKey, s.cfg.PresignExpiry)
}

func (s *docService) Delete(ctx context.Context, enterpriseID, documentID uuid.UUID, role domain.Role) error {
	if role == domain.RoleEmploye {
		return domain.ErrInsufficientRole
	}
	doc, err := s.docRepo.GetByID(ctx, enterpriseID, documentID)
	if err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, enterpriseID, documentID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, s.cfg.Bucket, doc.StorageKey); err != nil {
		// Metadata is already soft-deleted; the orphan object is logged
		// for later cleanup.
		log.Printf("documentService.Delete: storage delete failed for %s: %v", doc.StorageKey, err)
	}
	return nil
}
