package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portos/internal/config"
	"portos/internal/domain"
	"portos/internal/port"
	"portos/internal/service"
	"portos/mocks"
)

// fakeFile adapts a bytes.Reader to the multipart.File interface.
type fakeFile struct {
	*bytes.Reader
}

func (fakeFile) Close() error { return nil }

var pngMagic = []byte("\x89PNG\r\n\x1a\n rest of the image")

func setupDocuments() (*mocks.MockDocumentRepo, *mocks.MockObjectStorage, service.DocumentService) {
	docRepo := new(mocks.MockDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := &config.S3Config{
		Bucket:        "portos-test",
		MaxFileSizeMB: 10,
		PresignExpiry: 900,
	}
	svc := service.NewDocumentService(docRepo, storage, cfg)
	return docRepo, storage, svc
}

func uploadInput(filename string, body []byte) service.DocumentUploadInput {
	return service.DocumentUploadInput{
		EnterpriseID: uuid.New(),
		UploadedBy:   uuid.New(),
		Type:         domain.DocFacture,
		File:         fakeFile{bytes.NewReader(body)},
		Header: &multipart.FileHeader{
			Filename: filename,
			Size:     int64(len(body)),
		},
	}
}

func TestUploadDocument_StoresObjectAndMetadata(t *testing.T) {
	docRepo, storage, svc := setupDocuments()

	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(&port.UploadOutput{}, nil)
	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	doc, err := svc.Upload(context.Background(), uploadInput("facture.png", pngMagic))

	require.NoError(t, err)
	assert.Equal(t, "image/png", doc.MimeType)
	assert.Equal(t, "facture.png", doc.OriginalName)
	assert.Contains(t, doc.StorageKey, "/documents/")
	assert.Equal(t, domain.DocFacture, doc.Type)

	storage.AssertExpectations(t)
	docRepo.AssertExpectations(t)
}

func TestUploadDocument_RejectsUnsupportedExtension(t *testing.T) {
	_, _, svc := setupDocuments()

	_, err := svc.Upload(context.Background(), uploadInput("malware.exe", pngMagic))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestUploadDocument_RejectsMismatchedContent(t *testing.T) {
	_, _, svc := setupDocuments()

	// Valid extension but the bytes sniff as an unknown binary type.
	_, err := svc.Upload(context.Background(), uploadInput("image.png", []byte{0x00, 0x01, 0x02, 0x03}))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestUploadDocument_RejectsOversizedFile(t *testing.T) {
	_, _, svc := setupDocuments()

	input := uploadInput("big.png", pngMagic)
	input.Header.Size = 11 * 1024 * 1024
	_, err := svc.Upload(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestUploadDocument_StorageFailure(t *testing.T) {
	_, storage, svc := setupDocuments()

	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(nil, assert.AnError)

	_, err := svc.Upload(context.Background(), uploadInput("facture.png", pngMagic))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestGetDownloadURL_PresignsStorageKey(t *testing.T) {
	docRepo, storage, svc := setupDocuments()

	enterpriseID := uuid.New()
	docID := uuid.New()
	docRepo.On("GetByID", mock.Anything, enterpriseID, docID).Return(&domain.Document{
		ID:         docID,
		StorageKey: "enterprises/x/documents/y/facture.png",
	}, nil)
	storage.On("GetPresignedURL", mock.Anything, "portos-test", "enterprises/x/documents/y/facture.png", int64(900)).
		Return("https://s3.example/presigned", nil)

	url, err := svc.GetDownloadURL(context.Background(), enterpriseID, docID)

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/presigned", url)
}

func TestDeleteDocument_DeniedForEmploye(t *testing.T) {
	_, _, svc := setupDocuments()

	err := svc.Delete(context.Background(), uuid.New(), uuid.New(), domain.RoleEmploye)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestDeleteDocument_KeepsMetadataDeletedOnStorageFailure(t *testing.T) {
	docRepo, storage, svc := setupDocuments()

	enterpriseID := uuid.New()
	docID := uuid.New()
	docRepo.On("GetByID", mock.Anything, enterpriseID, docID).Return(&domain.Document{
		ID:         docID,
		StorageKey: "enterprises/x/documents/y/facture.png",
	}, nil)
	docRepo.On("Delete", mock.Anything, enterpriseID, docID).Return(nil)
	storage.On("Delete", mock.Anything, "portos-test", "enterprises/x/documents/y/facture.png").Return(assert.AnError)

	err := svc.Delete(context.Background(), enterpriseID, docID, domain.RoleStaff)
	assert.NoError(t, err)
}
