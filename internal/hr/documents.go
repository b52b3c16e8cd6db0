package hr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"talentflow/internal/logging"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

var (
	// ErrUnsupportedFileType is returned for uploads outside AllowedExtensions.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrNoFile is returned when a document has no stored blob.
	ErrNoFile = errors.New("document has no stored file")
)

// AllowedExtensions are the upload types accepted by DocumentService.Upload.
var AllowedExtensions = []string{".pdf", ".docx", ".doc", ".txt"}

// BlobStore keeps uploaded document bytes.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Extractor turns a stored document into plain text.
type Extractor interface {
	Supports(filename string) bool
	Extract(ctx context.Context, r io.Reader, filename string) (string, error)
}

// JobQueue runs work off the request path.
type JobQueue interface {
	Submit(name string, job func(ctx context.Context) error) error
}

// Upload describes one multipart file upload.
type Upload struct {
	OriginalName string
	Name         string
	Type         models.DocumentType
	EmployeeID   string
	UploadedBy   string
	Size         int64
	ContentType  string
	Body         io.Reader
}

// DocumentService adds file handling to the document records.
type DocumentService struct {
	*Service[models.Document, *models.Document]

	blobs     BlobStore
	extractor Extractor
	jobs      JobQueue
	now       func() string
	logger    logging.Logger

	mu    sync.RWMutex
	texts map[string]models.DocumentText
}

func newDocumentService(dir *Directory, opts Options, logger logging.Logger) *DocumentService {
	svc := &DocumentService{
		Service:   newService(dir.Documents, DocumentSchema, opts.Validator, logger),
		blobs:     opts.Blobs,
		extractor: opts.Extractor,
		jobs:      opts.Jobs,
		now:       func() string { return utils.Today(opts.Now()) },
		logger:    logger.WithField("kind", "document"),
		texts:     make(map[string]models.DocumentText),
	}
	svc.assigned = func(d *models.Document) {
		if d.Filename != "" {
			d.URL = DownloadURL(d.ID)
		}
	}
	return svc
}

// DownloadURL is the API path that streams a document's file.
func DownloadURL(id string) string {
	return "/api/documents/" + id + "/download"
}

// AllowedFile reports whether name has an accepted extension.
func AllowedFile(name string) bool {
	return utils.Contains(AllowedExtensions, strings.ToLower(filepath.Ext(name)))
}

// Upload stores the file and its metadata, then queues text extraction.
// The blob is removed again if the metadata is rejected.
func (s *DocumentService) Upload(ctx context.Context, up Upload) (models.Document, error) {
	if !AllowedFile(up.OriginalName) {
		return models.Document{}, ErrUnsupportedFileType
	}
	if s.blobs == nil {
		return models.Document{}, fmt.Errorf("no blob store configured")
	}

	key := uuid.NewString() + strings.ToLower(filepath.Ext(up.OriginalName))
	if err := s.blobs.Put(ctx, key, up.Body, up.Size, up.ContentType); err != nil {
		return models.Document{}, fmt.Errorf("failed to store file: %w", err)
	}

	doc := models.Document{
		Name:        utils.GetStringOrDefault(up.Name, up.OriginalName),
		Type:        up.Type,
		UploadedBy:  utils.GetStringOrDefault(up.UploadedBy, "Unknown"),
		UploadedAt:  s.now(),
		Size:        up.Size,
		Filename:    key,
		ContentType: up.ContentType,
		EmployeeID:  up.EmployeeID,
		TextStatus:  models.TextUnsupported,
	}
	if doc.Type == "" {
		doc.Type = models.DocumentOther
	}
	extract := s.extractor != nil && s.jobs != nil && s.extractor.Supports(key)
	if extract {
		doc.TextStatus = models.TextPending
	}

	created, err := s.Create(doc)
	if err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Failed to remove orphaned upload", map[string]interface{}{"key": key, "error": delErr.Error()})
		}
		return models.Document{}, err
	}

	if extract {
		created = s.queueExtraction(created)
	}
	return created, nil
}

func (s *DocumentService) queueExtraction(doc models.Document) models.Document {
	id, key := doc.ID, doc.Filename
	err := s.jobs.Submit("extract:"+id, func(ctx context.Context) error {
		return s.extract(ctx, id, key)
	})
	if err == nil {
		return doc
	}

	s.logger.Warn("Failed to queue text extraction", map[string]interface{}{"document_id": id, "error": err.Error()})
	s.finishText(id, models.DocumentText{Status: models.TextFailed, Error: err.Error()})
	doc.TextStatus = models.TextFailed
	return doc
}

func (s *DocumentService) extract(ctx context.Context, id, key string) error {
	rc, err := s.blobs.Open(ctx, key)
	if err != nil {
		s.finishText(id, models.DocumentText{Status: models.TextFailed, Error: err.Error()})
		return err
	}
	defer rc.Close()

	text, err := s.extractor.Extract(ctx, rc, key)
	if err != nil {
		s.finishText(id, models.DocumentText{Status: models.TextFailed, Error: err.Error()})
		return err
	}

	s.finishText(id, models.DocumentText{Status: models.TextReady, Text: text})
	s.logger.Debug("Document text extracted", map[string]interface{}{"document_id": id, "chars": len(text)})
	return nil
}

// finishText records the extraction outcome. A document deleted meanwhile
// is left alone.
func (s *DocumentService) finishText(id string, result models.DocumentText) {
	_, err := s.store.Update(id, func(d *models.Document, _ []models.Document) error {
		d.TextStatus = result.Status
		return nil
	})
	if err != nil {
		return
	}

	s.mu.Lock()
	s.texts[id] = result
	s.mu.Unlock()
}

// Text returns the extraction state of a document.
func (s *DocumentService) Text(id string) (models.DocumentText, error) {
	doc, err := s.Get(id)
	if err != nil {
		return models.DocumentText{}, err
	}

	s.mu.RLock()
	result, ok := s.texts[id]
	s.mu.RUnlock()
	if ok {
		return result, nil
	}

	status := doc.TextStatus
	if status == "" {
		status = models.TextUnsupported
	}
	return models.DocumentText{Status: status}, nil
}

// Open returns the document and a reader over its file.
func (s *DocumentService) Open(ctx context.Context, id string) (models.Document, io.ReadCloser, error) {
	doc, err := s.Get(id)
	if err != nil {
		return models.Document{}, nil, err
	}
	if doc.Filename == "" || s.blobs == nil {
		return doc, nil, ErrNoFile
	}

	rc, err := s.blobs.Open(ctx, doc.Filename)
	if err != nil {
		return doc, nil, fmt.Errorf("%w: %v", ErrNoFile, err)
	}
	return doc, rc, nil
}

// Remove deletes the record and its stored file.
func (s *DocumentService) Remove(ctx context.Context, id string) (models.Document, error) {
	doc, err := s.Delete(id)
	if err != nil {
		return doc, err
	}

	s.mu.Lock()
	delete(s.texts, id)
	s.mu.Unlock()

	if doc.Filename != "" && s.blobs != nil {
		if err := s.blobs.Delete(ctx, doc.Filename); err != nil {
			s.logger.Warn("Failed to delete stored file", map[string]interface{}{"document_id": id, "key": doc.Filename, "error": err.Error()})
		}
	}
	return doc, nil
}
