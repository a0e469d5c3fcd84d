package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicetradeai-create/bizzauto-project/internal/docpipe"
	"github.com/invoicetradeai-create/bizzauto-project/internal/jobs"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

const idempotencyKeyHeader = "Idempotency-Key"

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadDocument stores the file, records it as RECEIVED and enqueues
// it for the OCR worker. The response is 202: parsing happens async
// and the caller polls the document status.
func (s *Server) UploadDocument(c *gin.Context) {
	ctx := c.Request.Context()
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		AbortWithError(c, newValidationError("company_id", "missing_company_id", "company context is required"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "missing_file", "multipart field 'file' is required"))
		return
	}
	if file.Size > s.cfg.MaxUploadSize {
		AbortWithError(c, newValidationError("file", "file_too_large", "file exceeds the upload size limit"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		AbortWithError(c, newValidationError("file", "unsupported_file_type", "supported types: pdf, jpg, jpeg, png"))
		return
	}

	docID := uuid.New()
	idempotencyKey := strings.TrimSpace(c.GetHeader(idempotencyKeyHeader))
	if idempotencyKey == "" {
		idempotencyKey = docID.String()
	}

	dir := filepath.Join(s.cfg.UploadDir, companyID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		AbortWithError(c, err)
		return
	}
	storagePath := filepath.Join(dir, docID.String()+ext)
	if err := c.SaveUploadedFile(file, storagePath); err != nil {
		AbortWithError(c, err)
		return
	}

	doc := docpipe.UploadedDoc{
		ID:             docID,
		CompanyID:      companyID,
		FileName:       filepath.Base(file.Filename),
		StoragePath:    storagePath,
		MimeType:       file.Header.Get("Content-Type"),
		Status:         docpipe.DocStatusReceived,
		IdempotencyKey: idempotencyKey,
	}
	if err := s.docs.Create(ctx, &doc); err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.queue.Enqueue(ctx, jobs.Job{
		DocumentID:     docID,
		CompanyID:      companyID,
		IdempotencyKey: idempotencyKey,
	}); err != nil {
		// The row stays RECEIVED; a requeue sweep or re-upload with the
		// same idempotency key recovers it.
		s.log.Error("enqueue document job", zap.String("document_id", docID.String()), zap.Error(err))
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"data": doc})
}

func (s *Server) GetDocumentByID(c *gin.Context) {
	ctx := c.Request.Context()
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		AbortWithError(c, newValidationError("company_id", "missing_company_id", "company context is required"))
		return
	}

	docID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "document id must be a UUID"))
		return
	}

	doc, err := s.docs.FindOne(ctx, &docpipe.UploadedDoc{ID: docID, CompanyID: companyID})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if doc == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": doc})
}
