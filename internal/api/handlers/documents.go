package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/api/middleware"
	"talentflow/internal/hr"
	"talentflow/internal/logging"
	"talentflow/pkg/models"
)

// DefaultMaxUploadSize is the largest accepted upload.
const DefaultMaxUploadSize = 10 << 20

// Documents serves the file endpoints of the documents collection. Plain
// metadata CRUD goes through a Resource.
type Documents struct {
	Service *hr.DocumentService
	MaxSize int64
	Logger  logging.Logger
}

func (h *Documents) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return c.JSON(http.StatusBadRequest, models.FailureResponse{Error: "No file uploaded"})
		}
		return c.JSON(http.StatusBadRequest, models.FailureResponse{Error: "Invalid upload"})
	}

	if !hr.AllowedFile(file.Filename) {
		return c.JSON(http.StatusBadRequest, models.FailureResponse{
			Error: "Invalid file type. Only PDF, DOCX, DOC, and TXT files are allowed.",
		})
	}

	maxSize := h.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	if file.Size > maxSize {
		return c.JSON(http.StatusRequestEntityTooLarge, models.FailureResponse{
			Error: fmt.Sprintf("File too large. Maximum size is %dMB.", maxSize>>20),
		})
	}

	src, err := file.Open()
	if err != nil {
		return fail(c, h.Logger, err, "Document")
	}
	defer src.Close()

	uploadedBy := ""
	if identity, found := middleware.CurrentIdentity(c); found {
		uploadedBy = identity.Name
	}

	doc, err := h.Service.Upload(c.Request().Context(), hr.Upload{
		OriginalName: file.Filename,
		Name:         c.FormValue("name"),
		Type:         models.DocumentType(c.FormValue("type")),
		EmployeeID:   c.FormValue("employeeId"),
		UploadedBy:   uploadedBy,
		Size:         file.Size,
		ContentType:  file.Header.Get(echo.HeaderContentType),
		Body:         src,
	})
	if err != nil {
		if errors.Is(err, hr.ErrUnsupportedFileType) {
			return c.JSON(http.StatusBadRequest, models.FailureResponse{
				Error: "Invalid file type. Only PDF, DOCX, DOC, and TXT files are allowed.",
			})
		}
		return fail(c, h.Logger, err, "Document")
	}
	return ok(c, http.StatusCreated, doc)
}

// Download streams the stored file as an attachment named after the document.
func (h *Documents) Download(c echo.Context) error {
	doc, rc, err := h.Service.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, hr.ErrNoFile) {
			return c.JSON(http.StatusNotFound, models.FailureResponse{Error: "File not found"})
		}
		return fail(c, h.Logger, err, "Document")
	}
	defer rc.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": doc.Name}))
	return c.Stream(http.StatusOK, contentType, rc)
}

// Content returns the extracted text of an uploaded document.
func (h *Documents) Content(c echo.Context) error {
	text, err := h.Service.Text(c.Param("id"))
	if err != nil {
		return fail(c, h.Logger, err, "Document")
	}
	return ok(c, http.StatusOK, text)
}

// Delete removes the record and its stored file.
func (h *Documents) Delete(c echo.Context) error {
	doc, err := h.Service.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, h.Logger, err, "Document")
	}
	return c.JSON(http.StatusOK, models.DataResponse[models.Document]{
		Success: true,
		Message: "Document deleted",
		Data:    doc,
	})
}
