package models

type DocumentType string

const (
	DocumentResume      DocumentType = "resume"
	DocumentContract    DocumentType = "contract"
	DocumentPolicy      DocumentType = "policy"
	DocumentCertificate DocumentType = "certificate"
	DocumentOther       DocumentType = "other"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentResume, DocumentContract, DocumentPolicy, DocumentCertificate, DocumentOther:
		return true
	}
	return false
}

// TextStatus tracks background text extraction for an uploaded file.
type TextStatus string

const (
	TextPending     TextStatus = "pending"
	TextReady       TextStatus = "ready"
	TextFailed      TextStatus = "failed"
	TextUnsupported TextStatus = "unsupported"
)

// Document is file metadata. Filename is the storage key and is only set
// for uploaded files.
type Document struct {
	ID          string       `json:"id"`
	Name        string       `json:"name" validate:"notblank"`
	Type        DocumentType `json:"type" validate:"enum"`
	UploadedBy  string       `json:"uploadedBy"`
	UploadedAt  string       `json:"uploadedAt" validate:"date"`
	Size        int64        `json:"size" validate:"gte=0" msg:"Size must not be negative"`
	URL         string       `json:"url"`
	Filename    string       `json:"filename,omitempty"`
	ContentType string       `json:"contentType,omitempty"`
	EmployeeID  string       `json:"employeeId,omitempty"`
	TextStatus  TextStatus   `json:"textStatus,omitempty"`
}

func (d *Document) GetID() string   { return d.ID }
func (d *Document) SetID(id string) { d.ID = id }

// DocumentInput is the metadata-only create payload.
type DocumentInput struct {
	Name       string       `json:"name"`
	Type       DocumentType `json:"type"`
	UploadedBy string       `json:"uploadedBy"`
	Size       int64        `json:"size"`
	URL        string       `json:"url"`
	EmployeeID string       `json:"employeeId"`
}

func (in DocumentInput) Document(today string) Document {
	d := Document{
		Name:       in.Name,
		Type:       in.Type,
		UploadedBy: in.UploadedBy,
		UploadedAt: today,
		Size:       in.Size,
		URL:        in.URL,
		EmployeeID: in.EmployeeID,
	}
	if d.Type == "" {
		d.Type = DocumentOther
	}
	return d
}

// DocumentText is the extracted plain text of an uploaded document.
type DocumentText struct {
	Status TextStatus `json:"status"`
	Text   string     `json:"text"`
	Error  string     `json:"error,omitempty"`
}
