package hr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/internal/api/validation"
	"talentflow/internal/logging"
	"talentflow/internal/logging/adapters"
	"talentflow/internal/query"
	"talentflow/internal/store"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

var fixedNow = time.Date(2024, 1, 24, 9, 0, 0, 0, time.UTC)

type memBlobs struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemBlobs() *memBlobs { return &memBlobs{files: map[string][]byte{}} }

func (m *memBlobs) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = data
	return nil
}

func (m *memBlobs) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[key]
	if !ok {
		return nil, fmt.Errorf("no blob %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	return nil
}

func (m *memBlobs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

type textExtractor struct{}

func (textExtractor) Supports(name string) bool { return strings.HasSuffix(name, ".txt") }

func (textExtractor) Extract(_ context.Context, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	return string(data), err
}

// inlineJobs runs jobs synchronously, or rejects them when full is set.
type inlineJobs struct{ full bool }

func (q inlineJobs) Submit(_ string, job func(ctx context.Context) error) error {
	if q.full {
		return errors.New("queue full")
	}
	return job(context.Background())
}

func quietLogger() logging.Logger {
	l := logging.NewMultiLogger()
	l.AddAdapter(adapters.NewWriterAdapter("discard", adapters.StdoutConfig{}, io.Discard))
	return l
}

func newTestServices(t *testing.T, opts Options) *Services {
	t.Helper()
	opts.Now = func() time.Time { return fixedNow }
	opts.Logger = quietLogger()
	return NewServices(NewDirectory(), opts)
}

func TestCandidateCreateAppliesDefaults(t *testing.T) {
	svc := newTestServices(t, Options{})

	in := models.CandidateInput{Name: "Ana", Email: "ana@x.com", Position: "Engineer"}
	created, err := svc.Candidates.Create(in.Candidate(svc.Today()))
	require.NoError(t, err)

	assert.Equal(t, "1", created.ID)
	assert.Equal(t, "General", created.Department)
	assert.Equal(t, models.CandidateNew, created.Status)
	assert.Equal(t, "2024-01-24", created.AppliedAt)
	assert.Equal(t, []string{}, created.Skills)

	got, err := svc.Candidates.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCandidateDuplicateEmail(t *testing.T) {
	svc := newTestServices(t, Options{})

	first := models.CandidateInput{Name: "A", Email: "a@x.com", Position: "P"}
	_, err := svc.Candidates.Create(first.Candidate(svc.Today()))
	require.NoError(t, err)

	_, err = svc.Candidates.Create(first.Candidate(svc.Today()))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, svc.Directory.Candidates.Len())

	second, err := svc.Candidates.Create(models.CandidateInput{Name: "B", Email: "b@x.com", Position: "P"}.Candidate(svc.Today()))
	require.NoError(t, err)

	email := "a@x.com"
	_, err = svc.Candidates.Update(second.ID, models.CandidatePatch{Email: &email}.Apply)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// re-saving a record with its own email is not a conflict
	same := "b@x.com"
	_, err = svc.Candidates.Update(second.ID, models.CandidatePatch{Email: &same}.Apply)
	assert.NoError(t, err)
}

func TestCandidateValidationBeforeConflict(t *testing.T) {
	svc := newTestServices(t, Options{})
	_, err := svc.Candidates.Create(models.CandidateInput{Name: "A", Email: "a@x.com", Position: "P"}.Candidate(svc.Today()))
	require.NoError(t, err)

	_, err = svc.Candidates.Create(models.CandidateInput{Email: "a@x.com", Position: "P"}.Candidate(svc.Today()))
	require.True(t, utils.IsValidation(err))
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestCandidateUpdateValidatesMergedRecord(t *testing.T) {
	svc := newTestServices(t, Options{})
	created, err := svc.Candidates.Create(models.CandidateInput{Name: "A", Email: "a@x.com", Position: "P", Notes: "keep"}.Candidate(svc.Today()))
	require.NoError(t, err)

	bogus := models.CandidateStatus("bogus")
	_, err = svc.Candidates.Update(created.ID, models.CandidatePatch{Status: &bogus}.Apply)
	ce, ok := utils.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Valid status is required"}, ce.Errors)

	got, _ := svc.Candidates.Get(created.ID)
	assert.Equal(t, created, got, "record unchanged after rejected update")

	offer := models.CandidateOffer
	updated, err := svc.Candidates.Update(created.ID, models.CandidatePatch{Status: &offer}.Apply)
	require.NoError(t, err)
	assert.Equal(t, models.CandidateOffer, updated.Status)
	assert.Equal(t, "keep", updated.Notes)
	assert.Equal(t, created.Email, updated.Email)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	svc := newTestServices(t, Options{})
	emp, err := svc.Employees.Create(models.EmployeeInput{Name: "E", Email: "e@x.com", Position: "P", Department: "Ops"}.Employee(svc.Today()))
	require.NoError(t, err)
	assert.Equal(t, models.EmployeeOnboarding, emp.Status)

	_, err = svc.Employees.Delete(emp.ID)
	require.NoError(t, err)

	_, err = svc.Employees.Get(emp.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.Employees.Delete(emp.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTaskServicesFilterByEmployee(t *testing.T) {
	svc := newTestServices(t, Options{})
	for i, emp := range []string{"1", "2", "1"} {
		in := models.TaskInput[models.OnboardingCategory]{
			EmployeeID: emp,
			Title:      fmt.Sprintf("task %d", i),
			Category:   models.OnboardingTraining,
			DueDate:    fmt.Sprintf("2024-02-0%d", 3-i),
		}
		_, err := svc.Onboarding.Create(in.Task())
		require.NoError(t, err)
	}

	res := svc.Onboarding.List(query.Params{Filters: map[string]string{"employeeId": "1"}})
	require.Len(t, res.Items, 2)
	assert.Equal(t, "task 2", res.Items[0].Title, "default order is dueDate ascending")

	_, err := svc.Offboarding.Create(models.TaskInput[models.OffboardingCategory]{
		EmployeeID: "1", Title: "t", Category: "training", DueDate: "2024-02-01",
	}.Task())
	assert.True(t, utils.IsValidation(err), "onboarding categories are not offboarding categories")
}

func TestDocumentUploadLifecycle(t *testing.T) {
	blobs := newMemBlobs()
	svc := newTestServices(t, Options{Blobs: blobs, Extractor: textExtractor{}, Jobs: inlineJobs{}})
	ctx := context.Background()

	doc, err := svc.Documents.Upload(ctx, Upload{
		OriginalName: "Notes.TXT",
		UploadedBy:   "Sarah Johnson",
		Size:         11,
		ContentType:  "text/plain",
		Body:         strings.NewReader("hello world"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Notes.TXT", doc.Name)
	assert.Equal(t, models.DocumentOther, doc.Type)
	assert.Equal(t, "/api/documents/"+doc.ID+"/download", doc.URL)
	assert.True(t, strings.HasSuffix(doc.Filename, ".txt"))
	assert.Equal(t, 1, blobs.count())

	text, err := svc.Documents.Text(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TextReady, text.Status)
	assert.Equal(t, "hello world", text.Text)

	stored, _ := svc.Documents.Get(doc.ID)
	assert.Equal(t, models.TextReady, stored.TextStatus)

	_, rc, err := svc.Documents.Open(ctx, doc.ID)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "hello world", string(body))

	_, err = svc.Documents.Remove(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, blobs.count())
	_, err = svc.Documents.Text(doc.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDocumentUploadRejections(t *testing.T) {
	blobs := newMemBlobs()
	svc := newTestServices(t, Options{Blobs: blobs, Extractor: textExtractor{}, Jobs: inlineJobs{full: true}})
	ctx := context.Background()

	_, err := svc.Documents.Upload(ctx, Upload{OriginalName: "run.exe", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = svc.Documents.Upload(ctx, Upload{OriginalName: "a.pdf", Type: "memo", Body: strings.NewReader("x")})
	assert.True(t, utils.IsValidation(err))
	assert.Equal(t, 0, blobs.count(), "blob removed when metadata is rejected")

	doc, err := svc.Documents.Upload(ctx, Upload{OriginalName: "a.txt", Body: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, models.TextFailed, doc.TextStatus, "full queue marks extraction failed")
	assert.Equal(t, "Unknown", doc.UploadedBy)
}

func TestDocumentWithoutFile(t *testing.T) {
	svc := newTestServices(t, Options{Blobs: newMemBlobs()})
	doc, err := svc.Documents.Create(models.DocumentInput{Name: "Policy", Type: models.DocumentPolicy, URL: "/x"}.Document(svc.Today()))
	require.NoError(t, err)
	assert.Equal(t, "/x", doc.URL)

	_, _, err = svc.Documents.Open(context.Background(), doc.ID)
	assert.ErrorIs(t, err, ErrNoFile)

	text, err := svc.Documents.Text(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TextUnsupported, text.Status)
}

func TestValidatorIsShared(t *testing.T) {
	v := validation.New()
	svc := NewServices(NewDirectory(), Options{Validator: v, Logger: quietLogger()})
	assert.Same(t, v, svc.Candidates.validator)
	assert.Same(t, v, svc.Documents.validator)
}
