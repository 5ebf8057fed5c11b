package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/veyselka/AI-LIB/internal/config"
	"github.com/veyselka/AI-LIB/internal/models"
	"github.com/veyselka/AI-LIB/internal/utils"
)

// fakeRepo records documents in memory and tracks status transitions.
type fakeRepo struct {
	mu        sync.Mutex
	docs      map[string]*models.Document
	users     map[string]*models.User
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[string]*models.Document),
		users: make(map[string]*models.User),
	}
}

func (r *fakeRepo) Create(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, ownerID, id string) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.OwnerID != ownerID {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Document{}
	for _, doc := range r.docs {
		if doc.OwnerID == ownerID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateResult(ctx context.Context, id, summary, questions string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.Status != models.StatusProcessing {
		return errors.New("not found or terminal")
	}
	doc.Status = models.StatusCompleted
	doc.Summary = &summary
	doc.Questions = &questions
	return nil
}

func (r *fakeRepo) UpdateFailure(ctx context.Context, id, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.Status != models.StatusProcessing {
		return errors.New("not found or terminal")
	}
	doc.Status = models.StatusFailed
	doc.Error = &errMsg
	return nil
}

func (r *fakeRepo) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Download(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[key], nil
}

type fakeEnricher struct {
	summary      string
	questions    string
	summaryErr   error
	questionsErr error
}

func (e *fakeEnricher) Summarize(ctx context.Context, text, title string) (string, error) {
	if e.summaryErr != nil {
		return "", e.summaryErr
	}
	return e.summary, nil
}

func (e *fakeEnricher) GenerateQuestions(ctx context.Context, text, title string) (string, error) {
	if e.questionsErr != nil {
		return "", e.questionsErr
	}
	return e.questions, nil
}

func testConfig() *config.Config {
	return &config.Config{MaxFileSize: 20 << 20}
}

func newTestService(repo *fakeRepo, store *fakeStorage, enricher *fakeEnricher, cfg *config.Config) DocumentService {
	return NewService(repo, store, enricher, cfg, utils.NewLogger("error"))
}

// docxBytes builds a minimal DOCX archive containing the given paragraph.
func docxBytes(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func uploadReq(t *testing.T, text string) *models.UploadRequest {
	return &models.UploadRequest{
		File:     docxBytes(t, text),
		FileName: "notes.docx",
		FileType: models.FileTypeDOCX,
	}
}

func TestUploadDocumentCompletes(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStorage()
	enricher := &fakeEnricher{summary: "the summary", questions: `{"questions":[]}`}
	svc := newTestService(repo, store, enricher, testConfig())

	resp, err := svc.UploadDocument(context.Background(), "user-1", uploadReq(t, "Course notes content"))
	if err != nil {
		t.Fatalf("UploadDocument returned error: %v", err)
	}

	if resp.ID == "" {
		t.Fatal("response has no document id")
	}
	if resp.Summary != "the summary" {
		t.Errorf("Summary = %q", resp.Summary)
	}

	doc := repo.docs[resp.ID]
	if doc == nil {
		t.Fatal("record not persisted")
	}
	if doc.Status != models.StatusCompleted {
		t.Errorf("status = %q, want COMPLETED", doc.Status)
	}
	if doc.RawText == "" {
		t.Error("rawText not persisted")
	}
	if doc.OwnerID != "user-1" {
		t.Errorf("ownerID = %q", doc.OwnerID)
	}
	if doc.StorageKey == "" {
		t.Error("storage key not set")
	}
	if _, ok := store.objects[doc.StorageKey]; !ok {
		t.Error("binary not stored under the storage key")
	}
}

func TestUploadDocumentMissingOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeStorage(), &fakeEnricher{}, testConfig())

	_, err := svc.UploadDocument(context.Background(), "", uploadReq(t, "content"))
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != utils.CodeAuthentication {
		t.Fatalf("err = %v, want authentication failure", err)
	}
	if len(repo.docs) != 0 {
		t.Error("record created despite missing owner")
	}
}

func TestUploadDocumentUnsupportedFormat(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeStorage(), &fakeEnricher{}, testConfig())

	req := &models.UploadRequest{File: []byte("hello"), FileName: "notes.txt", FileType: models.FileType("TXT")}
	_, err := svc.UploadDocument(context.Background(), "user-1", req)
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != utils.CodeValidation {
		t.Fatalf("err = %v, want validation failure", err)
	}
	if len(repo.docs) != 0 {
		t.Error("record created for unsupported format")
	}
}

func TestUploadDocumentCorruptFile(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeStorage(), &fakeEnricher{}, testConfig())

	req := &models.UploadRequest{File: []byte("not a zip"), FileName: "notes.docx", FileType: models.FileTypeDOCX}
	_, err := svc.UploadDocument(context.Background(), "user-1", req)
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != utils.CodeExtraction {
		t.Fatalf("err = %v, want extraction failure", err)
	}
	if len(repo.docs) != 0 {
		t.Error("record created for unparsable file")
	}
}

func TestUploadDocumentEmptyText(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeStorage(), &fakeEnricher{}, testConfig())

	_, err := svc.UploadDocument(context.Background(), "user-1", uploadReq(t, ""))
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != utils.CodeValidation {
		t.Fatalf("err = %v, want validation failure", err)
	}
	if len(repo.docs) != 0 {
		t.Error("record created despite empty text")
	}
}

func TestUploadDocumentEnrichmentFailure(t *testing.T) {
	repo := newFakeRepo()
	enricher := &fakeEnricher{summaryErr: errors.New("service unreachable")}
	svc := newTestService(repo, newFakeStorage(), enricher, testConfig())

	_, err := svc.UploadDocument(context.Background(), "user-1", uploadReq(t, "content"))
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != utils.CodeEnrichment {
		t.Fatalf("err = %v, want enrichment failure", err)
	}

	// The record id must still reach the caller.
	if appErr.DocumentID == "" {
		t.Fatal("enrichment failure lost the document id")
	}

	doc := repo.docs[appErr.DocumentID]
	if doc == nil {
		t.Fatal("record missing after enrichment failure")
	}
	if doc.Status != models.StatusFailed {
		t.Errorf("status = %q, want FAILED", doc.Status)
	}
	if doc.Error == nil || *doc.Error == "" {
		t.Error("error message not persisted")
	}
	if doc.RawText == "" {
		t.Error("rawText must survive the failure")
	}
}

func TestUploadDocumentQuestionsFailure(t *testing.T) {
	repo := newFakeRepo()
	enricher := &fakeEnricher{summary: "ok", questionsErr: errors.New("bad payload")}
	svc := newTestService(repo, newFakeStorage(), enricher, testConfig())

	_, err := svc.UploadDocument(context.Background(), "user-1", uploadReq(t, "content"))
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != utils.CodeEnrichment {
		t.Fatalf("err = %v, want enrichment failure", err)
	}
	if repo.docs[appErr.DocumentID].Status != models.StatusFailed {
		t.Error("record not FAILED after questions failure")
	}
}

func TestUploadDocumentStoreCreateFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("db down")
	svc := newTestService(repo, newFakeStorage(), &fakeEnricher{}, testConfig())

	_, err := svc.UploadDocument(context.Background(), "user-1", uploadReq(t, "content"))
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != utils.CodeStore {
		t.Fatalf("err = %v, want store failure", err)
	}
}

func TestUploadDocumentParallelEnrichment(t *testing.T) {
	repo := newFakeRepo()
	cfg := testConfig()
	cfg.ParallelEnrichment = true
	enricher := &fakeEnricher{summary: "s", questions: "q"}
	svc := newTestService(repo, newFakeStorage(), enricher, cfg)

	resp, err := svc.UploadDocument(context.Background(), "user-1", uploadReq(t, "content"))
	if err != nil {
		t.Fatalf("UploadDocument returned error: %v", err)
	}
	if resp.Summary != "s" || resp.Questions != "q" {
		t.Errorf("parallel enrichment lost a result: %+v", resp)
	}
}

func TestUploadDocumentConcurrentSameOwner(t *testing.T) {
	repo := newFakeRepo()
	enricher := &fakeEnricher{summary: "s", questions: "q"}
	svc := newTestService(repo, newFakeStorage(), enricher, testConfig())

	const n = 4
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := svc.UploadDocument(context.Background(), "user-1", uploadReq(t, "content"))
			if err != nil {
				t.Errorf("upload %d failed: %v", i, err)
				return
			}
			ids[i] = resp.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, id := range ids {
		if id == "" {
			continue
		}
		if seen[id] {
			t.Fatalf("duplicate document id %s", id)
		}
		seen[id] = true

		if got := repo.docs[id].Status; got != models.StatusCompleted {
			t.Errorf("document %s status = %q, want COMPLETED", id, got)
		}
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct ids, got %d", n, len(seen))
	}
}

func TestListDocumentsEmpty(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeStorage(), &fakeEnricher{}, testConfig())

	docs, err := svc.ListDocuments(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListDocuments returned error: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Errorf("want empty non-nil slice, got %#v", docs)
	}
}

func TestGetDocumentWrongOwner(t *testing.T) {
	repo := newFakeRepo()
	enricher := &fakeEnricher{summary: "s", questions: "q"}
	svc := newTestService(repo, newFakeStorage(), enricher, testConfig())

	resp, err := svc.UploadDocument(context.Background(), "user-1", uploadReq(t, "content"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	_, err = svc.GetDocument(context.Background(), "user-2", resp.ID)
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != utils.CodeNotFound {
		t.Fatalf("err = %v, want not found for foreign owner", err)
	}
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeStorage(), &fakeEnricher{}, testConfig())

	user := &models.User{ID: "uid-1", FullName: "Ada", Email: "ada@example.com"}
	if err := svc.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser returned error: %v", err)
	}
	if repo.users["uid-1"] == nil {
		t.Error("user profile not persisted")
	}
}
