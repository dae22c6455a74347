package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"clinic-system/internal/entities"
	"clinic-system/internal/repositories"
	apperrors "clinic-system/pkg/errors"
	"clinic-system/pkg/types"
)

// --- файловое хранилище ---

type fakeFileStorage struct {
	saved      []string
	deleted    []string
	failOnSave int // 1-based номер вызова Save, который должен упасть; 0 — не падать
	failDelete bool
	saveCalls  int
}

func (f *fakeFileStorage) Save(file io.Reader, originalFileName, prefix, ownerRef string) (string, error) {
	f.saveCalls++
	if f.failOnSave != 0 && f.saveCalls >= f.failOnSave {
		return "", apperrors.ErrStorageWrite
	}
	path := fmt.Sprintf("%s/%s/2025/08/10/%d-%s", prefix, ownerRef, f.saveCalls, originalFileName)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFileStorage) Open(filePath string) (io.ReadCloser, error) {
	for _, p := range f.saved {
		if p == filePath {
			return io.NopCloser(bytes.NewReader([]byte("content"))), nil
		}
	}
	return nil, apperrors.ErrFileNotFound
}

func (f *fakeFileStorage) Delete(filePath string) error {
	if f.failDelete {
		return fmt.Errorf("диск недоступен")
	}
	f.deleted = append(f.deleted, filePath)
	return nil
}

// --- реестр вложений ---

type fakeAttachmentRepo struct {
	attachments []entities.Attachment
	nextID      uint64
	failCreate  bool
	pathUpdates map[uint64]string
}

func (r *fakeAttachmentRepo) Create(ctx context.Context, tx pgx.Tx, a *entities.Attachment) (uint64, error) {
	if r.failCreate {
		return 0, fmt.Errorf("нарушение ограничения БД")
	}
	r.nextID++
	a.ID = r.nextID
	r.attachments = append(r.attachments, *a)
	return a.ID, nil
}

func (r *fakeAttachmentRepo) FindByID(ctx context.Context, id uint64) (*entities.Attachment, error) {
	for i := range r.attachments {
		if r.attachments[i].ID == id {
			a := r.attachments[i]
			return &a, nil
		}
	}
	return nil, apperrors.ErrAttachmentNotFound
}

// ListByOwner повторяет контракт SQL-репозитория:
// ORDER BY created_at DESC, id DESC.
func (r *fakeAttachmentRepo) ListByOwner(ctx context.Context, ownerRef, category, status string) ([]entities.Attachment, error) {
	var out []entities.Attachment
	for _, a := range r.attachments {
		if a.OwnerRef != ownerRef {
			continue
		}
		if category != "" && a.Category != category {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakeAttachmentRepo) Delete(ctx context.Context, id uint64) error {
	for i := range r.attachments {
		if r.attachments[i].ID == id {
			r.attachments = append(r.attachments[:i], r.attachments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAttachmentNotFound
}

func (r *fakeAttachmentRepo) ListAll(ctx context.Context) ([]entities.Attachment, error) {
	return append([]entities.Attachment(nil), r.attachments...), nil
}

func (r *fakeAttachmentRepo) UpdateStoredPath(ctx context.Context, tx pgx.Tx, id uint64, storedPath string) error {
	for i := range r.attachments {
		if r.attachments[i].ID == id {
			r.attachments[i].StoredPath = storedPath
			if r.pathUpdates == nil {
				r.pathUpdates = make(map[uint64]string)
			}
			r.pathUpdates[id] = storedPath
			return nil
		}
	}
	return apperrors.ErrAttachmentNotFound
}

// --- пациенты ---

type fakePatientRepo struct {
	patients map[string]*entities.Patient // по clinic_ref
}

func newFakePatientRepo(refs ...string) *fakePatientRepo {
	r := &fakePatientRepo{patients: make(map[string]*entities.Patient)}
	for i, ref := range refs {
		r.patients[ref] = &entities.Patient{ID: uint64(i + 1), ClinicRef: ref, FullName: "Тестовый Пациент"}
	}
	return r
}

func (r *fakePatientRepo) Create(ctx context.Context, tx pgx.Tx, p *entities.Patient) (uint64, error) {
	if _, ok := r.patients[p.ClinicRef]; ok {
		return 0, apperrors.ErrDuplicateClinicRef
	}
	p.ID = uint64(len(r.patients) + 1)
	r.patients[p.ClinicRef] = p
	return p.ID, nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, id uint64) (*entities.Patient, error) {
	for _, p := range r.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrPatientNotFound
}

func (r *fakePatientRepo) FindByClinicRef(ctx context.Context, q repositories.Querier, clinicRef string) (*entities.Patient, error) {
	if p, ok := r.patients[clinicRef]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPatientNotFound
}

func (r *fakePatientRepo) GetAll(ctx context.Context, filter types.Filter) ([]entities.Patient, uint64, error) {
	var out []entities.Patient
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, uint64(len(out)), nil
}

func (r *fakePatientRepo) Update(ctx context.Context, id uint64, p *entities.Patient) error {
	return nil
}

func (r *fakePatientRepo) NextClinicRefSeq(ctx context.Context, tx pgx.Tx) (uint64, error) {
	return uint64(len(r.patients) + 1), nil
}

// --- медицинские назначения ---

type fakeOrderRepo struct {
	orders map[uint64]*entities.MedicalOrder
}

func newFakeOrderRepo(ids ...uint64) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[uint64]*entities.MedicalOrder)}
	for _, id := range ids {
		r.orders[id] = &entities.MedicalOrder{ID: id, PatientID: 1, Status: entities.OrderStatusPending}
	}
	return r
}

func (r *fakeOrderRepo) Create(ctx context.Context, tx pgx.Tx, o *entities.MedicalOrder) (uint64, error) {
	id := uint64(len(r.orders) + 1)
	o.ID = id
	if r.orders == nil {
		r.orders = make(map[uint64]*entities.MedicalOrder)
	}
	r.orders[id] = o
	return id, nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, q repositories.Querier, id uint64) (*entities.MedicalOrder, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, apperrors.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByPatient(ctx context.Context, patientID uint64) ([]entities.MedicalOrder, error) {
	var out []entities.MedicalOrder
	for _, o := range r.orders {
		if o.PatientID == patientID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, id uint64, o *entities.MedicalOrder) error {
	if _, ok := r.orders[id]; !ok {
		return apperrors.ErrOrderNotFound
	}
	r.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return apperrors.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := r.orders[id]; !ok {
		return apperrors.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// --- менеджер транзакций ---

type fakeTxManager struct {
	calls    int
	failWith error
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	if m.failWith != nil {
		return m.failWith
	}
	return fn(nil)
}

// --- уведомления ---

type fakeNotifier struct {
	orphanedPaths     []string
	deleteFailedPaths []string
}

func (n *fakeNotifier) NotifyOrphanedBlob(ctx context.Context, storedPath, ownerRef, category string, cause error) {
	n.orphanedPaths = append(n.orphanedPaths, storedPath)
}

func (n *fakeNotifier) NotifyBlobDeleteFailed(ctx context.Context, storedPath string, attachmentID uint64, cause error) {
	n.deleteFailedPaths = append(n.deleteFailedPaths, storedPath)
}

// --- multipart-файлы для конвейера ---

type testFile struct {
	name    string
	content []byte
}

var (
	pngContent = []byte("\x89PNG\r\n\x1a\n" + "0000000000")
	pdfContent = []byte("%PDF-1.4 test")
)

func makeFileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["files"]
}
