package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-system/internal/entities"
	"clinic-system/pkg/filestorage"
)

func newRepairFixture(paths ...string) (RepairServiceInterface, *fakeAttachmentRepo, *fakeTxManager) {
	repo := &fakeAttachmentRepo{}
	for _, p := range paths {
		repo.nextID++
		repo.attachments = append(repo.attachments, entities.Attachment{ID: repo.nextID, StoredPath: p})
	}
	txManager := &fakeTxManager{}
	svc := NewRepairService(repo, txManager, filestorage.NewDefaultSanitizer(), zap.NewNop())
	return svc, repo, txManager
}

func TestRepairService_RepairPaths(t *testing.T) {
	svc, repo, txManager := newRepairFixture(
		"uploads/reports/CRN-000001/2025/08/10/a.pdf",
		"reports/CRN-000002/2025/08/10/b.pdf",
		"private/uploads/admissions/CRN-000003/2025/08/10/c.png",
		"uploads/uploads/reports/CRN-000004/2025/08/10/d.pdf",
	)

	res, err := svc.RepairPaths(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Scanned)
	assert.Equal(t, 3, res.Repaired)
	assert.Equal(t, 1, txManager.calls)

	assert.Equal(t, "reports/CRN-000001/2025/08/10/a.pdf", repo.attachments[0].StoredPath)
	assert.Equal(t, "reports/CRN-000002/2025/08/10/b.pdf", repo.attachments[1].StoredPath)
	assert.Equal(t, "admissions/CRN-000003/2025/08/10/c.png", repo.attachments[2].StoredPath)
	assert.Equal(t, "reports/CRN-000004/2025/08/10/d.pdf", repo.attachments[3].StoredPath)
}

// Путь с продублированным корнем чинится за один запуск: второй запуск
// уже ничего не находит.
func TestRepairService_DoubledRootSinglePass(t *testing.T) {
	svc, repo, txManager := newRepairFixture(
		"uploads/uploads/reports/CRN-000001/2025/08/10/a.pdf",
	)

	first, err := svc.RepairPaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Repaired)
	assert.Equal(t, "reports/CRN-000001/2025/08/10/a.pdf", repo.attachments[0].StoredPath)

	second, err := svc.RepairPaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Repaired)
	assert.Equal(t, 1, txManager.calls)
}

// Повторный запуск на уже починенном реестре ничего не меняет
// и не открывает транзакцию.
func TestRepairService_Idempotent(t *testing.T) {
	svc, _, txManager := newRepairFixture(
		"uploads/reports/CRN-000001/2025/08/10/a.pdf",
	)

	first, err := svc.RepairPaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Repaired)

	second, err := svc.RepairPaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Scanned)
	assert.Equal(t, 0, second.Repaired)
	assert.Equal(t, 1, txManager.calls)
}

func TestRepairService_EmptyRegistry(t *testing.T) {
	svc, _, txManager := newRepairFixture()

	res, err := svc.RepairPaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Scanned)
	assert.Equal(t, 0, res.Repaired)
	assert.Zero(t, txManager.calls)
}
