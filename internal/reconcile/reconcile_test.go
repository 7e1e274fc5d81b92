package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/Sam-Cowman/E-Commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDiff_NoOverlap(t *testing.T) {
	d := Diff([]int64{1, 2}, []int64{3, 4})

	assert.Equal(t, []int64{3, 4}, d.Add)
	assert.Equal(t, []int64{1, 2}, d.Remove)
	assert.False(t, d.Empty())
}

func TestDiff_PartialOverlap(t *testing.T) {
	// Shared ids must not appear in either slice.
	d := Diff([]int64{1, 2, 3}, []int64{2, 3, 4})

	assert.Equal(t, []int64{4}, d.Add)
	assert.Equal(t, []int64{1}, d.Remove)
}

func TestDiff_Identical(t *testing.T) {
	d := Diff([]int64{5, 6, 7}, []int64{7, 6, 5})

	assert.Empty(t, d.Add)
	assert.Empty(t, d.Remove)
	assert.True(t, d.Empty())
}

func TestDiff_ClearAll(t *testing.T) {
	d := Diff([]int64{1, 2, 3}, nil)

	assert.Empty(t, d.Add)
	assert.Equal(t, []int64{1, 2, 3}, d.Remove)
}

func TestDiff_FromEmpty(t *testing.T) {
	d := Diff(nil, []int64{9, 8})

	assert.Equal(t, []int64{8, 9}, d.Add)
	assert.Empty(t, d.Remove)
}

func TestDiff_DuplicatesCollapse(t *testing.T) {
	d := Diff([]int64{1, 1, 2}, []int64{2, 2, 3, 3})

	assert.Equal(t, []int64{3}, d.Add)
	assert.Equal(t, []int64{1}, d.Remove)
}

func TestDiff_BothEmpty(t *testing.T) {
	d := Diff(nil, nil)

	assert.True(t, d.Empty())
}

// MockProductTagRepository is a mock implementation of ProductTagRepository.
type MockProductTagRepository struct {
	mock.Mock
}

func (m *MockProductTagRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductTagRepository) LockProduct(ctx context.Context, tx pgx.Tx, productID int64) (bool, error) {
	args := m.Called(ctx, tx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductTagRepository) ListTagIDs(ctx context.Context, tx pgx.Tx, productID int64) ([]int64, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockProductTagRepository) DeleteByTagIDs(ctx context.Context, tx pgx.Tx, productID int64, tagIDs []int64) (int64, error) {
	args := m.Called(ctx, tx, productID, tagIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductTagRepository) BulkInsert(ctx context.Context, tx pgx.Tx, productID int64, tagIDs []int64) error {
	args := m.Called(ctx, tx, productID, tagIDs)
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

func TestReconciler_Reconcile_AppliesDelta(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockProductTagRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("LockProduct", ctx, mockTx, int64(1)).Return(true, nil)
	mockRepo.On("ListTagIDs", ctx, mockTx, int64(1)).Return([]int64{1, 2, 3}, nil)
	mockRepo.On("DeleteByTagIDs", ctx, mockTx, int64(1), []int64{1}).Return(int64(1), nil)
	mockRepo.On("BulkInsert", ctx, mockTx, int64(1), []int64{4}).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	r := New(mockRepo, logger)
	err := r.Reconcile(ctx, 1, []int64{2, 3, 4})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestReconciler_Reconcile_NoOpCommitsWithoutWrites(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockProductTagRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("LockProduct", ctx, mockTx, int64(7)).Return(true, nil)
	mockRepo.On("ListTagIDs", ctx, mockTx, int64(7)).Return([]int64{2, 3}, nil)
	mockTx.On("Commit", ctx).Return(nil)

	r := New(mockRepo, logger)
	err := r.Reconcile(ctx, 7, []int64{3, 2})

	require.NoError(t, err)
	mockRepo.AssertNotCalled(t, "DeleteByTagIDs")
	mockRepo.AssertNotCalled(t, "BulkInsert")
	mockTx.AssertNotCalled(t, "Rollback")
	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestReconciler_Reconcile_ClearAll(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockProductTagRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("LockProduct", ctx, mockTx, int64(2)).Return(true, nil)
	mockRepo.On("ListTagIDs", ctx, mockTx, int64(2)).Return([]int64{5, 6}, nil)
	mockRepo.On("DeleteByTagIDs", ctx, mockTx, int64(2), []int64{5, 6}).Return(int64(2), nil)
	mockRepo.On("BulkInsert", ctx, mockTx, int64(2), []int64(nil)).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	r := New(mockRepo, logger)
	err := r.Reconcile(ctx, 2, []int64{})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestReconciler_Reconcile_ProductNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockProductTagRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("LockProduct", ctx, mockTx, int64(99)).Return(false, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	r := New(mockRepo, logger)
	err := r.Reconcile(ctx, 99, []int64{1})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	mockRepo.AssertNotCalled(t, "ListTagIDs")
	mockTx.AssertNotCalled(t, "Commit")
	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestReconciler_Reconcile_InsertFailureRollsBack(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockProductTagRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("LockProduct", ctx, mockTx, int64(3)).Return(true, nil)
	mockRepo.On("ListTagIDs", ctx, mockTx, int64(3)).Return([]int64{1}, nil)
	mockRepo.On("DeleteByTagIDs", ctx, mockTx, int64(3), []int64{1}).Return(int64(1), nil)
	mockRepo.On("BulkInsert", ctx, mockTx, int64(3), []int64{999}).Return(model.ErrReferentialViolation)
	mockTx.On("Rollback", ctx).Return(nil)

	r := New(mockRepo, logger)
	err := r.Reconcile(ctx, 3, []int64{999})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrReferentialViolation)
	mockTx.AssertNotCalled(t, "Commit")
	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestReconciler_Reconcile_BeginTxFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockProductTagRepository)
	mockRepo.On("BeginTx", ctx).Return(nil, errors.New("connection refused"))

	r := New(mockRepo, logger)
	err := r.Reconcile(ctx, 1, []int64{1})

	require.Error(t, err)
	mockRepo.AssertExpectations(t)
}
