package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	noteDomain "github.com/allisson/notes/internal/note/domain"
	"github.com/allisson/notes/internal/note/http/mocks"
	"github.com/allisson/notes/internal/note/usecase"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "notes", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "notes", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestNoteUseCaseWithMetrics(t *testing.T) {
	mockNext := &mocks.MockNoteUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewNoteUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()
	owner, noteID := uuid.New(), uuid.New()
	note := &noteDomain.Note{ID: noteID, UserID: owner}

	t.Run("Create success", func(t *testing.T) {
		input := &noteDomain.CreateNoteInput{Title: "t"}
		mockNext.On("Create", ctx, owner, input).Return(note, nil).Once()
		expectMetrics(mockMetrics, ctx, "create", "success")

		res, err := uc.Create(ctx, owner, input)
		assert.NoError(t, err)
		assert.Equal(t, note, res)
	})

	t.Run("List success", func(t *testing.T) {
		filter := noteDomain.ListNotesFilter{Limit: 10}
		mockNext.On("List", ctx, owner, filter).Return([]*noteDomain.Note{note}, nil).Once()
		expectMetrics(mockMetrics, ctx, "list", "success")

		res, err := uc.List(ctx, owner, filter)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("Get error", func(t *testing.T) {
		mockNext.On("Get", ctx, owner, noteID).Return(nil, noteDomain.ErrNoteNotFound).Once()
		expectMetrics(mockMetrics, ctx, "get", "error")

		_, err := uc.Get(ctx, owner, noteID)
		assert.ErrorIs(t, err, noteDomain.ErrNoteNotFound)
	})

	t.Run("Update success", func(t *testing.T) {
		input := &noteDomain.UpdateNoteInput{}
		mockNext.On("Update", ctx, owner, noteID, input).Return(note, nil).Once()
		expectMetrics(mockMetrics, ctx, "update", "success")

		_, err := uc.Update(ctx, owner, noteID, input)
		assert.NoError(t, err)
	})

	t.Run("Delete error", func(t *testing.T) {
		deleteErr := errors.New("boom")
		mockNext.On("Delete", ctx, owner, noteID).Return(deleteErr).Once()
		expectMetrics(mockMetrics, ctx, "delete", "error")

		assert.ErrorIs(t, uc.Delete(ctx, owner, noteID), deleteErr)
	})

	mockNext.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}
