// Package mocks provides mock implementations for testing note HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	noteDomain "github.com/allisson/notes/internal/note/domain"
)

// MockNoteUseCase is a mock implementation of NoteUseCase for testing.
type MockNoteUseCase struct {
	mock.Mock
}

// Create mocks the Create method of NoteUseCase.
func (m *MockNoteUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	input *noteDomain.CreateNoteInput,
) (*noteDomain.Note, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*noteDomain.Note), args.Error(1)
}

// List mocks the List method of NoteUseCase.
func (m *MockNoteUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	filter noteDomain.ListNotesFilter,
) ([]*noteDomain.Note, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*noteDomain.Note), args.Error(1)
}

// Get mocks the Get method of NoteUseCase.
func (m *MockNoteUseCase) Get(ctx context.Context, userID, noteID uuid.UUID) (*noteDomain.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*noteDomain.Note), args.Error(1)
}

// Update mocks the Update method of NoteUseCase.
func (m *MockNoteUseCase) Update(
	ctx context.Context,
	userID, noteID uuid.UUID,
	input *noteDomain.UpdateNoteInput,
) (*noteDomain.Note, error) {
	args := m.Called(ctx, userID, noteID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*noteDomain.Note), args.Error(1)
}

// Delete mocks the Delete method of NoteUseCase.
func (m *MockNoteUseCase) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	args := m.Called(ctx, userID, noteID)
	return args.Error(0)
}
