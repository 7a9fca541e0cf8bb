// Package usecase implements note management for authenticated users.
package usecase

import (
	"context"

	"github.com/google/uuid"

	noteDomain "github.com/allisson/notes/internal/note/domain"
)

// NoteRepository defines the note persistence operations. Every method is
// scoped by owner and returns ErrNoteNotFound for notes of other users.
type NoteRepository interface {
	Create(ctx context.Context, note *noteDomain.Note) error
	Get(ctx context.Context, userID, noteID uuid.UUID) (*noteDomain.Note, error)
	List(ctx context.Context, userID uuid.UUID, filter noteDomain.ListNotesFilter) ([]*noteDomain.Note, error)
	Update(ctx context.Context, note *noteDomain.Note) error
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

// NoteUseCase defines the note operations available to an authenticated user.
type NoteUseCase interface {
	// Create validates the input and stores a new note owned by userID.
	Create(ctx context.Context, userID uuid.UUID, input *noteDomain.CreateNoteInput) (*noteDomain.Note, error)

	// List returns the notes of userID matching filter, most recently updated first.
	List(ctx context.Context, userID uuid.UUID, filter noteDomain.ListNotesFilter) ([]*noteDomain.Note, error)

	// Get returns a note owned by userID.
	Get(ctx context.Context, userID, noteID uuid.UUID) (*noteDomain.Note, error)

	// Update applies a partial update to a note owned by userID.
	Update(
		ctx context.Context,
		userID, noteID uuid.UUID,
		input *noteDomain.UpdateNoteInput,
	) (*noteDomain.Note, error)

	// Delete removes a note owned by userID.
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}
