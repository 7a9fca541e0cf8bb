package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/notes/internal/database"
	apperrors "github.com/allisson/notes/internal/errors"
	noteDomain "github.com/allisson/notes/internal/note/domain"
)

// noteUseCase implements NoteUseCase.
type noteUseCase struct {
	txManager database.TxManager
	noteRepo  NoteRepository
	now       func() time.Time
}

// NewNoteUseCase creates a new NoteUseCase.
func NewNoteUseCase(txManager database.TxManager, noteRepo NoteRepository) NoteUseCase {
	return &noteUseCase{
		txManager: txManager,
		noteRepo:  noteRepo,
		now:       time.Now,
	}
}

// Create stores a new note owned by userID.
func (n *noteUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	input *noteDomain.CreateNoteInput,
) (*noteDomain.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate note id")
	}

	category := strings.TrimSpace(input.Category)
	now := n.now().UTC()
	note := &noteDomain.Note{
		ID:        id,
		UserID:    userID,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Category:  &category,
		Tags:      normalizeTags(input.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := n.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// List returns the notes of userID.
func (n *noteUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	filter noteDomain.ListNotesFilter,
) ([]*noteDomain.Note, error) {
	filter.Tag = strings.TrimSpace(filter.Tag)
	filter.Query = strings.TrimSpace(filter.Query)
	return n.noteRepo.List(ctx, userID, filter)
}

// Get returns a note owned by userID.
func (n *noteUseCase) Get(ctx context.Context, userID, noteID uuid.UUID) (*noteDomain.Note, error) {
	return n.noteRepo.Get(ctx, userID, noteID)
}

// Update reads, patches and writes the note inside one transaction.
func (n *noteUseCase) Update(
	ctx context.Context,
	userID, noteID uuid.UUID,
	input *noteDomain.UpdateNoteInput,
) (*noteDomain.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *noteDomain.Note
	err := n.txManager.WithTx(ctx, func(ctx context.Context) error {
		note, err := n.noteRepo.Get(ctx, userID, noteID)
		if err != nil {
			return err
		}

		patch := *input
		patch.Tags = normalizeTags(input.Tags)
		patch.Apply(note)
		note.UpdatedAt = n.now().UTC()

		if err := n.noteRepo.Update(ctx, note); err != nil {
			return err
		}
		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a note owned by userID.
func (n *noteUseCase) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	return n.noteRepo.Delete(ctx, userID, noteID)
}

// normalizeTags trims every tag and drops empty ones. An explicit empty list
// is kept as an empty string so an update can clear the tags.
func normalizeTags(tags *string) *string {
	if tags == nil {
		return nil
	}

	parts := strings.Split(*tags, ",")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			kept = append(kept, tag)
		}
	}

	joined := strings.Join(kept, ",")
	return &joined
}
