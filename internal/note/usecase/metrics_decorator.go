package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/notes/internal/metrics"
	noteDomain "github.com/allisson/notes/internal/note/domain"
)

// noteUseCaseWithMetrics decorates NoteUseCase with metrics instrumentation.
type noteUseCaseWithMetrics struct {
	next    NoteUseCase
	metrics metrics.BusinessMetrics
}

// NewNoteUseCaseWithMetrics wraps a NoteUseCase with metrics recording.
func NewNoteUseCaseWithMetrics(useCase NoteUseCase, m metrics.BusinessMetrics) NoteUseCase {
	return &noteUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for note creation.
func (n *noteUseCaseWithMetrics) Create(
	ctx context.Context,
	userID uuid.UUID,
	input *noteDomain.CreateNoteInput,
) (*noteDomain.Note, error) {
	start := time.Now()
	note, err := n.next.Create(ctx, userID, input)
	n.record(ctx, "create", start, err)
	return note, err
}

// List records metrics for note listings.
func (n *noteUseCaseWithMetrics) List(
	ctx context.Context,
	userID uuid.UUID,
	filter noteDomain.ListNotesFilter,
) ([]*noteDomain.Note, error) {
	start := time.Now()
	notes, err := n.next.List(ctx, userID, filter)
	n.record(ctx, "list", start, err)
	return notes, err
}

// Get records metrics for note reads.
func (n *noteUseCaseWithMetrics) Get(ctx context.Context, userID, noteID uuid.UUID) (*noteDomain.Note, error) {
	start := time.Now()
	note, err := n.next.Get(ctx, userID, noteID)
	n.record(ctx, "get", start, err)
	return note, err
}

// Update records metrics for note updates.
func (n *noteUseCaseWithMetrics) Update(
	ctx context.Context,
	userID, noteID uuid.UUID,
	input *noteDomain.UpdateNoteInput,
) (*noteDomain.Note, error) {
	start := time.Now()
	note, err := n.next.Update(ctx, userID, noteID, input)
	n.record(ctx, "update", start, err)
	return note, err
}

// Delete records metrics for note deletion.
func (n *noteUseCaseWithMetrics) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	start := time.Now()
	err := n.next.Delete(ctx, userID, noteID)
	n.record(ctx, "delete", start, err)
	return err
}

func (n *noteUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	n.metrics.RecordOperation(ctx, "notes", operation, status)
	n.metrics.RecordDuration(ctx, "notes", operation, time.Since(start), status)
}
