// Package domain defines notes and the inputs for creating, listing and
// updating them. Every note belongs to exactly one user.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/notes/internal/errors"
	customValidation "github.com/allisson/notes/internal/validation"
)

// Field limits matching the notes table.
const (
	MaxTitleLength    = 255
	MaxCategoryLength = 100
)

// ErrNoteNotFound is returned for a missing note and for a note owned by
// another user alike.
var ErrNoteNotFound = errors.Wrap(errors.ErrNotFound, "note not found")

// Note is a user's note. Tags is a comma-separated list.
type Note struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Content   string
	Category  *string
	Tags      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagList splits Tags into trimmed, non-empty tags.
func (n *Note) TagList() []string {
	if n.Tags == nil {
		return []string{}
	}

	parts := strings.Split(*n.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CreateNoteInput contains the fields of a new note.
type CreateNoteInput struct {
	Title    string
	Content  string
	Category string
	Tags     *string
}

// Validate checks the required fields and lengths.
func (i *CreateNoteInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&i.Content, validation.Required, customValidation.NotBlank),
		validation.Field(&i.Category,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, MaxCategoryLength),
		),
	)
	return customValidation.WrapValidationError(err)
}

// UpdateNoteInput holds a partial update. Nil fields keep their current value.
type UpdateNoteInput struct {
	Title    *string
	Content  *string
	Category *string
	Tags     *string
}

// Validate checks the fields that are present.
func (i *UpdateNoteInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Title,
			validation.NilOrNotEmpty,
			customValidation.NotBlank,
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&i.Content, validation.NilOrNotEmpty, customValidation.NotBlank),
		validation.Field(&i.Category, validation.Length(0, MaxCategoryLength)),
	)
	return customValidation.WrapValidationError(err)
}

// Apply copies the present fields onto note.
func (i *UpdateNoteInput) Apply(note *Note) {
	if i.Title != nil {
		note.Title = *i.Title
	}
	if i.Content != nil {
		note.Content = *i.Content
	}
	if i.Category != nil {
		note.Category = i.Category
	}
	if i.Tags != nil {
		note.Tags = i.Tags
	}
}

// ListNotesFilter narrows a listing. Empty fields do not filter.
type ListNotesFilter struct {
	// Tag matches notes whose tags contain the value.
	Tag string
	// Query matches notes whose title or content contain the value.
	Query  string
	Offset int
	Limit  int
}
