// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	noteDomain "github.com/allisson/notes/internal/note/domain"
)

// CreateNoteRequest contains the fields of a new note.
type CreateNoteRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Tags     *string `json:"tags,omitempty"`
}

// Validate checks that the required fields are present. Length and blank
// checks run in the use case.
func (r *CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Category, validation.Required),
	)
}

// ToInput converts the request to the use case input.
func (r *CreateNoteRequest) ToInput() *noteDomain.CreateNoteInput {
	return &noteDomain.CreateNoteInput{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		Tags:     r.Tags,
	}
}

// UpdateNoteRequest holds a partial update. Omitted fields keep their value.
type UpdateNoteRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
	Tags     *string `json:"tags,omitempty"`
}

// ToInput converts the request to the use case input.
func (r *UpdateNoteRequest) ToInput() *noteDomain.UpdateNoteInput {
	return &noteDomain.UpdateNoteInput{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		Tags:     r.Tags,
	}
}
