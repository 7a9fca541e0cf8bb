package dto

import (
	"time"

	noteDomain "github.com/allisson/notes/internal/note/domain"
)

// NoteResponse represents a note in API responses.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  *string   `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapNoteToResponse converts a domain note to an API response.
func MapNoteToResponse(note *noteDomain.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID.String(),
		Title:     note.Title,
		Content:   note.Content,
		Category:  note.Category,
		Tags:      note.TagList(),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// ListNotesResponse represents a paginated list of notes in API responses.
type ListNotesResponse struct {
	Data []NoteResponse `json:"data"`
}

// MapNotesToListResponse converts a slice of domain notes to a list response.
func MapNotesToListResponse(notes []*noteDomain.Note) ListNotesResponse {
	data := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		data = append(data, MapNoteToResponse(note))
	}

	return ListNotesResponse{
		Data: data,
	}
}
