package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	noteDomain "github.com/allisson/notes/internal/note/domain"
)

func TestCreateNoteRequest_Validate(t *testing.T) {
	valid := CreateNoteRequest{Title: "t", Content: "c", Category: "k"}
	assert.NoError(t, valid.Validate())

	missing := CreateNoteRequest{Title: "t", Content: "c"}
	assert.Error(t, missing.Validate())
}

func TestUpdateNoteRequest_OmittedFieldsStayNil(t *testing.T) {
	var req UpdateNoteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"new"}`), &req))

	input := req.ToInput()
	require.NotNil(t, input.Title)
	assert.Equal(t, "new", *input.Title)
	assert.Nil(t, input.Content)
	assert.Nil(t, input.Category)
	assert.Nil(t, input.Tags)
}

func TestMapNotesToListResponse(t *testing.T) {
	tags := "go, redis"
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	note := &noteDomain.Note{
		ID:        uuid.New(),
		Title:     "t",
		Content:   "c",
		Tags:      &tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	response := MapNotesToListResponse([]*noteDomain.Note{note})
	require.Len(t, response.Data, 1)
	assert.Equal(t, note.ID.String(), response.Data[0].ID)
	assert.Equal(t, []string{"go", "redis"}, response.Data[0].Tags)
	assert.Nil(t, response.Data[0].Category)

	empty := MapNotesToListResponse(nil)
	body, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(body))
}
