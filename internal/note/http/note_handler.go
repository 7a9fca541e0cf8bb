// Package http provides HTTP handlers for the notes of the authenticated user.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/notes/internal/auth/http"
	apperrors "github.com/allisson/notes/internal/errors"
	"github.com/allisson/notes/internal/httputil"
	noteDomain "github.com/allisson/notes/internal/note/domain"
	"github.com/allisson/notes/internal/note/http/dto"
	noteUseCase "github.com/allisson/notes/internal/note/usecase"
	customValidation "github.com/allisson/notes/internal/validation"
)

// NoteHandler handles HTTP requests for note management. Every route sits
// behind the authentication middleware and acts on the caller's notes only.
type NoteHandler struct {
	noteUseCase noteUseCase.NoteUseCase
	logger      *slog.Logger
}

// NewNoteHandler creates a new note handler with required dependencies.
func NewNoteHandler(noteUseCase noteUseCase.NoteUseCase, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteUseCase: noteUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a note.
// POST /notes - Returns 201 Created with the note.
func (h *NoteHandler) CreateHandler(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	note, err := h.noteUseCase.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapNoteToResponse(note))
}

// ListHandler lists notes.
// GET /notes?tag=&q=&offset=0&limit=50 - Returns 200 OK, most recently updated first.
func (h *NoteHandler) ListHandler(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	page, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := noteDomain.ListNotesFilter{
		Tag:    c.Query("tag"),
		Query:  c.Query("q"),
		Offset: page.Offset,
		Limit:  page.Limit,
	}

	notes, err := h.noteUseCase.List(c.Request.Context(), userID, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNotesToListResponse(notes))
}

// GetHandler returns one note.
// GET /notes/:id - Returns 404 for unknown ids and for notes of other users.
func (h *NoteHandler) GetHandler(c *gin.Context) {
	userID, noteID, ok := h.requireNote(c)
	if !ok {
		return
	}

	note, err := h.noteUseCase.Get(c.Request.Context(), userID, noteID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNoteToResponse(note))
}

// UpdateHandler applies a partial update.
// PUT /notes/:id - Omitted fields keep their value. Returns 200 OK with the note.
func (h *NoteHandler) UpdateHandler(c *gin.Context) {
	userID, noteID, ok := h.requireNote(c)
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	note, err := h.noteUseCase.Update(c.Request.Context(), userID, noteID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNoteToResponse(note))
}

// DeleteHandler removes a note.
// DELETE /notes/:id - Returns 204 No Content.
func (h *NoteHandler) DeleteHandler(c *gin.Context) {
	userID, noteID, ok := h.requireNote(c)
	if !ok {
		return
	}

	if err := h.noteUseCase.Delete(c.Request.Context(), userID, noteID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NoteHandler) requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}
	return userID, true
}

// requireNote resolves the caller and the note id. A malformed id cannot name
// any note, so it is reported as not found.
func (h *NoteHandler) requireNote(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := h.requireUser(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, noteDomain.ErrNoteNotFound, h.logger)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, noteID, true
}
