package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/notes/internal/database"
	apperrors "github.com/allisson/notes/internal/errors"
	"github.com/allisson/notes/internal/note/domain"
)

// MySQLNoteRepository handles note persistence for MySQL. Ids are stored as BINARY(16).
type MySQLNoteRepository struct {
	db *sql.DB
}

// NewMySQLNoteRepository creates a new MySQLNoteRepository.
func NewMySQLNoteRepository(db *sql.DB) *MySQLNoteRepository {
	return &MySQLNoteRepository{
		db: db,
	}
}

// Create inserts a new note.
func (r *MySQLNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	querier := database.GetTx(ctx, r.db)

	ids, err := marshalIDs(note.ID, note.UserID)
	if err != nil {
		return err
	}

	query := `INSERT INTO notes (id, user_id, title, content, category, tags, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		ids[0],
		ids[1],
		note.Title,
		note.Content,
		note.Category,
		note.Tags,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create note")
	}
	return nil
}

// Get retrieves a note owned by userID.
func (r *MySQLNoteRepository) Get(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	querier := database.GetTx(ctx, r.db)

	ids, err := marshalIDs(noteID, userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, title, content, category, tags, created_at, updated_at
			  FROM notes WHERE id = ? AND user_id = ?`

	note, err := scanMySQLNote(querier.QueryRowContext(ctx, query, ids[0], ids[1]))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get note")
	}
	return note, nil
}

// List returns the notes owned by userID, most recently updated first.
func (r *MySQLNoteRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListNotesFilter,
) ([]*domain.Note, error) {
	querier := database.GetTx(ctx, r.db)

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	conditions := []string{"user_id = ?"}
	args := []any{userIDBytes}

	if filter.Tag != "" {
		conditions = append(conditions, "tags LIKE ?")
		args = append(args, "%"+escapeLike(filter.Tag)+"%")
	}
	if filter.Query != "" {
		pattern := "%" + escapeLike(filter.Query) + "%"
		conditions = append(conditions, "(title LIKE ? OR content LIKE ?)")
		args = append(args, pattern, pattern)
	}
	args = append(args, filter.Limit, filter.Offset)

	query := `SELECT id, user_id, title, content, category, tags, created_at, updated_at
			  FROM notes WHERE ` + strings.Join(conditions, " AND ") + `
			  ORDER BY updated_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list notes")
	}
	defer func() {
		_ = rows.Close()
	}()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		note, err := scanMySQLNote(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan note")
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate notes")
	}

	return notes, nil
}

// Update writes every mutable field of a note owned by note.UserID.
func (r *MySQLNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	querier := database.GetTx(ctx, r.db)

	ids, err := marshalIDs(note.ID, note.UserID)
	if err != nil {
		return err
	}

	query := `UPDATE notes
			  SET title = ?, content = ?, category = ?, tags = ?, updated_at = ?
			  WHERE id = ? AND user_id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		note.Title,
		note.Content,
		note.Category,
		note.Tags,
		note.UpdatedAt,
		ids[0],
		ids[1],
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update note")
	}
	return requireAffected(result)
}

// Delete removes a note owned by userID.
func (r *MySQLNoteRepository) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	ids, err := marshalIDs(noteID, userID)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, ids[0], ids[1])
	if err != nil {
		return apperrors.Wrap(err, "failed to delete note")
	}
	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLNote(row rowScanner) (*domain.Note, error) {
	var note domain.Note
	var idBytes, userIDBytes []byte

	if err := row.Scan(
		&idBytes,
		&userIDBytes,
		&note.Title,
		&note.Content,
		&note.Category,
		&note.Tags,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := note.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := note.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &note, nil
}

// marshalIDs converts UUIDs to the BINARY(16) form MySQL stores.
func marshalIDs(ids ...uuid.UUID) ([][]byte, error) {
	out := make([][]byte, 0, len(ids))
	for _, id := range ids {
		b, err := id.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal UUID")
		}
		out = append(out, b)
	}
	return out, nil
}
