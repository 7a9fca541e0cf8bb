// Package repository provides data persistence implementations for notes.
//
// Every statement filters by both the note id and the owner id, so a note that
// belongs to someone else is indistinguishable from one that does not exist.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/notes/internal/database"
	apperrors "github.com/allisson/notes/internal/errors"
	"github.com/allisson/notes/internal/note/domain"
)

// PostgreSQLNoteRepository handles note persistence for PostgreSQL.
type PostgreSQLNoteRepository struct {
	db *sql.DB
}

// NewPostgreSQLNoteRepository creates a new PostgreSQLNoteRepository.
func NewPostgreSQLNoteRepository(db *sql.DB) *PostgreSQLNoteRepository {
	return &PostgreSQLNoteRepository{
		db: db,
	}
}

// Create inserts a new note.
func (r *PostgreSQLNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO notes (id, user_id, title, content, category, tags, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		note.ID,
		note.UserID,
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
func (r *PostgreSQLNoteRepository) Get(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, title, content, category, tags, created_at, updated_at
			  FROM notes WHERE id = $1 AND user_id = $2`

	var note domain.Note
	err := querier.QueryRowContext(ctx, query, noteID, userID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.Category,
		&note.Tags,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get note")
	}
	return &note, nil
}

// List returns the notes owned by userID, most recently updated first.
func (r *PostgreSQLNoteRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListNotesFilter,
) ([]*domain.Note, error) {
	querier := database.GetTx(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Tag != "" {
		args = append(args, "%"+escapeLike(filter.Tag)+"%")
		conditions = append(conditions, fmt.Sprintf("tags LIKE $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		conditions = append(conditions, fmt.Sprintf("(title LIKE $%d OR content LIKE $%d)", len(args), len(args)))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT id, user_id, title, content, category, tags, created_at, updated_at
			  FROM notes WHERE %s
			  ORDER BY updated_at DESC, id DESC
			  LIMIT $%d OFFSET $%d`, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list notes")
	}
	defer func() {
		_ = rows.Close()
	}()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Content,
			&note.Category,
			&note.Tags,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan note")
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate notes")
	}

	return notes, nil
}

// Update writes every mutable field of a note owned by note.UserID.
func (r *PostgreSQLNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE notes
			  SET title = $1, content = $2, category = $3, tags = $4, updated_at = $5
			  WHERE id = $6 AND user_id = $7`

	result, err := querier.ExecContext(
		ctx,
		query,
		note.Title,
		note.Content,
		note.Category,
		note.Tags,
		note.UpdatedAt,
		note.ID,
		note.UserID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update note")
	}
	return requireAffected(result)
}

// Delete removes a note owned by userID.
func (r *PostgreSQLNoteRepository) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, noteID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete note")
	}
	return requireAffected(result)
}

// requireAffected maps a statement that touched no rows to ErrNoteNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// escapeLike escapes LIKE wildcards so filters match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
