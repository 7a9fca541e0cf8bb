package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/notes/internal/note/domain"
	"github.com/allisson/notes/internal/testutil"
)

func TestMySQLNoteRepository_CRUD(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLNoteRepository(db)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db, "mysql", "owner")
	other := testutil.CreateTestUser(t, db, "mysql", "other")

	note := newTestNote(owner, "first")
	require.NoError(t, repo.Create(ctx, note))

	got, err := repo.Get(ctx, owner, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)
	assert.Equal(t, owner, got.UserID)

	_, err = repo.Get(ctx, other, note.ID)
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, other, note.ID), domain.ErrNoteNotFound)

	notes, err := repo.List(ctx, owner, domain.ListNotesFilter{Tag: "go", Limit: 50})
	require.NoError(t, err)
	require.Len(t, notes, 1)

	note.Content = "updated"
	note.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, note))

	require.NoError(t, repo.Delete(ctx, owner, note.ID))
	_, err = repo.Get(ctx, owner, note.ID)
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestMySQLNoteRepository_Get_Mock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLNoteRepository(db)
	owner := uuid.New()
	note := newTestNote(owner, "mocked")
	idBytes, _ := note.ID.MarshalBinary()
	ownerBytes, _ := owner.MarshalBinary()

	mock.ExpectQuery("FROM notes WHERE id = \\? AND user_id = \\?").
		WithArgs(idBytes, ownerBytes).
		WillReturnRows(sqlmock.NewRows(noteColumns).AddRow(
			idBytes, ownerBytes, note.Title, note.Content, nil, *note.Tags, note.CreatedAt, note.UpdatedAt,
		))

	got, err := repo.Get(context.Background(), owner, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)
	assert.Equal(t, owner, got.UserID)
	assert.Nil(t, got.Category)
	assert.Equal(t, []string{"go", "redis"}, got.TagList())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLNoteRepository_Update_Mock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLNoteRepository(db)
	note := newTestNote(uuid.New(), "mocked")

	mock.ExpectExec("UPDATE notes").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), note), domain.ErrNoteNotFound)

	mock.ExpectExec("UPDATE notes").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Update(context.Background(), note))

	assert.NoError(t, mock.ExpectationsWereMet())
}
