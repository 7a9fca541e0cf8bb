package app

import (
	"fmt"

	noteHTTP "github.com/allisson/notes/internal/note/http"
	noteRepository "github.com/allisson/notes/internal/note/repository"
	noteUseCase "github.com/allisson/notes/internal/note/usecase"
)

// NoteRepository returns the note repository based on database driver.
func (c *Container) NoteRepository() (noteUseCase.NoteRepository, error) {
	var err error
	c.noteRepositoryInit.Do(func() {
		c.noteRepository, err = c.initNoteRepository()
		if err != nil {
			c.initErrors["noteRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["noteRepository"]; exists {
		return nil, storedErr
	}
	return c.noteRepository, nil
}

// NoteUseCase returns the note use case.
func (c *Container) NoteUseCase() (noteUseCase.NoteUseCase, error) {
	var err error
	c.noteUseCaseInit.Do(func() {
		c.noteUseCase, err = c.initNoteUseCase()
		if err != nil {
			c.initErrors["noteUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["noteUseCase"]; exists {
		return nil, storedErr
	}
	return c.noteUseCase, nil
}

// NoteHandler returns the HTTP handler for note operations.
func (c *Container) NoteHandler() (*noteHTTP.NoteHandler, error) {
	var err error
	c.noteHandlerInit.Do(func() {
		c.noteHandler, err = c.initNoteHandler()
		if err != nil {
			c.initErrors["noteHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["noteHandler"]; exists {
		return nil, storedErr
	}
	return c.noteHandler, nil
}

// initNoteRepository creates the note repository based on the database driver.
func (c *Container) initNoteRepository() (noteUseCase.NoteRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for note repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return noteRepository.NewPostgreSQLNoteRepository(db), nil
	case "mysql":
		return noteRepository.NewMySQLNoteRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initNoteUseCase creates the note use case with all its dependencies.
func (c *Container) initNoteUseCase() (noteUseCase.NoteUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for note use case: %w", err)
	}

	repo, err := c.NoteRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get note repository for note use case: %w", err)
	}

	baseUseCase := noteUseCase.NewNoteUseCase(txManager, repo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for note use case: %w", err)
		}
		return noteUseCase.NewNoteUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initNoteHandler creates the note HTTP handler.
func (c *Container) initNoteHandler() (*noteHTTP.NoteHandler, error) {
	useCase, err := c.NoteUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get note use case for note handler: %w", err)
	}
	return noteHTTP.NewNoteHandler(useCase, c.Logger()), nil
}
