package repository_test

import (
	"context"
	"testing"

	"tracker/internal/model"
	"tracker/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSequenceRepository_Next_FirstCall(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	sequenceRepo := repository.NewSequenceRepository(gormDB)

	workspaceID := uuid.New()

	// Первый вызов для пары (workspace, name) создает счетчик со значением 1
	mock.ExpectQuery(`INSERT INTO workspace_sequences .* ON CONFLICT \(workspace_id, name\) DO UPDATE SET value = workspace_sequences.value \+ 1 RETURNING value`).
		WithArgs(sqlmock.AnyArg(), model.SequenceIssueNumber).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))

	// Act
	value, err := sequenceRepo.Next(context.Background(), workspaceID, model.SequenceIssueNumber)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepository_Next_Increments(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	sequenceRepo := repository.NewSequenceRepository(gormDB)

	workspaceID := uuid.New()

	// Повторный вызов атомарно инкрементирует существующий счетчик
	mock.ExpectQuery(`INSERT INTO workspace_sequences .* RETURNING value`).
		WithArgs(sqlmock.AnyArg(), model.SequenceIssueNumber).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(42))

	// Act
	value, err := sequenceRepo.Next(context.Background(), workspaceID, model.SequenceIssueNumber)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepository_Next_Error(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	sequenceRepo := repository.NewSequenceRepository(gormDB)

	workspaceID := uuid.New()

	mock.ExpectQuery(`INSERT INTO workspace_sequences`).
		WillReturnError(assert.AnError)

	// Act
	value, err := sequenceRepo.Next(context.Background(), workspaceID, model.SequenceIssueNumber)

	// Assert
	assert.Error(t, err)
	assert.Equal(t, 0, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}
