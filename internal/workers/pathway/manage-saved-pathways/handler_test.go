// internal/workers/pathway/manage-saved-pathways/handler_test.go
package managesavedpathways

import (
	"context"
	"errors"
	"testing"
	"time"

	"pathway-workers/internal/common/camunda/camundatest"
	apperrors "pathway-workers/internal/common/errors"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/models"
	"pathway-workers/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeCatalog struct {
	known map[string]bool
	err   error
}

func (c *fakeCatalog) ListPathways(context.Context, int) ([]models.Pathway, error) {
	return nil, nil
}

func (c *fakeCatalog) GetPathway(_ context.Context, id string) (*models.Pathway, error) {
	if c.err != nil {
		return nil, c.err
	}
	if !c.known[id] {
		return nil, store.ErrPathwayNotFound
	}
	return &models.Pathway{ID: id}, nil
}

func setupHandler(t *testing.T, catalog store.Catalog) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewHandler(LoadConfig(nil), Dependencies{
		Store:   store.NewPostgresStore(db),
		Catalog: catalog,
		Logger:  logger.NewTestLogger(t),
	}), mock
}

var savedAt = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// ==========================
// Save
// ==========================

func TestHandler_Save(t *testing.T) {
	h, mock := setupHandler(t, &fakeCatalog{known: map[string]bool{"pw-it": true}})
	mock.ExpectQuery(`INSERT INTO saved_pathways`).
		WithArgs(sqlmock.AnyArg(), "user-1", "pw-it", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "saved_at"}).AddRow("rec-1", savedAt))

	out, err := h.Execute(context.Background(), &Input{
		Action:         ActionSave,
		UserID:         "user-1",
		PathwayDetails: &models.ScoredPathway{PathwayID: "pw-it", Score: 78.75, Tier: models.TierPartiallyQualified},
	})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "rec-1", out.SavedPathway.ID)
	assert.Equal(t, "pw-it", out.SavedPathway.PathwayID)
	assert.Equal(t, 78.75, out.SavedPathway.Details.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Save_UnknownPathway(t *testing.T) {
	h, mock := setupHandler(t, &fakeCatalog{known: map[string]bool{}})

	_, err := h.Execute(context.Background(), &Input{Action: ActionSave, UserID: "user-1", PathwayID: "pw-x"})
	assert.Equal(t, apperrors.ErrCodePathwayNotFound, apperrors.AsStandard(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Save_WithoutCatalog(t *testing.T) {
	h, mock := setupHandler(t, nil)
	mock.ExpectQuery(`INSERT INTO saved_pathways`).
		WithArgs(sqlmock.AnyArg(), "user-1", "pw-x", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "saved_at"}).AddRow("rec-2", savedAt))

	out, err := h.Execute(context.Background(), &Input{Action: ActionSave, UserID: "user-1", PathwayID: "pw-x"})
	require.NoError(t, err)
	assert.Nil(t, out.SavedPathway.Details)
}

func TestHandler_Save_DatabaseError(t *testing.T) {
	h, mock := setupHandler(t, nil)
	mock.ExpectQuery(`INSERT INTO saved_pathways`).WillReturnError(errors.New("deadlock"))

	_, err := h.Execute(context.Background(), &Input{Action: ActionSave, UserID: "user-1", PathwayID: "pw-x"})
	std := apperrors.AsStandard(err)
	assert.Equal(t, apperrors.ErrCodeSavedPathwayFailed, std.Code)
	assert.True(t, std.Retryable)
}

// ==========================
// Remove and list
// ==========================

func TestHandler_Remove(t *testing.T) {
	h, mock := setupHandler(t, nil)
	mock.ExpectExec(`DELETE FROM saved_pathways`).
		WithArgs("user-1", "pw-it").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM saved_pathways`).
		WithArgs("user-1", "pw-it").
		WillReturnResult(sqlmock.NewResult(0, 0))

	out, err := h.Execute(context.Background(), &Input{Action: ActionRemove, UserID: "user-1", PathwayID: "pw-it"})
	require.NoError(t, err)
	assert.True(t, out.Removed)
	assert.Equal(t, 1, out.Count)

	// removing twice is not an error
	out, err = h.Execute(context.Background(), &Input{Action: ActionRemove, UserID: "user-1", PathwayID: "pw-it"})
	require.NoError(t, err)
	assert.False(t, out.Removed)
	assert.True(t, out.Success)
}

func TestHandler_List(t *testing.T) {
	h, mock := setupHandler(t, nil)
	mock.ExpectQuery(`FROM saved_pathways WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pathway_id", "pathway_details", "saved_at"}).
			AddRow("rec-2", "pw-b", nil, savedAt).
			AddRow("rec-1", "pw-a", nil, savedAt.Add(-time.Hour)))

	out, err := h.Execute(context.Background(), &Input{Action: ActionList, UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "pw-b", out.SavedPathways[0].PathwayID)
}

func TestHandler_Validation(t *testing.T) {
	h, _ := setupHandler(t, nil)

	tests := []struct {
		name  string
		input Input
	}{
		{"missing user", Input{Action: ActionList}},
		{"unknown action", Input{Action: "archive", UserID: "user-1"}},
		{"save without pathway", Input{Action: ActionSave, UserID: "user-1"}},
		{"remove without pathway", Input{Action: ActionRemove, UserID: "user-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &tt.input)
			assert.Equal(t, apperrors.ErrCodeInputValidationFailed, apperrors.AsStandard(err).Code)
		})
	}
}

func TestHandler_Handle(t *testing.T) {
	h, mock := setupHandler(t, nil)
	mock.ExpectQuery(`FROM saved_pathways WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pathway_id", "pathway_details", "saved_at"}))

	client := camundatest.NewJobClient()
	h.Handle(client, camundatest.NewJob(11, TaskType, 3, Input{Action: ActionList, UserID: "user-1"}))

	require.Len(t, client.Completed(), 1)
	var out Output
	require.NoError(t, client.CompletedVariables(0, &out))
	assert.True(t, out.Success)
	assert.Equal(t, 0, out.Count)
}
