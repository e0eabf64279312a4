// internal/workers/pathway/calculate-pathway-score/handler_test.go
package calculatepathwayscore

import (
	"context"
	"database/sql"
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

var pathwayColumns = []string{
	"id", "name", "required_skills", "required_experience_years", "preferred_locations",
	"pr_points_threshold", "recommended_courses", "difficulty_level", "success_rate",
	"estimated_cost", "estimated_duration",
}

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pg := store.NewPostgresStore(db)
	cfg := LoadConfig(nil)
	cfg.Timeout = 3 * time.Second

	return NewHandler(cfg, Dependencies{
		Store:    pg,
		Catalog:  pg,
		Resolver: pg,
		Logger:   logger.NewTestLogger(t),
	}), mock
}

func expectITPathway(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`FROM pr_pathways WHERE id = \$1`).
		WithArgs("pw-it").
		WillReturnRows(sqlmock.NewRows(pathwayColumns).
			AddRow("pw-it", "IT Specialist Pathway", "{sk-it,sk-dev}", 2.0, "{loc-syd,loc-mel}",
				70.0, "{c-bit,c-mds}", 5, 85.0, 15000.0, 36.0))
}

func expectNames(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT id, skill_name FROM skills`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "skill_name"}).
			AddRow("sk-it", "IT").AddRow("sk-dev", "Software Development"))
	mock.ExpectQuery(`SELECT id, course_name FROM courses`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_name"}).AddRow("c-bit", "Bachelor of IT"))
	mock.ExpectQuery(`SELECT id, location_name FROM locations`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "location_name"}).
			AddRow("loc-syd", "Sydney").AddRow("loc-mel", "Melbourne"))
}

func expectNoStoredWeights(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`FROM algorithm_parameters`).
		WithArgs(store.DefaultWeightsID).
		WillReturnError(sql.ErrNoRows)
}

func itProfile() *models.UserProfile {
	return &models.UserProfile{
		UserID:             "user-1",
		Skills:             []string{"sk-it", "sk-dev"},
		ExperienceYears:    3,
		PRPoints:           75,
		CompletedCourses:   []string{},
		PreferredLocations: []string{"loc-syd"},
	}
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute_ByPathwayID(t *testing.T) {
	h, mock := setupHandler(t)
	expectITPathway(mock)
	expectNoStoredWeights(mock)
	expectNames(mock)

	out, err := h.Execute(context.Background(), &Input{UserID: "user-1", UserProfile: itProfile(), PathwayID: "pw-it"})
	require.NoError(t, err)

	assert.Equal(t, "pw-it", out.PathwayID)
	assert.InDelta(t, 78.75, out.Score, 1e-9)
	assert.Equal(t, models.TierPartiallyQualified, out.Tier)
	assert.Equal(t, 50.0, out.MatchFactors.LocationMatch)
	assert.Equal(t, []string{"IT", "Software Development"}, out.ScoredPathway.RequiredSkills)
	assert.Equal(t, []string{"Bachelor of IT", models.UnknownName}, out.ScoredPathway.RecommendedCourses)
	assert.Equal(t, []string{"Sydney", "Melbourne"}, out.ScoredPathway.Locations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ProfileFromDatabase(t *testing.T) {
	h, mock := setupHandler(t)
	expectITPathway(mock)
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"skills", "employment", "education", "location_preferences", "pr_points"}).
			AddRow("{sk-it,sk-dev}", []byte(`[{"years_in_current_role":3}]`), []byte(`[]`), "{loc-syd}", 75))
	expectNoStoredWeights(mock)
	expectNames(mock)

	out, err := h.Execute(context.Background(), &Input{UserID: "user-1", PathwayID: "pw-it"})
	require.NoError(t, err)
	assert.InDelta(t, 78.75, out.Score, 1e-9)
}

func TestHandler_Execute_InlinePathway(t *testing.T) {
	h, mock := setupHandler(t)
	expectNoStoredWeights(mock)
	mock.ExpectQuery(`FROM skills`).WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "skill_name"}))

	out, err := h.Execute(context.Background(), &Input{
		UserProfile: itProfile(),
		Pathway:     &models.Pathway{ID: "pw-inline", Name: "Inline", RequiredSkills: []string{"sk-it"}},
	})
	require.NoError(t, err)

	// skill 25 + experience 20 + pr 10, then the defaults: difficulty 10
	// adds 4.5, cost 100000 subtracts 5, duration 60 adds nothing
	assert.InDelta(t, 54.5, out.Score, 1e-9)
	assert.Equal(t, models.TierPartiallyQualified, out.Tier)
	assert.Equal(t, []string{models.UnknownName}, out.ScoredPathway.RequiredSkills)
}

func TestHandler_Execute_Errors(t *testing.T) {
	t.Run("no pathway", func(t *testing.T) {
		h, _ := setupHandler(t)
		_, err := h.Execute(context.Background(), &Input{UserProfile: itProfile()})
		assert.Equal(t, apperrors.ErrCodeInputValidationFailed, apperrors.AsStandard(err).Code)
	})

	t.Run("pathway not found", func(t *testing.T) {
		h, mock := setupHandler(t)
		mock.ExpectQuery(`FROM pr_pathways WHERE id = \$1`).
			WithArgs("pw-gone").
			WillReturnRows(sqlmock.NewRows(pathwayColumns))

		_, err := h.Execute(context.Background(), &Input{UserProfile: itProfile(), PathwayID: "pw-gone"})
		assert.Equal(t, apperrors.ErrCodePathwayNotFound, apperrors.AsStandard(err).Code)
	})

	t.Run("user not found", func(t *testing.T) {
		h, mock := setupHandler(t)
		expectITPathway(mock)
		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := h.Execute(context.Background(), &Input{UserID: "ghost", PathwayID: "pw-it"})
		assert.Equal(t, apperrors.ErrCodeUserNotFound, apperrors.AsStandard(err).Code)
	})
}

// ==========================
// Handle
// ==========================

func TestHandler_Handle(t *testing.T) {
	h, mock := setupHandler(t)
	expectITPathway(mock)
	expectNoStoredWeights(mock)
	expectNames(mock)

	client := camundatest.NewJobClient()
	h.Handle(client, camundatest.NewJob(7, TaskType, 3, Input{UserProfile: itProfile(), PathwayID: "pw-it"}))

	require.Len(t, client.Completed(), 1)
	var out Output
	require.NoError(t, client.CompletedVariables(0, &out))
	assert.Equal(t, models.TierPartiallyQualified, out.Tier)
}

func TestHandler_Handle_MalformedVariables(t *testing.T) {
	h, _ := setupHandler(t)
	client := camundatest.NewJobClient()
	job := camundatest.NewJob(8, TaskType, 3, nil)
	job.Variables = `{"pathwayId":`

	h.Handle(client, job)

	require.Len(t, client.Thrown(), 1)
	assert.Equal(t, string(apperrors.ErrCodeInputValidationFailed), client.Thrown()[0].ErrorCode)
}

func TestHandler_Handle_PartialInlineWeights(t *testing.T) {
	h, mock := setupHandler(t)
	expectITPathway(mock)
	expectNames(mock)

	client := camundatest.NewJobClient()
	h.Handle(client, camundatest.NewJob(9, TaskType, 3, map[string]interface{}{
		"userProfile": itProfile(),
		"pathwayId":   "pw-it",
		"weights":     map[string]float64{"skill": 0.25},
	}))

	require.Len(t, client.Completed(), 1)
	var out Output
	require.NoError(t, client.CompletedVariables(0, &out))
	assert.InDelta(t, 78.75, out.Score, 1e-9)
	assert.Equal(t, models.TierPartiallyQualified, out.Tier)
	assert.NoError(t, mock.ExpectationsWereMet())
}
