// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"pathway-workers/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPathwayNotFound = errors.New("pathway not found")
	ErrWeightsNotSet   = errors.New("algorithm weights not set")
)

// DefaultWeightsID is the algorithm_parameters row the recommendation
// workers read and administrators update.
const DefaultWeightsID = "default"

var nameTables = map[models.NameKind]struct{ table, column string }{
	models.NameKindSkill:    {"skills", "skill_name"},
	models.NameKindCourse:   {"courses", "course_name"},
	models.NameKindLocation: {"locations", "location_name"},
}

// Catalog is a source of pathway records.
type Catalog interface {
	ListPathways(ctx context.Context, limit int) ([]models.Pathway, error)
	GetPathway(ctx context.Context, pathwayID string) (*models.Pathway, error)
}

// PostgresStore is the relational home of profiles, the pathway catalog,
// display-name lookups, algorithm weights, saved pathways and scores.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the embedded schema files in name order. Every statement
// is idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var (
		skills, locations             pq.StringArray
		employmentJSON, educationJSON []byte
		prPoints                      int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT skills, employment, education, location_preferences, pr_points
		FROM users WHERE id = $1`, userID).
		Scan(&skills, &employmentJSON, &educationJSON, &locations, &prPoints)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	var employment []employmentRow
	if len(employmentJSON) > 0 {
		if err := json.Unmarshal(employmentJSON, &employment); err != nil {
			return nil, fmt.Errorf("decode employment: %w", err)
		}
	}
	var education []educationRow
	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &education); err != nil {
			return nil, fmt.Errorf("decode education: %w", err)
		}
	}

	return models.NewUserProfile(userID, skills, toEmployment(employment), toEducation(education), locations, prPoints), nil
}

// employmentRow and educationRow mirror the JSONB documents on users.
type employmentRow struct {
	JobTitle           string  `json:"job_title"`
	Company            string  `json:"company"`
	YearsInCurrentRole float64 `json:"years_in_current_role"`
}

type educationRow struct {
	DegreeOrCourseName string `json:"degree_or_course_name"`
	Institution        string `json:"institution"`
	CompletionYear     int    `json:"completion_year"`
}

func toEmployment(rows []employmentRow) []models.EmploymentEntry {
	out := make([]models.EmploymentEntry, len(rows))
	for i, r := range rows {
		out[i] = models.EmploymentEntry{JobTitle: r.JobTitle, Company: r.Company, YearsInCurrentRole: r.YearsInCurrentRole}
	}
	return out
}

func toEducation(rows []educationRow) []models.EducationEntry {
	out := make([]models.EducationEntry, len(rows))
	for i, r := range rows {
		out[i] = models.EducationEntry{DegreeOrCourseName: r.DegreeOrCourseName, Institution: r.Institution, CompletionYear: r.CompletionYear}
	}
	return out
}

func (s *PostgresStore) GetContact(ctx context.Context, userID string) (*models.Contact, error) {
	var email, phone sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT email, phone FROM users WHERE id = $1`, userID).Scan(&email, &phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("query contact: %w", err)
	}
	return &models.Contact{UserID: userID, Email: email.String, Phone: phone.String}, nil
}

const pathwayColumns = `id, name, required_skills, required_experience_years, preferred_locations,
		pr_points_threshold, recommended_courses, difficulty_level, success_rate,
		estimated_cost, estimated_duration`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPathway(row rowScanner) (models.Pathway, error) {
	var (
		p                          models.Pathway
		skills, locations, courses pq.StringArray
		difficulty                 sql.NullInt64
		success, cost, duration    sql.NullFloat64
	)
	err := row.Scan(&p.ID, &p.Name, &skills, &p.RequiredExperienceYears, &locations,
		&p.PRPointsThreshold, &courses, &difficulty, &success, &cost, &duration)
	if err != nil {
		return p, err
	}

	p.RequiredSkills = []string(skills)
	p.PreferredLocations = []string(locations)
	p.RecommendedCourses = []string(courses)
	if difficulty.Valid {
		v := int(difficulty.Int64)
		p.DifficultyLevel = &v
	}
	if success.Valid {
		p.SuccessRate = &success.Float64
	}
	if cost.Valid {
		p.EstimatedCost = &cost.Float64
	}
	if duration.Valid {
		p.EstimatedDuration = &duration.Float64
	}
	return p, nil
}

// ListPathways returns active catalog entries in a stable order. A limit of
// zero or less returns the whole catalog.
func (s *PostgresStore) ListPathways(ctx context.Context, limit int) ([]models.Pathway, error) {
	query := `SELECT ` + pathwayColumns + ` FROM pr_pathways WHERE active ORDER BY created_at, id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pathways: %w", err)
	}
	defer rows.Close()

	catalog := []models.Pathway{}
	for rows.Next() {
		p, err := scanPathway(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pathway: %w", err)
		}
		catalog = append(catalog, p)
	}
	return catalog, rows.Err()
}

func (s *PostgresStore) GetPathway(ctx context.Context, pathwayID string) (*models.Pathway, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pathwayColumns+` FROM pr_pathways WHERE id = $1`, pathwayID)
	p, err := scanPathway(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPathwayNotFound, pathwayID)
	}
	if err != nil {
		return nil, fmt.Errorf("query pathway: %w", err)
	}
	return &p, nil
}

// ResolveNames looks up display names for ids of one kind. Ids with no row
// are absent from the result.
func (s *PostgresStore) ResolveNames(ctx context.Context, kind models.NameKind, ids []string) (map[string]string, error) {
	t, ok := nameTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown name kind %q", kind)
	}
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = ANY($1)`, t.column, t.table)
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

func (s *PostgresStore) GetWeights(ctx context.Context) (*models.WeightConfig, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT weights FROM algorithm_parameters WHERE id = $1`, DefaultWeightsID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWeightsNotSet
	}
	if err != nil {
		return nil, fmt.Errorf("query weights: %w", err)
	}

	var w models.WeightConfig
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	return &w, nil
}

func (s *PostgresStore) UpsertWeights(ctx context.Context, w models.WeightConfig, updatedBy string) (time.Time, error) {
	raw, err := json.Marshal(w)
	if err != nil {
		return time.Time{}, err
	}
	var updatedAt time.Time
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO algorithm_parameters (id, weights, updated_by, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET weights = EXCLUDED.weights, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
		RETURNING updated_at`, DefaultWeightsID, raw, updatedBy).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("upsert weights: %w", err)
	}
	return updatedAt, nil
}

// SavePathway stores a user's saved pathway. Saving the same pathway twice
// refreshes the stored details and keeps the original record id.
func (s *PostgresStore) SavePathway(ctx context.Context, userID, pathwayID string, details *models.ScoredPathway) (*models.SavedPathway, error) {
	var raw []byte
	if details != nil {
		var err error
		if raw, err = json.Marshal(details); err != nil {
			return nil, err
		}
	}

	saved := &models.SavedPathway{UserID: userID, PathwayID: pathwayID, Details: details}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO saved_pathways (id, user_id, pathway_id, pathway_details, saved_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id, pathway_id) DO UPDATE
		SET pathway_details = EXCLUDED.pathway_details, saved_at = EXCLUDED.saved_at
		RETURNING id, saved_at`, uuid.NewString(), userID, pathwayID, raw).
		Scan(&saved.ID, &saved.SavedAt)
	if err != nil {
		return nil, fmt.Errorf("save pathway: %w", err)
	}
	return saved, nil
}

// RemoveSavedPathway reports whether a saved record existed.
func (s *PostgresStore) RemoveSavedPathway(ctx context.Context, userID, pathwayID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_pathways WHERE user_id = $1 AND pathway_id = $2`, userID, pathwayID)
	if err != nil {
		return false, fmt.Errorf("remove saved pathway: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListSavedPathways returns the user's saved pathways, newest first.
func (s *PostgresStore) ListSavedPathways(ctx context.Context, userID string) ([]models.SavedPathway, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pathway_id, pathway_details, saved_at
		FROM saved_pathways WHERE user_id = $1
		ORDER BY saved_at DESC, pathway_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query saved pathways: %w", err)
	}
	defer rows.Close()

	saved := []models.SavedPathway{}
	for rows.Next() {
		var (
			sp  = models.SavedPathway{UserID: userID}
			raw []byte
		)
		if err := rows.Scan(&sp.ID, &sp.PathwayID, &raw, &sp.SavedAt); err != nil {
			return nil, fmt.Errorf("scan saved pathway: %w", err)
		}
		if len(raw) > 0 {
			var details models.ScoredPathway
			if err := json.Unmarshal(raw, &details); err == nil {
				sp.Details = &details
			}
		}
		saved = append(saved, sp)
	}
	return saved, rows.Err()
}

// SavedPathwayIDs returns the set of pathway ids the user has saved.
func (s *PostgresStore) SavedPathwayIDs(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pathway_id FROM saved_pathways WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("query saved pathway ids: %w", err)
	}
	defer rows.Close()

	ids := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// SaveScores replaces the user's stored scores with those in tiers in a
// single statement. Rows for pathways absent from tiers are deleted.
func (s *PostgresStore) SaveScores(ctx context.Context, userID string, tiers models.TierMap) error {
	var (
		ids    []string
		scores []float64
		labels []string
	)
	for _, t := range models.Tiers {
		for _, sp := range tiers[t] {
			ids = append(ids, sp.PathwayID)
			scores = append(scores, sp.Score)
			labels = append(labels, string(sp.Tier))
		}
	}
	if len(ids) == 0 {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM pathway_scores WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("clear scores: %w", err)
		}
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		WITH stale AS (
			DELETE FROM pathway_scores
			WHERE user_id = $1 AND NOT (pathway_id = ANY($2::text[]))
		)
		INSERT INTO pathway_scores (user_id, pathway_id, score, tier, computed_at)
		SELECT $1, p.id, p.score, p.tier, now()
		FROM unnest($2::text[], $3::numeric[], $4::text[]) AS p(id, score, tier)
		ON CONFLICT (user_id, pathway_id) DO UPDATE
		SET score = EXCLUDED.score, tier = EXCLUDED.tier, computed_at = EXCLUDED.computed_at`,
		userID, pq.Array(ids), pq.Array(scores), pq.Array(labels))
	if err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	return nil
}
