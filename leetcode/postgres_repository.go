package leetcode

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListMembers(ctx context.Context, filter MemberFilter) ([]Member, error) {
	query := `SELECT id, group_id, display_name, leetcode_username, created_at FROM group_members`
	var (
		conditions []string
		args       []any
	)
	if filter.GroupID != "" {
		args = append(args, filter.GroupID)
		conditions = append(conditions, fmt.Sprintf("group_id = $%d", len(args)))
	}
	if filter.MemberID != "" {
		args = append(args, filter.MemberID)
		conditions = append(conditions, fmt.Sprintf("id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.GroupID, &m.DisplayName, &m.LeetcodeUsername, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PostgresRepository) InsertSnapshot(ctx context.Context, snapshot Snapshot) error {
	difficulty, err := json.Marshal(snapshot.ProblemsSolvedByDifficulty)
	if err != nil {
		return fmt.Errorf("marshal difficulty breakdown: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO leetcode_stats
			(group_member_id, fetched_at, profile_data, problems_solved, contest_rating,
			 language_stats, skill_stats, submission_calendar, problems_solved_by_difficulty,
			 recent_submissions, total_submissions, acceptance_rate, ranking, badges)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6::jsonb, $7::jsonb, $8, $9::jsonb, $10, $11, $12, $13, $14::jsonb)
	`,
		snapshot.GroupMemberID,
		snapshot.FetchedAt,
		nullableJSON(snapshot.ProfileData),
		snapshot.ProblemsSolved,
		snapshot.ContestRating,
		nullableJSON(snapshot.LanguageStats),
		nullableJSON(snapshot.SkillStats),
		snapshot.SubmissionCalendar,
		difficulty,
		snapshot.RecentSubmissions,
		snapshot.TotalSubmissions,
		snapshot.AcceptanceRate,
		snapshot.Ranking,
		nullableJSON(snapshot.Badges),
	)
	if err != nil {
		return fmt.Errorf("insert stats snapshot: %w", err)
	}
	return nil
}

func (r *PostgresRepository) LatestSnapshot(ctx context.Context, memberID string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, group_member_id, fetched_at, profile_data, problems_solved, contest_rating,
		       language_stats, skill_stats, submission_calendar, problems_solved_by_difficulty,
		       recent_submissions, total_submissions, acceptance_rate, ranking, badges
		FROM leetcode_stats
		WHERE group_member_id = $1
		ORDER BY fetched_at DESC
		LIMIT 1
	`, memberID)

	var (
		snap        Snapshot
		profileData []byte
		langStats   []byte
		skillStats  []byte
		calendar    sql.NullString
		difficulty  []byte
		recent      sql.NullInt64
		acceptance  sql.NullFloat64
		ranking     sql.NullInt64
		badges      []byte
	)
	err := row.Scan(&snap.ID, &snap.GroupMemberID, &snap.FetchedAt, &profileData,
		&snap.ProblemsSolved, &snap.ContestRating, &langStats, &skillStats,
		&calendar, &difficulty, &recent, &snap.TotalSubmissions,
		&acceptance, &ranking, &badges)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}

	snap.ProfileData = profileData
	snap.LanguageStats = langStats
	snap.SkillStats = skillStats
	snap.Badges = badges
	if calendar.Valid {
		snap.SubmissionCalendar = &calendar.String
	}
	if len(difficulty) > 0 {
		if err := json.Unmarshal(difficulty, &snap.ProblemsSolvedByDifficulty); err != nil {
			return nil, fmt.Errorf("decode difficulty breakdown: %w", err)
		}
	}
	if recent.Valid {
		v := int(recent.Int64)
		snap.RecentSubmissions = &v
	}
	if acceptance.Valid {
		snap.AcceptanceRate = &acceptance.Float64
	}
	if ranking.Valid {
		snap.Ranking = &ranking.Int64
	}
	return &snap, nil
}

// nullableJSON maps an empty payload to SQL NULL instead of an empty string,
// which jsonb columns would reject.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

var _ Repository = (*PostgresRepository)(nil)
