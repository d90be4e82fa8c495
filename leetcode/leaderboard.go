package leetcode

import (
	"encoding/json"
	"sort"
)

const (
	SortByProblemsSolved = "problems_solved"
	SortByContestRating  = "contest_rating"
)

// LeaderboardRow merges a member's identity with their latest snapshot.
type LeaderboardRow struct {
	Name                       string              `json:"name"`
	Username                   string              `json:"username"`
	ProblemsSolved             int                 `json:"problems_solved"`
	ContestRating              float64             `json:"contest_rating"`
	ProblemsSolvedByDifficulty DifficultyBreakdown `json:"problems_solved_by_difficulty"`
	RecentSubmissions          int                 `json:"recent_submissions"`
	TotalSubmissions           int                 `json:"total_submissions"`
	AcceptanceRate             *float64            `json:"acceptance_rate"`
	Ranking                    *int64              `json:"ranking"`
	Badges                     json.RawMessage     `json:"badges"`
}

type GroupTotals struct {
	ProblemsSolved int `json:"problems_solved"`
	Easy           int `json:"easy"`
	Medium         int `json:"medium"`
	Hard           int `json:"hard"`
	Submissions    int `json:"submissions"`
}

// BuildLeaderboard produces one row per roster member, in roster order.
// Members with no snapshot yet get zeroed counts, NULL rate/ranking and an
// empty badge list instead of being dropped.
func BuildLeaderboard(members []Member, latest map[string]*Snapshot) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(members))
	for _, m := range members {
		row := LeaderboardRow{
			Name:     m.DisplayName,
			Username: m.LeetcodeUsername,
			Badges:   json.RawMessage(`[]`),
		}
		if snap := latest[m.ID]; snap != nil {
			row.ProblemsSolved = snap.ProblemsSolved
			row.ContestRating = snap.ContestRating
			row.ProblemsSolvedByDifficulty = snap.ProblemsSolvedByDifficulty
			if snap.RecentSubmissions != nil {
				row.RecentSubmissions = *snap.RecentSubmissions
			}
			row.TotalSubmissions = snap.TotalSubmissions
			row.AcceptanceRate = snap.AcceptanceRate
			row.Ranking = snap.Ranking
			if len(snap.Badges) > 0 && string(snap.Badges) != "null" {
				row.Badges = snap.Badges
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// SortRows orders rows by problems_solved or contest_rating. Ties keep their
// existing (roster) order.
func SortRows(rows []LeaderboardRow, key string, ascending bool) {
	value := func(r LeaderboardRow) float64 {
		if key == SortByContestRating {
			return r.ContestRating
		}
		return float64(r.ProblemsSolved)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return value(rows[i]) < value(rows[j])
		}
		return value(rows[i]) > value(rows[j])
	})
}

// ComputeTotals folds group-wide sums over the rows.
func ComputeTotals(rows []LeaderboardRow) GroupTotals {
	var totals GroupTotals
	for _, r := range rows {
		totals.ProblemsSolved += r.ProblemsSolved
		totals.Easy += r.ProblemsSolvedByDifficulty.Easy
		totals.Medium += r.ProblemsSolvedByDifficulty.Medium
		totals.Hard += r.ProblemsSolvedByDifficulty.Hard
		totals.Submissions += r.TotalSubmissions
	}
	return totals
}
