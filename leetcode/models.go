package leetcode

import (
	"encoding/json"
	"time"
)

// UserProfile is the decoded shape of the GraphQL getUserProfile response.
// Only the fields the snapshot builder reads are typed; the full payload is
// kept verbatim next to the snapshot for audit.
type UserProfile struct {
	AllQuestionsCount []QuestionCount `json:"allQuestionsCount"`
	MatchedUser       *MatchedUser    `json:"matchedUser"`
}

type QuestionCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type MatchedUser struct {
	Username           string          `json:"username"`
	SubmitStats        *SubmitStats    `json:"submitStats"`
	Profile            *PublicProfile  `json:"profile"`
	Badges             json.RawMessage `json:"badges"`
	SubmissionCalendar string          `json:"submissionCalendar"`
}

type SubmitStats struct {
	ACSubmissionNum    []SubmissionCount `json:"acSubmissionNum"`
	TotalSubmissionNum []SubmissionCount `json:"totalSubmissionNum"`
}

type SubmissionCount struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	Submissions int    `json:"submissions"`
}

// PublicProfile carries the profile block. acceptanceRate is not part of the
// standard schema and only decodes when the upstream happens to include it.
type PublicProfile struct {
	Ranking        *int64   `json:"ranking"`
	StarRating     float64  `json:"starRating"`
	AcceptanceRate *float64 `json:"acceptanceRate"`
}

// Member is one tracked username inside a group.
type Member struct {
	ID               string    `json:"id"`
	GroupID          string    `json:"group_id"`
	DisplayName      string    `json:"display_name"`
	LeetcodeUsername string    `json:"leetcode_username"`
	CreatedAt        time.Time `json:"created_at"`
}

type DifficultyBreakdown struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// Snapshot is one immutable capture of a member's statistics. Rows are only
// ever inserted; the newest fetched_at per member wins as "latest".
type Snapshot struct {
	ID                         int64               `json:"id"`
	GroupMemberID              string              `json:"group_member_id"`
	FetchedAt                  time.Time           `json:"fetched_at"`
	ProfileData                json.RawMessage     `json:"profile_data"`
	ProblemsSolved             int                 `json:"problems_solved"`
	ContestRating              float64             `json:"contest_rating"`
	LanguageStats              json.RawMessage     `json:"language_stats,omitempty"`
	SkillStats                 json.RawMessage     `json:"skill_stats,omitempty"`
	SubmissionCalendar         *string             `json:"submission_calendar,omitempty"`
	ProblemsSolvedByDifficulty DifficultyBreakdown `json:"problems_solved_by_difficulty"`
	RecentSubmissions          *int                `json:"recent_submissions,omitempty"`
	TotalSubmissions           int                 `json:"total_submissions"`
	AcceptanceRate             *float64            `json:"acceptance_rate,omitempty"`
	Ranking                    *int64              `json:"ranking,omitempty"`
	Badges                     json.RawMessage     `json:"badges,omitempty"`
}
