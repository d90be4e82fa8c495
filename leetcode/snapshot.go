package leetcode

import (
	"encoding/json"
	"strconv"
	"time"
)

// BuildSnapshot flattens a fetched profile plus the two best-effort stat
// payloads into one stats row. Missing pieces degrade to zero or NULL per
// field; nothing here can fail the build.
func BuildSnapshot(profile *UserProfile, rawProfile, languageStats, skillStats json.RawMessage) Snapshot {
	snap := Snapshot{
		FetchedAt:     time.Now().UTC(),
		ProfileData:   rawProfile,
		LanguageStats: languageStats,
		SkillStats:    skillStats,
	}

	matched := profile.MatchedUser
	if matched == nil {
		return snap
	}

	var ac, total []SubmissionCount
	if matched.SubmitStats != nil {
		ac = matched.SubmitStats.ACSubmissionNum
		total = matched.SubmitStats.TotalSubmissionNum
	}

	snap.ProblemsSolvedByDifficulty = DifficultyBreakdown{
		Easy:   countFor(ac, "Easy"),
		Medium: countFor(ac, "Medium"),
		Hard:   countFor(ac, "Hard"),
	}
	// The "All" bucket is trusted as-is even when it disagrees with the sum
	// of the three tiers; upstream reports both and they can diverge.
	snap.ProblemsSolved = countFor(ac, "All")
	snap.TotalSubmissions = submissionsFor(total, "All")

	if matched.Profile != nil {
		snap.ContestRating = matched.Profile.StarRating
		snap.Ranking = matched.Profile.Ranking
		snap.AcceptanceRate = matched.Profile.AcceptanceRate
	}

	if len(matched.Badges) > 0 && string(matched.Badges) != "null" {
		snap.Badges = matched.Badges
	}

	if matched.SubmissionCalendar != "" {
		calendar := matched.SubmissionCalendar
		snap.SubmissionCalendar = &calendar
		snap.RecentSubmissions = recentSubmissionCount(calendar, time.Now())
	}

	return snap
}

func countFor(list []SubmissionCount, difficulty string) int {
	for _, entry := range list {
		if entry.Difficulty == difficulty {
			return entry.Count
		}
	}
	return 0
}

func submissionsFor(list []SubmissionCount, difficulty string) int {
	for _, entry := range list {
		if entry.Difficulty == difficulty {
			return entry.Submissions
		}
	}
	return 0
}

// recentSubmissionCount sums calendar entries from the last 30 days. The
// calendar arrives as a stringified JSON map of unix-seconds -> count; an
// unparsable calendar yields nil ("unknown"), not 0.
func recentSubmissionCount(calendar string, now time.Time) *int {
	var entries map[string]int
	if err := json.Unmarshal([]byte(calendar), &entries); err != nil {
		return nil
	}

	cutoff := now.Unix() - 30*24*60*60
	sum := 0
	for ts, count := range entries {
		seconds, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			continue
		}
		if seconds >= cutoff {
			sum += count
		}
	}
	return &sum
}
