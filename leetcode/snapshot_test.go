package leetcode

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func profileWithCounts(all, easy, medium, hard int) *UserProfile {
	return &UserProfile{
		MatchedUser: &MatchedUser{
			Username: "someone",
			SubmitStats: &SubmitStats{
				ACSubmissionNum: []SubmissionCount{
					{Difficulty: "All", Count: all},
					{Difficulty: "Easy", Count: easy},
					{Difficulty: "Medium", Count: medium},
					{Difficulty: "Hard", Count: hard},
				},
				TotalSubmissionNum: []SubmissionCount{
					{Difficulty: "All", Count: all, Submissions: 120},
				},
			},
		},
	}
}

func TestBuildSnapshotDifficultyCounts(t *testing.T) {
	snap := BuildSnapshot(profileWithCounts(17, 10, 5, 2), nil, nil, nil)

	if snap.ProblemsSolved != 17 {
		t.Fatalf("expected problems_solved 17, got %d", snap.ProblemsSolved)
	}
	want := DifficultyBreakdown{Easy: 10, Medium: 5, Hard: 2}
	if snap.ProblemsSolvedByDifficulty != want {
		t.Fatalf("unexpected difficulty breakdown: %+v", snap.ProblemsSolvedByDifficulty)
	}
	if snap.TotalSubmissions != 120 {
		t.Fatalf("expected total_submissions 120, got %d", snap.TotalSubmissions)
	}
}

func TestBuildSnapshotTrustsAllBucketOverSum(t *testing.T) {
	// Upstream can report an "All" count that disagrees with the per-tier
	// sum; the "All" value wins.
	snap := BuildSnapshot(profileWithCounts(99, 10, 5, 2), nil, nil, nil)

	if snap.ProblemsSolved != 99 {
		t.Fatalf("expected problems_solved 99, got %d", snap.ProblemsSolved)
	}
}

func TestBuildSnapshotMissingStatsDefaults(t *testing.T) {
	profile := &UserProfile{MatchedUser: &MatchedUser{Username: "someone"}}
	snap := BuildSnapshot(profile, nil, nil, nil)

	if snap.ProblemsSolved != 0 || snap.TotalSubmissions != 0 {
		t.Fatalf("expected zeroed counts, got %+v", snap)
	}
	if snap.ContestRating != 0 {
		t.Fatalf("expected contest_rating 0, got %f", snap.ContestRating)
	}
	if snap.AcceptanceRate != nil {
		t.Fatalf("expected acceptance_rate to be nil, got %v", *snap.AcceptanceRate)
	}
	if snap.Ranking != nil {
		t.Fatalf("expected ranking to be nil, got %v", *snap.Ranking)
	}
	if snap.RecentSubmissions != nil {
		t.Fatalf("expected recent_submissions to be nil, got %v", *snap.RecentSubmissions)
	}
	if snap.Badges != nil {
		t.Fatalf("expected badges to be nil, got %s", snap.Badges)
	}
}

func TestBuildSnapshotProfileFields(t *testing.T) {
	ranking := int64(12345)
	acceptance := 68.5
	profile := profileWithCounts(17, 10, 5, 2)
	profile.MatchedUser.Profile = &PublicProfile{
		Ranking:        &ranking,
		StarRating:     3.5,
		AcceptanceRate: &acceptance,
	}
	profile.MatchedUser.Badges = json.RawMessage(`[{"id":"1","displayName":"Annual Badge"}]`)

	snap := BuildSnapshot(profile, nil, nil, nil)

	if snap.ContestRating != 3.5 {
		t.Fatalf("expected contest_rating 3.5, got %f", snap.ContestRating)
	}
	if snap.Ranking == nil || *snap.Ranking != 12345 {
		t.Fatalf("unexpected ranking: %v", snap.Ranking)
	}
	if snap.AcceptanceRate == nil || *snap.AcceptanceRate != 68.5 {
		t.Fatalf("unexpected acceptance_rate: %v", snap.AcceptanceRate)
	}
	if len(snap.Badges) == 0 {
		t.Fatal("expected badges to be carried through")
	}
}

func TestBuildSnapshotUnparsableCalendarStillSucceeds(t *testing.T) {
	profile := profileWithCounts(17, 10, 5, 2)
	profile.MatchedUser.SubmissionCalendar = "not-json"

	snap := BuildSnapshot(profile, nil, nil, nil)

	if snap.RecentSubmissions != nil {
		t.Fatalf("expected recent_submissions nil for bad calendar, got %v", *snap.RecentSubmissions)
	}
	if snap.SubmissionCalendar == nil || *snap.SubmissionCalendar != "not-json" {
		t.Fatal("expected raw calendar to be preserved even when unparsable")
	}
	if snap.ProblemsSolved != 17 {
		t.Fatal("calendar failure must not affect the rest of the snapshot")
	}
}

func TestRecentSubmissionCountWindow(t *testing.T) {
	now := time.Now()
	calendar := fmt.Sprintf(`{"%d": 3, "%d": 5}`,
		now.Add(-10*24*time.Hour).Unix(),
		now.Add(-40*24*time.Hour).Unix())

	got := recentSubmissionCount(calendar, now)
	if got == nil {
		t.Fatal("expected a count, got nil")
	}
	if *got != 3 {
		t.Fatalf("expected only the 10-day-old entry to count, got %d", *got)
	}
}

func TestRecentSubmissionCountBadInput(t *testing.T) {
	if got := recentSubmissionCount("{{{", time.Now()); got != nil {
		t.Fatalf("expected nil for unparsable calendar, got %d", *got)
	}
	if got := recentSubmissionCount("", time.Now()); got != nil {
		t.Fatalf("expected nil for empty calendar, got %d", *got)
	}
}

func TestRecentSubmissionCountEmptyCalendar(t *testing.T) {
	got := recentSubmissionCount("{}", time.Now())
	if got == nil || *got != 0 {
		t.Fatalf("expected 0 for an empty-but-valid calendar, got %v", got)
	}
}
