package leetcode

import (
	"context"
	"log"
)

// RefreshMembers runs the stats pipeline over a roster, one member at a time.
// Failures are isolated: a member whose lookup or insert fails is logged and
// skipped, and no partial row is written for it. Returns how many snapshots
// were stored.
func RefreshMembers(ctx context.Context, client *Client, repo Repository, members []Member) int {
	updated := 0
	for _, m := range members {
		profile, rawProfile, err := client.FetchUser(ctx, m.LeetcodeUsername)
		if err != nil {
			log.Printf("refresh: skipping %s: %v", m.LeetcodeUsername, err)
			continue
		}

		// Secondary stats are best effort; a failure just leaves the column NULL.
		languageStats, err := client.FetchLanguageStats(ctx, m.LeetcodeUsername)
		if err != nil {
			languageStats = nil
		}
		skillStats, err := client.FetchSkillStats(ctx, m.LeetcodeUsername)
		if err != nil {
			skillStats = nil
		}

		snapshot := BuildSnapshot(profile, rawProfile, languageStats, skillStats)
		snapshot.GroupMemberID = m.ID

		if err := repo.InsertSnapshot(ctx, snapshot); err != nil {
			log.Printf("refresh: failed to store snapshot for %s: %v", m.LeetcodeUsername, err)
			continue
		}
		updated++
	}
	return updated
}
