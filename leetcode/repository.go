package leetcode

import "context"

// MemberFilter narrows a roster query. Set fields combine with AND; an empty
// filter selects every tracked member across all groups.
type MemberFilter struct {
	GroupID  string
	MemberID string
}

type Repository interface {
	ListMembers(ctx context.Context, filter MemberFilter) ([]Member, error)
	InsertSnapshot(ctx context.Context, snapshot Snapshot) error
	LatestSnapshot(ctx context.Context, memberID string) (*Snapshot, error)
}
