package models

import "time"

// Group is an owned collection of tracked members. PublicLink is the opaque
// share token; nil until the owner first shares the group.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     int       `json:"owner_id"`
	IsPublic    bool      `json:"is_public"`
	PublicLink  *string   `json:"public_link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	MemberCount int       `json:"member_count,omitempty"`
}

type GroupMember struct {
	ID               string    `json:"id"`
	GroupID          string    `json:"group_id"`
	DisplayName      string    `json:"display_name"`
	LeetcodeUsername string    `json:"leetcode_username"`
	CreatedAt        time.Time `json:"created_at"`
}
