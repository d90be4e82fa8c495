package controllers

import (
	"database/sql"
	"errors"
	"log"
	"strings"

	"leetboard-backend/database"
	"leetboard-backend/leetcode"
	"leetboard-backend/models"

	"github.com/gofiber/fiber/v2"
)

var lcClient = leetcode.NewClient()

// GET /api/leetcode-user?username=<name>
// Proxies the raw upstream profile so the dashboard can validate usernames.
func GetLeetCodeUser(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username required"})
	}

	_, raw, err := lcClient.FetchUser(c.Context(), username)
	if err != nil {
		if errors.Is(err, leetcode.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching user"})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(raw)
}

// POST /api/refresh-leetcode-stats
// Body may scope the batch to one group or one member. A missing or malformed
// body is tolerated and means "every member everywhere".
func RefreshStats(c *fiber.Ctx) error {
	var scope struct {
		GroupID  string `json:"group_id"`
		MemberID string `json:"member_id"`
	}
	_ = c.BodyParser(&scope)

	repo := leetcode.NewPostgresRepository(database.DB)
	members, err := repo.ListMembers(c.Context(), leetcode.MemberFilter{
		GroupID:  scope.GroupID,
		MemberID: scope.MemberID,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch members"})
	}

	updated := leetcode.RefreshMembers(c.Context(), lcClient, repo, members)
	return c.JSON(fiber.Map{"updated": updated})
}

// GET /api/groups/:id/stats
func GetGroupStats(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(int)
	groupID := c.Params("id")
	if !validID(groupID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	row := database.DB.QueryRow(`
		SELECT `+groupColumns+` FROM groups WHERE id = $1 AND owner_id = $2
	`, groupID, ownerID)
	group, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch group"})
	}

	return groupStatsResponse(c, group)
}

// GET /api/public/:public_link
// Unauthenticated read-only view; holding the link token is the whole
// authorization.
func GetPublicGroupStats(c *fiber.Ctx) error {
	publicLink := c.Params("public_link")
	if !validID(publicLink) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	row := database.DB.QueryRow(`
		SELECT `+groupColumns+` FROM groups WHERE public_link = $1
	`, publicLink)
	group, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch group"})
	}

	return groupStatsResponse(c, group)
}

func groupStatsResponse(c *fiber.Ctx, group models.Group) error {
	repo := leetcode.NewPostgresRepository(database.DB)

	members, err := repo.ListMembers(c.Context(), leetcode.MemberFilter{GroupID: group.ID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch group members"})
	}

	latest := make(map[string]*leetcode.Snapshot, len(members))
	for _, m := range members {
		snap, err := repo.LatestSnapshot(c.Context(), m.ID)
		if err != nil {
			log.Printf("stats: latest snapshot for %s: %v", m.LeetcodeUsername, err)
			continue
		}
		if snap != nil {
			latest[m.ID] = snap
		}
	}

	rows := leetcode.BuildLeaderboard(members, latest)

	sortKey := c.Query("sort", leetcode.SortByProblemsSolved)
	ascending := c.Query("order") == "asc"
	leetcode.SortRows(rows, sortKey, ascending)

	return c.JSON(fiber.Map{
		"group":       group,
		"members":     members,
		"leaderboard": rows,
		"totals":      leetcode.ComputeTotals(rows),
	})
}
