package controllers

import (
	"database/sql"
	"errors"
	"strings"

	"leetboard-backend/database"
	"leetboard-backend/leetcode"
	"leetboard-backend/models"

	"github.com/gofiber/fiber/v2"
)

// verifyLeetCodeUser checks the username resolves upstream before it joins a
// roster. When it does not, the failure response is already written and ok is
// false; callers must stop there. c.JSON returns nil on a successful write, so
// the response error alone cannot signal a failed verification.
func verifyLeetCodeUser(c *fiber.Ctx, username string) (bool, error) {
	_, _, err := lcClient.FetchUser(c.Context(), username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, leetcode.ErrUserNotFound) {
		return false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "LeetCode user not found"})
	}
	return false, c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not verify user. Please try again."})
}

func ownsGroup(ownerID int, groupID string) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(`
		SELECT TRUE FROM groups WHERE id = $1 AND owner_id = $2
	`, groupID, ownerID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// POST /api/groups/:id/members
func AddMember(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(int)
	groupID := c.Params("id")
	if !validID(groupID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	var data struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	name := strings.TrimSpace(data.Name)
	username := strings.TrimSpace(data.Username)
	if name == "" || username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and username are required"})
	}

	owns, err := ownsGroup(ownerID, groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to validate group"})
	}
	if !owns {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	if ok, resp := verifyLeetCodeUser(c, username); !ok {
		return resp
	}

	var member models.GroupMember
	err = database.DB.QueryRow(`
		INSERT INTO group_members (group_id, display_name, leetcode_username)
		VALUES ($1, $2, $3)
		RETURNING id, group_id, display_name, leetcode_username, created_at
	`, groupID, name, username).
		Scan(&member.ID, &member.GroupID, &member.DisplayName, &member.LeetcodeUsername, &member.CreatedAt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add member"})
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

// PUT /api/members/:id
func UpdateMember(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(int)
	memberID := c.Params("id")
	if !validID(memberID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	var data struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	name := strings.TrimSpace(data.Name)
	username := strings.TrimSpace(data.Username)
	if name == "" || username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and username are required"})
	}

	if ok, resp := verifyLeetCodeUser(c, username); !ok {
		return resp
	}

	result, err := database.DB.Exec(`
		UPDATE group_members m
		SET display_name = $1, leetcode_username = $2
		FROM groups g
		WHERE m.id = $3 AND g.id = m.group_id AND g.owner_id = $4
	`, name, username, memberID, ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update member"})
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	return c.JSON(fiber.Map{"updated": true})
}

// DELETE /api/members/:id
func DeleteMember(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(int)
	memberID := c.Params("id")
	if !validID(memberID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	result, err := database.DB.Exec(`
		DELETE FROM group_members m
		USING groups g
		WHERE m.id = $1 AND g.id = m.group_id AND g.owner_id = $2
	`, memberID, ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete member"})
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	return c.JSON(fiber.Map{"deleted": true})
}

// POST /api/groups/:id/members/import
// Bulk add from a CSV with name/username columns. Every row is checked
// against the profile upstream; rows that fail or duplicate an existing
// roster username are skipped, not fatal.
func ImportMembers(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(int)
	groupID := c.Params("id")
	if !validID(groupID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	owns, err := ownsGroup(ownerID, groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to validate group"})
	}
	if !owns {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read file"})
	}
	defer file.Close()

	entries, err := leetcode.ParseRosterCSV(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	existing := map[string]bool{}
	usernameRows, err := database.DB.Query(`
		SELECT leetcode_username FROM group_members WHERE group_id = $1
	`, groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load current roster"})
	}
	defer usernameRows.Close()
	for usernameRows.Next() {
		var username string
		if err := usernameRows.Scan(&username); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load current roster"})
		}
		existing[username] = true
	}
	if err := usernameRows.Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load current roster"})
	}

	added := []models.GroupMember{}
	skipped := 0
	for _, entry := range entries {
		if existing[entry.Username] {
			skipped++
			continue
		}
		if _, _, err := lcClient.FetchUser(c.Context(), entry.Username); err != nil {
			skipped++
			continue
		}

		var member models.GroupMember
		err := database.DB.QueryRow(`
			INSERT INTO group_members (group_id, display_name, leetcode_username)
			VALUES ($1, $2, $3)
			RETURNING id, group_id, display_name, leetcode_username, created_at
		`, groupID, entry.Name, entry.Username).
			Scan(&member.ID, &member.GroupID, &member.DisplayName, &member.LeetcodeUsername, &member.CreatedAt)
		if err != nil {
			skipped++
			continue
		}
		existing[entry.Username] = true
		added = append(added, member)
	}

	return c.JSON(fiber.Map{
		"added":   len(added),
		"skipped": skipped,
		"members": added,
	})
}
