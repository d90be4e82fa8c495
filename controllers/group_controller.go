package controllers

import (
	"database/sql"
	"errors"
	"strings"

	"leetboard-backend/database"
	"leetboard-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const groupColumns = `id, name, description, owner_id, is_public, public_link, created_at`

// validID rejects malformed uuid path params up front. Letting them through
// makes Postgres fail the uuid cast, which surfaces as a 500 instead of a 404.
func validID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func scanGroup(row *sql.Row) (models.Group, error) {
	var g models.Group
	var description sql.NullString
	var publicLink sql.NullString
	err := row.Scan(&g.ID, &g.Name, &description, &g.OwnerID, &g.IsPublic, &publicLink, &g.CreatedAt)
	if err != nil {
		return g, err
	}
	if description.Valid {
		g.Description = description.String
	}
	if publicLink.Valid {
		g.PublicLink = &publicLink.String
	}
	return g, nil
}

func CreateGroup(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(int)

	var data struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Members     []struct {
			Name     string `json:"name"`
			Username string `json:"username"`
		} `json:"members"`
	}
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if strings.TrimSpace(data.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	row := database.DB.QueryRow(`
		INSERT INTO groups (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING `+groupColumns+`
	`, strings.TrimSpace(data.Name), strings.TrimSpace(data.Description), ownerID)
	group, err := scanGroup(row)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create group"})
	}

	for _, m := range data.Members {
		name := strings.TrimSpace(m.Name)
		username := strings.TrimSpace(m.Username)
		if name == "" || username == "" {
			continue
		}
		if _, err := database.DB.Exec(`
			INSERT INTO group_members (group_id, display_name, leetcode_username)
			VALUES ($1, $2, $3)
		`, group.ID, name, username); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add group members"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

func ListGroups(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(int)

	rows, err := database.DB.Query(`
		SELECT g.id, g.name, g.description, g.owner_id, g.is_public, g.public_link, g.created_at,
		       COUNT(m.id) AS member_count
		FROM groups g
		LEFT JOIN group_members m ON m.group_id = g.id
		WHERE g.owner_id = $1
		GROUP BY g.id
		ORDER BY g.created_at DESC
	`, ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list groups"})
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		var description sql.NullString
		var publicLink sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &description, &g.OwnerID, &g.IsPublic, &publicLink, &g.CreatedAt, &g.MemberCount); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read groups"})
		}
		if description.Valid {
			g.Description = description.String
		}
		if publicLink.Valid {
			g.PublicLink = &publicLink.String
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read groups"})
	}

	return c.JSON(groups)
}

func GetGroup(c *fiber.Ctx) error {
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

	memberRows, err := database.DB.Query(`
		SELECT id, group_id, display_name, leetcode_username, created_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY created_at ASC
	`, group.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch group members"})
	}
	defer memberRows.Close()

	members := []models.GroupMember{}
	for memberRows.Next() {
		var m models.GroupMember
		if err := memberRows.Scan(&m.ID, &m.GroupID, &m.DisplayName, &m.LeetcodeUsername, &m.CreatedAt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read group members"})
		}
		members = append(members, m)
	}
	if err := memberRows.Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read group members"})
	}

	return c.JSON(fiber.Map{"group": group, "members": members})
}

func DeleteGroup(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(int)
	groupID := c.Params("id")
	if !validID(groupID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	var exists bool
	err := database.DB.QueryRow(`
		SELECT TRUE FROM groups WHERE id = $1 AND owner_id = $2
	`, groupID, ownerID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to validate group"})
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start transaction"})
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM leetcode_stats
		WHERE group_member_id IN (SELECT id FROM group_members WHERE group_id = $1)
	`, groupID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete group stats"})
	}
	if _, err := tx.Exec(`DELETE FROM group_members WHERE group_id = $1`, groupID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete group members"})
	}

	result, err := tx.Exec(`DELETE FROM groups WHERE id = $1 AND owner_id = $2`, groupID, ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete group"})
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete group"})
	}

	return c.JSON(fiber.Map{"deleted": true})
}

// ShareGroup issues the public link token for a group. COALESCE keeps the
// first token ever written, so repeated or concurrent share requests all get
// the same link back.
func ShareGroup(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(int)
	groupID := c.Params("id")
	if !validID(groupID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	var publicLink string
	err := database.DB.QueryRow(`
		UPDATE groups
		SET public_link = COALESCE(public_link, $1), is_public = TRUE
		WHERE id = $2 AND owner_id = $3
		RETURNING public_link
	`, uuid.NewString(), groupID, ownerID).Scan(&publicLink)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate public link"})
	}

	return c.JSON(fiber.Map{"public_link": publicLink})
}
