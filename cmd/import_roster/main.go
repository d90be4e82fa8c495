package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"leetboard-backend/database"
	"leetboard-backend/leetcode"

	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("RENDER") == "" {
		_ = godotenv.Load()
	}

	var (
		csvPath = flag.String("csv", "", "Path to CSV file with name,username columns")
		groupID = flag.String("group", "", "Group id to add the members to")
	)
	flag.Parse()

	if err := validateFlags(*csvPath, *groupID); err != nil {
		log.Fatal(err)
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv file: %v", err)
	}
	defer file.Close()

	entries, err := leetcode.ParseRosterCSV(file)
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}

	database.ConnectDB()
	ctx := context.Background()

	var exists bool
	if err := database.DB.QueryRow(`SELECT TRUE FROM groups WHERE id = $1`, *groupID).Scan(&exists); err != nil {
		log.Fatalf("group %s not found: %v", *groupID, err)
	}

	existing := map[string]bool{}
	rows, err := database.DB.Query(`SELECT leetcode_username FROM group_members WHERE group_id = $1`, *groupID)
	if err != nil {
		log.Fatalf("load current roster: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			log.Fatalf("read current roster: %v", err)
		}
		existing[username] = true
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("read current roster: %v", err)
	}

	client := leetcode.NewClient()
	added, skipped := 0, 0
	for _, entry := range entries {
		if existing[entry.Username] {
			log.Printf("skipping %s: already in group", entry.Username)
			skipped++
			continue
		}
		if _, _, err := client.FetchUser(ctx, entry.Username); err != nil {
			log.Printf("skipping %s: %v", entry.Username, err)
			skipped++
			continue
		}
		if _, err := database.DB.Exec(`
			INSERT INTO group_members (group_id, display_name, leetcode_username)
			VALUES ($1, $2, $3)
		`, *groupID, entry.Name, entry.Username); err != nil {
			log.Printf("skipping %s: %v", entry.Username, err)
			skipped++
			continue
		}
		existing[entry.Username] = true
		added++
	}

	fmt.Printf("Imported %d members into group %s (%d skipped)\n", added, *groupID, skipped)
}

func validateFlags(csvPath, groupID string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("--csv is required")
	}
	if strings.TrimSpace(groupID) == "" {
		return fmt.Errorf("--group is required")
	}
	return nil
}
