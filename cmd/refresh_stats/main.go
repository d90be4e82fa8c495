package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"leetboard-backend/database"
	"leetboard-backend/leetcode"

	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("RENDER") == "" {
		_ = godotenv.Load()
	}

	var (
		groupID  = flag.String("group", "", "Limit the refresh to one group")
		memberID = flag.String("member", "", "Limit the refresh to one member")
	)
	flag.Parse()

	database.ConnectDB()

	ctx := context.Background()
	repo := leetcode.NewPostgresRepository(database.DB)

	members, err := repo.ListMembers(ctx, leetcode.MemberFilter{
		GroupID:  *groupID,
		MemberID: *memberID,
	})
	if err != nil {
		log.Fatalf("load members: %v", err)
	}
	if len(members) == 0 {
		log.Fatal("no members matched the given scope")
	}

	updated := leetcode.RefreshMembers(ctx, leetcode.NewClient(), repo, members)
	fmt.Printf("Refreshed stats for %d/%d members\n", updated, len(members))
}
