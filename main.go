package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"leetboard-backend/database"
	"leetboard-backend/leetcode"
	"leetboard-backend/routes"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load env vars from .env file
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("No .env file found, continuing with system environment variables")
		}
	}

	database.ConnectDB()

	port := os.Getenv("PORT")
	if port == "" {
		log.Fatal("PORT environment variable not set")
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Setup routes
	routes.Setup(app)

	startRefreshScheduler()

	// Start server
	log.Println("Server running on port " + port)
	log.Fatal(app.Listen(":" + port))
}

// startRefreshScheduler re-snapshots every tracked member on a fixed interval
// when REFRESH_INTERVAL_MINUTES is set. Without it the only refresh triggers
// are the HTTP endpoint and the CLI.
func startRefreshScheduler() {
	minutes, err := strconv.Atoi(os.Getenv("REFRESH_INTERVAL_MINUTES"))
	if err != nil || minutes <= 0 {
		return
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("scheduler: %v", err)
		return
	}

	client := leetcode.NewClient()
	repo := leetcode.NewPostgresRepository(database.DB)

	_, err = sched.NewJob(
		gocron.DurationJob(time.Duration(minutes)*time.Minute),
		gocron.NewTask(func() {
			ctx := context.Background()
			members, err := repo.ListMembers(ctx, leetcode.MemberFilter{})
			if err != nil {
				log.Printf("scheduler: load members: %v", err)
				return
			}
			updated := leetcode.RefreshMembers(ctx, client, repo, members)
			log.Printf("scheduler: refreshed stats for %d/%d members", updated, len(members))
		}),
	)
	if err != nil {
		log.Printf("scheduler: %v", err)
		return
	}

	sched.Start()
	log.Printf("Stats refresh scheduled every %d minutes", minutes)
}
