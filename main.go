package main

import (
	"os"

	"github.com/campushub/lms-app/config"
	"github.com/campushub/lms-app/database"
	"github.com/campushub/lms-app/notifier"
	"github.com/campushub/lms-app/router"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDB(db)

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate schema: %v", err)
	}
	utils.InfoLogger.Println("Schema migration completed.")

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.StartBlacklistCleanup()

	hub := notifier.NewHub()
	r := router.SetupRouter(db, hub)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
