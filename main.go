package main

import (
	"coursify/config"
	"coursify/database"
	aiRoutes "coursify/routers/aiRoutes"
	authRoutes "coursify/routers/authRoutes"
	courseRoutes "coursify/routers/courseRoutes"
	userRoutes "coursify/routers/userRoutes"
	"coursify/services/generation"
	"coursify/services/videosearch"
	"coursify/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Wire the generation pipeline
	generation.Init(database.Database.Db, generation.NewGeminiClient(), videosearch.NewYoutubeClient())

	utils.StartCleanupScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	aiRoutes.SetupAiRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
