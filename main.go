package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leaderboard-analytics/config"
	"leaderboard-analytics/database"
	FiberApp "leaderboard-analytics/fiber"
	"leaderboard-analytics/route"
)

func main() {
	config.LoadEnv()

	database.ConnectMongo()

	app := FiberApp.SetupFiber()
	route.SetupAnalyticsRoutes(app, database.MongoDB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		log.Printf("Server running on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
