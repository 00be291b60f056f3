package main

import (
	"log"
	"net/http"

	"workshop_manager/internal/config"
	"workshop_manager/internal/logger"
	"workshop_manager/internal/routes"
	"workshop_manager/internal/services"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	strict := config.GetEnv("STRICT_STATUS_FLOW", "false") == "true"

	// Setup Gin router
	r := routes.SetupRouter(config.DB, strict)

	// Daily critical-stock scan
	watcher := services.NewStockWatcher(config.DB)
	watcher.Start()
	defer watcher.Stop()

	port := config.GetEnv("PORT", "8080")
	log.Println("🚀 Server running at :" + port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, r))
}
