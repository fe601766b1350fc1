package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/siddhardha-create/lifeOS/config"
	"github.com/siddhardha-create/lifeOS/controllers"
	"github.com/siddhardha-create/lifeOS/routes"
)

func main() {

	log.Println("Starting LifeOS backend...")

	config.InitDB()
	controllers.Init()

	r := gin.Default()
	api := r.Group("/api")
	routes.SetupRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
