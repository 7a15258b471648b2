package main

import (
	_ "rugquotes/docs"
	"rugquotes/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Rug Quote Tracker API
// @version         1.0
// @description     Quote tracking for a custom-rug business: staff admin API plus a customer approval portal, backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
