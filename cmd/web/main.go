package main

import (
	"handwork_backend/internal/app"
	"handwork_backend/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env не найден, используем окружение процесса")
	}

	app.Run()
}
