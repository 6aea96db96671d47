package main

import (
	"log"

	"handwork_backend/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env не найден, используем окружение процесса")
	}

	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Миграция не выполнена: %v", err)
	}
}
