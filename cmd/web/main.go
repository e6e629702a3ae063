package main

import (
	"reelboard_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// .env опционален: в проде конфигурация приходит из переменных окружения
	_ = godotenv.Load()

	app.Run()
}
