package main

import (
	"fmt"
	"log"
	"net/http"

	"yatube/cmd/app"
	"yatube/internal/config"
	"yatube/internal/server"
)

func main() {
	// setting up config, CONFIG_FILE may point to an INI overlay
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	application := app.New(cfg)
	defer application.Close()

	handlerChain := server.NewRouter(application.Handlers, cfg)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s (%s)\n", cfg.DB.DbNAME, cfg.DB.DbDRIVER)
	fmt.Printf("Адрес: http://localhost:%d/\n", cfg.ServerPort)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
