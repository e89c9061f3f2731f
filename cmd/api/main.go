package main

import (
	"fmt"
	"log"
	"net/http"

	"goblog/cmd/app"
	"goblog/internal/config"
	handlers "goblog/internal/handler"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg)

	router := handlers.NewRouter(handler)

	handlerChain := handlers.Chain(
		router,
		handlers.LoggingMiddleware,
		handlers.CORSMiddleware(cfg.AllowedOrigins),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
