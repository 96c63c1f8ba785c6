package app

import (
	"context"
	"html/template"
	"log"
	"time"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	handlers "yatube/internal/handler"
	"yatube/internal/render"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/storage"
)

type App struct {
	DB       *database.DB
	Cache    cache.Cache
	Services *service.Service
	Handlers *handlers.Handlers

	closers []func() error
}

// New connects every backing service and wires the handlers.
func New(cfg *config.Config) *App {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	app := &App{DB: db}
	app.closers = append(app.closers, db.CloseDB)

	// listing cache
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cache.NewRedisClient(cfg.Redis), cfg.Redis.Prefix)
		if err := redisCache.Ping(ctx); err != nil {
			log.Fatalf("Не удалось подключиться к Redis: %v", err)
		}
		app.Cache = redisCache
		app.closers = append(app.closers, redisCache.Close)
	} else {
		log.Printf("Redis отключён, используется кеш в памяти")
		app.Cache = cache.NewMemoryCache()
	}

	renderer, err := render.New(template.FuncMap{"imageURL": minioClient.ImageURL})
	if err != nil {
		log.Fatalf("Не удалось загрузить шаблоны: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	app.Services = service.NewService(repo, cfg, minioClient, app.Cache, db)
	app.Handlers = handlers.NewHandlers(app.Services, renderer, cfg)

	return app
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Ошибка при закрытии соединения: %v", err)
		}
	}
}
