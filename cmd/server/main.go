package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/matheusvf/loja-backend/internal/config"
	"github.com/matheusvf/loja-backend/internal/es"
	"github.com/matheusvf/loja-backend/internal/handlers"
	"github.com/matheusvf/loja-backend/internal/logging"
	authmw "github.com/matheusvf/loja-backend/internal/middleware/auth"
	"github.com/matheusvf/loja-backend/internal/mykafka"
	"github.com/matheusvf/loja-backend/internal/service"
	httpserver "github.com/matheusvf/loja-backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	prod, err := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	e.Static("/images", filepath.Join(configuration.PUBLIC_DIR, "images"))

	token := &authmw.TokenMiddleware{JWTSecret: jwtSecret}
	authSvc := &service.AuthService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	deps := httpserver.Deps{
		AuthHandler:     &handlers.AuthHandler{Svc: authSvc, Producer: prod},
		CategoryHandler: &handlers.CategoryHandler{Svc: &service.CategoryService{DB: db}},
		ProductHandler: &handlers.ProductHandler{
			Svc:      &service.ProductService{DB: db, PublicDir: configuration.PUBLIC_DIR},
			Producer: prod,
			Indexer:  &es.Indexer{Client: esClient, Index: "products"},
		},
		CartHandler:   &handlers.CartHandler{Svc: &service.CartService{DB: db}, Producer: prod},
		UserHandler:   &handlers.UserHandler{Svc: &service.UserService{DB: db}},
		SearchHandler: &handlers.SearchHandler{ES: esClient, Index: "products"},
		Token:         token,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
