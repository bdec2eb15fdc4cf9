package config

import (
	"WarehouseGolang/database/postgres"
	inventoryHandler "WarehouseGolang/internal/api/inventory/handler"
	inventoryRepository "WarehouseGolang/internal/api/inventory/repository"
	inventoryService "WarehouseGolang/internal/api/inventory/service"
	streamHandler "WarehouseGolang/internal/api/stream/handler"
	streamService "WarehouseGolang/internal/api/stream/service"
	"WarehouseGolang/internal/middleware"
	"WarehouseGolang/pkg/redis"
	"WarehouseGolang/pkg/s3"
	"WarehouseGolang/pkg/smtp"
	"WarehouseGolang/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine     *fiber.App
	db         *sqlx.DB
	log        *logrus.Logger
	middleware middleware.Middleware
	validator  *validator.Validate
	utils      utils.IUtils
	handlers   []handler
	cache      redis.ICache
	mailer     smtp.IMailer
	s3Client   s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithCache(cache redis.ICache) ServerOption {
	return func(s *Server) error {
		s.cache = cache
		return nil
	}
}

func WithSMTPMailer(mailer smtp.IMailer) ServerOption {
	return func(s *Server) error {
		s.mailer = mailer
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Stream Domain
	streamServices := streamService.NewStreamService(s.log)
	streamHandlers := streamHandler.New(s.log, s.validator, s.middleware, streamServices, s.utils)

	// Inventory Domain
	inventoryRepo := inventoryRepository.New(s.db, s.log)
	inventoryServices := inventoryService.NewInventoryService(s.log, inventoryRepo, s.cache, s.mailer, s.s3Client, streamServices, streamServices)
	inventoryHandlers := inventoryHandler.New(s.log, s.validator, s.middleware, inventoryServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, streamHandlers, inventoryHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "5000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	healthcheck := func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}

	s.engine.Get("/", healthcheck)
	s.engine.Get("/api/v1/health", healthcheck)
}
