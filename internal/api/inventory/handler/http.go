package inventoryHandler

import (
	inventoryService "WarehouseGolang/internal/api/inventory/service"
	"WarehouseGolang/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type InventoryHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	inventoryService inventoryService.IInventoryService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	inventoryService inventoryService.IInventoryService,
) *InventoryHandler {
	return &InventoryHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		inventoryService: inventoryService,
	}
}

func (h *InventoryHandler) Start(srv fiber.Router) {
	srv.Post("/verify_qr", h.VerifyQR)
	srv.Get("/products", h.GetProducts)
	srv.Get("/scan_history", h.GetScanHistory)
}
