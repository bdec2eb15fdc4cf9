package streamHandler

import (
	streamService "WarehouseGolang/internal/api/stream/service"
	"WarehouseGolang/internal/middleware"
	"WarehouseGolang/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type StreamHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	streamService streamService.IStreamService
	utils         utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ss streamService.IStreamService,
	utils utils.IUtils,
) *StreamHandler {
	return &StreamHandler{
		log:           log,
		validator:     validator,
		middleware:    middleware,
		streamService: ss,
		utils:         utils,
	}
}

func (h *StreamHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Post("/upload_frame", h.UploadFrame)
	srv.Get("/video_feed", h.VideoFeed)

	ws := srv.Group("/ws")
	ws.Use("/scans", wsMiddleware)
	ws.Get("/scans", websocket.New(h.handleScanSocket))
}
