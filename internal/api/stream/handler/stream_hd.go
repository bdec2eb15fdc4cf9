package streamHandler

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/valyala/fasthttp"

	"WarehouseGolang/internal/api/stream"
	"WarehouseGolang/pkg/handlerUtil"
	"WarehouseGolang/pkg/log"
)

const streamFrameInterval = 100 * time.Millisecond

func (h *StreamHandler) UploadFrame(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	fileHeader, err := ctx.FormFile("frame")
	if err != nil {
		return errHandler.Handle(ctx, requestID, stream.ErrNoFrame, ctx.Path(), "read_frame_field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, stream.ErrInvalidFrame, ctx.Path(), "open_frame")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, stream.ErrInvalidFrame, ctx.Path(), "read_frame")
	}

	if err := h.utils.ValidateFrameBytes(data); err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"size":       len(data),
		}).Warn("Rejected undecodable frame upload")
		return errHandler.Handle(ctx, requestID, stream.ErrInvalidFrame, ctx.Path(), "validate_frame")
	}

	h.streamService.UpdateFrame(data)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"status": "success",
	})
}

// VideoFeed serves the relayed camera feed as an MJPEG stream. Each part
// carries the latest uploaded frame; when no frame has arrived yet the
// stream stays silent until one does.
func (h *StreamHandler) VideoFeed(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"ip":         ctx.IP(),
	}).Info("Video feed viewer connected")

	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderContentType, "multipart/x-mixed-replace; boundary=frame")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(streamFrameInterval)
		defer ticker.Stop()

		for range ticker.C {
			frame, ok := h.streamService.Latest()
			if !ok {
				continue
			}

			if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(frame)); err != nil {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			if _, err := w.Write([]byte("\r\n")); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}

// handleScanSocket registers the connection for scan events and then blocks
// on the read loop so the close handshake is observed.
func (h *StreamHandler) handleScanSocket(c *websocket.Conn) {
	h.streamService.Subscribe(c)
	defer h.streamService.Unsubscribe(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Scan event WebSocket error: %v", err)
			}
			break
		}
	}
}
