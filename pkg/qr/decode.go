package qr

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/makiuchi-d/gozxing"
	multiqrcode "github.com/makiuchi-d/gozxing/multi/qrcode"

	"WarehouseGolang/internal/entity"
)

// DecodeFrame decodes an encoded image and returns every QR code found in it.
// Frames that fail to decode are the caller's to drop; no retry here.
func DecodeFrame(data []byte) ([]entity.Detection, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return DecodeImage(img)
}

// DecodeImage runs the multi-code QR reader over one frame. A frame with no
// readable code returns an empty slice and the reader's not-found error.
func DecodeImage(img image.Image) ([]entity.Detection, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, err
	}

	reader := multiqrcode.NewQRCodeMultiReader()
	results, err := reader.DecodeMultiple(bmp, nil)
	if err != nil {
		return nil, err
	}

	detections := make([]entity.Detection, 0, len(results))
	for _, r := range results {
		data := strings.TrimSpace(r.GetText())
		if data == "" {
			continue
		}
		detections = append(detections, entity.Detection{
			Data:   data,
			BBox:   boundingBox(r.GetResultPoints()),
			Center: centerOf(r.GetResultPoints()),
		})
	}

	return detections, nil
}

func boundingBox(points []gozxing.ResultPoint) entity.BoundingBox {
	if len(points) == 0 {
		return entity.BoundingBox{}
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, p := range points {
		minX = math.Min(minX, p.GetX())
		minY = math.Min(minY, p.GetY())
		maxX = math.Max(maxX, p.GetX())
		maxY = math.Max(maxY, p.GetY())
	}

	return entity.BoundingBox{
		X:      int(minX),
		Y:      int(minY),
		Width:  int(maxX - minX),
		Height: int(maxY - minY),
	}
}

func centerOf(points []gozxing.ResultPoint) entity.Point {
	box := boundingBox(points)
	return entity.Point{
		X: float64(box.X) + float64(box.Width)/2,
		Y: float64(box.Y) + float64(box.Height)/2,
	}
}
