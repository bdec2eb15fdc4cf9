package entity

import "time"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Detection is one decoded QR code within a single camera frame.
type Detection struct {
	Data   string      `json:"data"`
	BBox   BoundingBox `json:"bbox"`
	Center Point       `json:"center"`
}

type PlacementStatus string

const (
	PlacementCorrect   PlacementStatus = "correct"
	PlacementMisplaced PlacementStatus = "misplaced"
	PlacementNoShelf   PlacementStatus = "no_shelf"
)

// PlacementResult is the outcome of matching one product detection against
// the shelf markers visible in the same frame. DetectedShelf is "-" when no
// shelf marker passed the spatial gates.
type PlacementResult struct {
	ProductID     string          `json:"product_id"`
	ExpectedShelf string          `json:"expected_shelf"`
	DetectedShelf string          `json:"detected_shelf"`
	Status        PlacementStatus `json:"status"`
}

type Frame struct {
	Data       []byte
	CapturedAt time.Time
}
