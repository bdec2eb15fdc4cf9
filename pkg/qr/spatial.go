package qr

import (
	"math"
	"strings"

	"WarehouseGolang/internal/entity"
)

// MatcherConfig tunes the geometric verification gates. The defaults encode
// the physical layout assumption: a shelf marker sits at or below the product
// it labels, within one shelf-slot width at the expected camera distance.
type MatcherConfig struct {
	// ProductRowThreshold is the image row above which a detection is
	// classified as a product even without a marker token.
	ProductRowThreshold float64
	// MaxHorizontalOffset is the widest |dx| between a product and a shelf
	// marker that still counts as the same slot.
	MaxHorizontalOffset float64
}

func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		ProductRowThreshold: 300,
		MaxHorizontalOffset: 150,
	}
}

// Matcher pairs product QR detections with the nearest shelf-marker detection
// in the same frame. It is pure: no database, the expected shelf is embedded
// in the product payload's third field.
type Matcher struct {
	cfg MatcherConfig
}

func NewMatcher(cfg MatcherConfig) *Matcher {
	return &Matcher{cfg: cfg}
}

type productDetection struct {
	productID     string
	expectedShelf string
	center        entity.Point
}

type shelfDetection struct {
	shelfID string
	center  entity.Point
}

// Match classifies each detection as product or shelf marker, pairs every
// product with its nearest shelf below, and judges placement. Detections
// whose payload has fewer than three "/" parts are skipped.
func (m *Matcher) Match(detections []entity.Detection) []entity.PlacementResult {
	products, shelves := m.classify(detections)

	results := make([]entity.PlacementResult, 0, len(products))
	for _, p := range products {
		matched, ok := m.nearestShelfBelow(p, shelves)

		result := entity.PlacementResult{
			ProductID:     p.productID,
			ExpectedShelf: p.expectedShelf,
			DetectedShelf: "-",
			Status:        entity.PlacementNoShelf,
		}
		if ok {
			result.DetectedShelf = matched
			if matched == p.expectedShelf {
				result.Status = entity.PlacementCorrect
			} else {
				result.Status = entity.PlacementMisplaced
			}
		}
		results = append(results, result)
	}

	return results
}

// classify splits detections into products and shelf markers. A detection is
// a product when its category field contains a "P" token or its center sits
// above the configured row; either condition is sufficient.
func (m *Matcher) classify(detections []entity.Detection) ([]productDetection, []shelfDetection) {
	var products []productDetection
	var shelves []shelfDetection

	for _, d := range detections {
		parts := strings.Split(d.Data, "/")
		if len(parts) < 3 {
			continue
		}

		categoryField, productID, shelfID := parts[0], parts[1], parts[2]
		if strings.Contains(strings.ToUpper(categoryField), "P") || d.Center.Y < m.cfg.ProductRowThreshold {
			products = append(products, productDetection{
				productID:     productID,
				expectedShelf: shelfID,
				center:        d.Center,
			})
		} else {
			shelves = append(shelves, shelfDetection{
				shelfID: shelfID,
				center:  d.Center,
			})
		}
	}

	return products, shelves
}

// nearestShelfBelow returns the shelf id minimizing Euclidean distance to the
// product, restricted to shelves strictly below it and within the horizontal
// offset gate. The matcher only looks downward.
func (m *Matcher) nearestShelfBelow(p productDetection, shelves []shelfDetection) (string, bool) {
	var matched string
	found := false
	minDistance := math.MaxFloat64

	for _, s := range shelves {
		dx := math.Abs(p.center.X - s.center.X)
		dy := s.center.Y - p.center.Y
		if dy <= 0 || dx >= m.cfg.MaxHorizontalOffset {
			continue
		}

		dist := math.Hypot(dx, dy)
		if dist < minDistance {
			minDistance = dist
			matched = s.shelfID
			found = true
		}
	}

	return matched, found
}
