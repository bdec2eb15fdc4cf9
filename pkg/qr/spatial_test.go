package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WarehouseGolang/internal/entity"
)

func detection(data string, x, y float64) entity.Detection {
	return entity.Detection{
		Data:   data,
		Center: entity.Point{X: x, Y: y},
	}
}

func TestMatchPicksNearestShelfByEuclideanDistance(t *testing.T) {
	// Threshold lowered so the y=250 shelf marker classifies as a shelf.
	m := NewMatcher(MatcherConfig{ProductRowThreshold: 220, MaxHorizontalOffset: 150})

	// Product at y=200, two shelves below: y=250 with dx=10 and y=400 with
	// dx=5. The y=250 shelf is nearer by straight-line distance and must win
	// even though the other has the smaller horizontal offset.
	results := m.Match([]entity.Detection{
		detection("P1/7/5", 100, 200),
		detection("S/0/5", 110, 250),
		detection("S/0/9", 105, 400),
	})

	require.Len(t, results, 1)
	assert.Equal(t, "7", results[0].ProductID)
	assert.Equal(t, "5", results[0].DetectedShelf)
	assert.Equal(t, entity.PlacementCorrect, results[0].Status)
}

func TestMatchNeverSelectsShelfAboveProduct(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig())

	// The only shelf sits above the product; the matcher only looks downward.
	results := m.Match([]entity.Detection{
		detection("P1/7/5", 100, 350),
		detection("S/0/5", 100, 310),
	})

	require.Len(t, results, 1)
	assert.Equal(t, entity.PlacementNoShelf, results[0].Status)
	assert.Equal(t, "-", results[0].DetectedShelf)
}

func TestMatchHorizontalOffsetGate(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig())

	// Shelf below but 150px or more to the side is outside one slot width.
	results := m.Match([]entity.Detection{
		detection("P1/7/5", 100, 200),
		detection("S/0/5", 260, 310),
	})

	require.Len(t, results, 1)
	assert.Equal(t, entity.PlacementNoShelf, results[0].Status)
}

func TestMatchMisplacedWhenShelfIDDiffers(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig())

	results := m.Match([]entity.Detection{
		detection("P1/7/5", 100, 200),
		detection("S/0/9", 100, 320),
	})

	require.Len(t, results, 1)
	assert.Equal(t, entity.PlacementMisplaced, results[0].Status)
	assert.Equal(t, "9", results[0].DetectedShelf)
	assert.Equal(t, "5", results[0].ExpectedShelf)
}

func TestClassifyMarkerTokenBeatsRowPosition(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig())

	// Category field carries a "P" token, so the detection is a product even
	// though its center is below the row threshold.
	results := m.Match([]entity.Detection{
		detection("P2/3/1", 100, 450),
		detection("S/0/1", 100, 470),
	})

	require.Len(t, results, 1)
	assert.Equal(t, "3", results[0].ProductID)
}

func TestClassifyRowThresholdAlone(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig())

	// No marker token, but the center above row 300 still classifies as a
	// product; the shelf detection below it has no token and sits low.
	results := m.Match([]entity.Detection{
		detection("2/3/1", 100, 100),
		detection("S/0/1", 100, 350),
	})

	require.Len(t, results, 1)
	assert.Equal(t, entity.PlacementCorrect, results[0].Status)
}

func TestMatchSkipsMalformedPayloads(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig())

	results := m.Match([]entity.Detection{
		detection("garbage", 100, 100),
		detection("1/2", 100, 100),
	})

	assert.Empty(t, results)
}
