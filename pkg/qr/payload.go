package qr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat marks payloads that do not parse into the
// category/product/location triple. Callers match it with errors.Is and
// downgrade to an "invalid" verdict, never a fault.
var ErrInvalidFormat = errors.New("invalid qr payload format")

// Payload is the decoded triple carried by a product QR code.
type Payload struct {
	CategoryID int
	ProductID  int
	LocationID int
}

// ParsePayload splits a raw QR string on "/" and parses the first three parts
// as non-negative integers. Extra trailing parts are ignored; no upper bound
// is enforced on the ids.
func ParsePayload(raw string) (Payload, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) < 3 {
		return Payload{}, fmt.Errorf("%w: expected category/product/location, got %q", ErrInvalidFormat, raw)
	}

	ids := make([]int, 3)
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Payload{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if n < 0 {
			return Payload{}, fmt.Errorf("%w: id must be non-negative, got %d", ErrInvalidFormat, n)
		}
		ids[i] = n
	}

	return Payload{
		CategoryID: ids[0],
		ProductID:  ids[1],
		LocationID: ids[2],
	}, nil
}
