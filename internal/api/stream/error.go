package stream

import "WarehouseGolang/pkg/response"

var (
	ErrNoFrame      = response.NewError(400, "no frame provided")
	ErrInvalidFrame = response.NewError(400, "invalid frame")
)
