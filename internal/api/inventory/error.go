package inventory

import "WarehouseGolang/pkg/response"

var (
	ErrProductNotFound  = response.NewError(404, "product not found")
	ErrLocationNotFound = response.NewError(404, "location not found")
	ErrCategoryNotFound = response.NewError(404, "category not found")
	ErrEmptyQRData      = response.NewError(400, "no qr data provided")
	ErrWriteScanLog     = response.NewError(500, "failed to write scan log")
	ErrStoreUnavailable = response.NewError(503, "inventory store unavailable")
)
