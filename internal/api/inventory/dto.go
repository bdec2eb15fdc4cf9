package inventory

import "time"

type VerifyQRRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

type ProductSummary struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CategorySummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type LocationSummary struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// VerifyQRResponse carries the verdict plus whatever reference data could be
// resolved. The sub-objects are nil for invalid/not_found verdicts or when a
// reference row is missing.
type VerifyQRResponse struct {
	Status           string           `json:"status"`
	IsCorrect        bool             `json:"is_correct"`
	Message          string           `json:"message"`
	QRData           string           `json:"qr_data,omitempty"`
	Product          *ProductSummary  `json:"product,omitempty"`
	Category         *CategorySummary `json:"category,omitempty"`
	ExpectedLocation *LocationSummary `json:"expected_location,omitempty"`
	ScannedLocation  *LocationSummary `json:"scanned_location,omitempty"`
}

type ProductResponse struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	QRCode   string  `json:"qr_code"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category *string `json:"category"`
	Location *string `json:"location"`
}

type ScanLogResponse struct {
	ID        int64     `json:"id"`
	QRData    string    `json:"qr_data"`
	Status    string    `json:"status"`
	IsCorrect bool      `json:"is_correct"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Product   *string   `json:"product"`
}

// ScanEvent is pushed to websocket dashboard clients after every persisted
// verification.
type ScanEvent struct {
	Status    string    `json:"status"`
	IsCorrect bool      `json:"is_correct"`
	Message   string    `json:"message"`
	QRData    string    `json:"qr_data"`
	Timestamp time.Time `json:"timestamp"`
}
