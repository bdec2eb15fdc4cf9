package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"

	"WarehouseGolang/database/postgres"
	"WarehouseGolang/pkg/log"
)

const qrImageSize = 256

// testCodes cover each verdict the verifier can return, for manual runs
// against a seeded database.
var testCodes = []struct {
	data string
	name string
}{
	{"1/1/1", "Correct_Dove_Soap_Shelf1_BlockA"},
	{"2/4/2", "Correct_Pantene_Shampoo_Shelf2_BlockB"},
	{"3/7/3", "Correct_Colgate_Toothpaste_Shelf3_BlockC"},
	{"1/1/2", "MISPLACED_Dove_Soap_WrongLocation"},
	{"2/4/1", "MISPLACED_Pantene_Shampoo_WrongLocation"},
	{"99/99/99", "INVALID_NotInDatabase"},
}

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "test" {
		if err := generateTestCodes("test_qr_codes"); err != nil {
			logger.Fatalf("Failed to generate test QR codes: %v", err)
		}
		logger.Infof("Generated %d test QR codes", len(testCodes))
		return
	}

	count, err := generateProductCodes("qr_codes", logger)
	if err != nil {
		logger.Fatalf("Failed to generate product QR codes: %v", err)
	}
	logger.Infof("Generated %d product QR codes", count)
}

func generateTestCodes(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	for _, code := range testCodes {
		path := filepath.Join(outputDir, code.name+".png")
		if err := qrcode.WriteFile(code.data, qrcode.Medium, qrImageSize, path); err != nil {
			return err
		}
	}

	return nil
}

func generateProductCodes(outputDir string, logger *logrus.Logger) (int, error) {
	db, err := postgres.New()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, err
	}

	var rows []struct {
		ID     int    `db:"id"`
		SKU    string `db:"sku"`
		QRCode string `db:"qr_code"`
	}
	if err := db.Select(&rows, `SELECT id, sku, qr_code FROM products WHERE is_active = TRUE ORDER BY id`); err != nil {
		return 0, err
	}

	for _, row := range rows {
		filename := fmt.Sprintf("%d_%s_%s.png", row.ID, row.SKU, strings.ReplaceAll(row.QRCode, "/", "-"))
		path := filepath.Join(outputDir, filename)
		if err := qrcode.WriteFile(row.QRCode, qrcode.Medium, qrImageSize, path); err != nil {
			return 0, err
		}
		logger.Infof("Generated %s", filename)
	}

	return len(rows), nil
}
