package main

import (
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"WarehouseGolang/database/postgres"
	"WarehouseGolang/pkg/log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY,
		shelf_number INTEGER NOT NULL,
		block TEXT NOT NULL,
		zone TEXT,
		capacity INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		sku TEXT,
		category_id INTEGER NOT NULL REFERENCES categories(id),
		location_id INTEGER NOT NULL REFERENCES locations(id),
		quantity INTEGER NOT NULL DEFAULT 0,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		barcode TEXT,
		qr_code TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// scan_logs carries no foreign keys so that scans referencing rows that
	// were deleted later, or locations that never existed, still persist.
	`CREATE TABLE IF NOT EXISTS scan_logs (
		id BIGSERIAL PRIMARY KEY,
		product_id INTEGER,
		qr_data TEXT NOT NULL,
		scanned_location_id INTEGER,
		is_correct_location BOOLEAN NOT NULL DEFAULT FALSE,
		status TEXT NOT NULL,
		message TEXT,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scan_logs_timestamp ON scan_logs (timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_products_qr_code ON products (qr_code)`,
}

type categoryRow struct {
	ID          int
	Name        string
	Description string
}

type locationRow struct {
	ID          int
	ShelfNumber int
	Block       string
	Zone        string
	Capacity    int
}

type productRow struct {
	ID         int
	Name       string
	SKU        string
	CategoryID int
	LocationID int
	Quantity   int
	Price      float64
	QRCode     string
	Barcode    string
}

var categories = []categoryRow{
	{1, "Soap", "Personal care soaps and body wash products"},
	{2, "Shampoo", "Hair care and shampoo products"},
	{3, "Toothpaste", "Oral care and dental hygiene products"},
	{4, "Detergent", "Laundry and cleaning detergents"},
	{5, "Skincare", "Skincare and beauty products"},
	{6, "Haircare", "Hair styling and treatment products"},
}

var locations = []locationRow{
	{1, 1, "A", "Personal Care", 150},
	{2, 2, "B", "Hair Products", 120},
	{3, 3, "C", "Dental Care", 100},
	{4, 4, "D", "Cleaning", 200},
	{5, 5, "A", "Beauty", 80},
	{6, 6, "B", "Hair Treatment", 90},
}

var products = []productRow{
	{1, "Dove Beauty Bar", "SOAP-001", 1, 1, 45, 3.99, "1/1/1", "7501234567890"},
	{2, "Lux Velvet Touch Soap", "SOAP-002", 1, 1, 38, 2.49, "1/2/1", "7501234567891"},
	{3, "Lifebuoy Total Protect", "SOAP-003", 1, 1, 52, 1.99, "1/3/1", "7501234567892"},
	{4, "Pantene Pro-V Shampoo", "SHAMP-001", 2, 2, 67, 5.99, "2/4/2", "7501234567893"},
	{5, "Head & Shoulders Anti-Dandruff", "SHAMP-002", 2, 2, 55, 6.49, "2/5/2", "7501234567894"},
	{6, "Sunsilk Perfect Straight", "SHAMP-003", 2, 2, 48, 4.99, "2/6/2", "7501234567895"},
	{7, "Colgate Total Advanced", "TOOTH-001", 3, 3, 92, 3.49, "3/7/3", "7501234567896"},
	{8, "Sensodyne Rapid Relief", "TOOTH-002", 3, 3, 73, 5.99, "3/8/3", "7501234567897"},
	{9, "Pepsodent Germi-Check", "TOOTH-003", 3, 3, 88, 2.99, "3/9/3", "7501234567898"},
	{10, "Tide Original Detergent", "DET-001", 4, 4, 105, 12.99, "4/10/4", "7501234567899"},
	{11, "Ariel Matic Front Load", "DET-002", 4, 4, 98, 11.49, "4/11/4", "7501234567900"},
	{12, "Surf Excel Easy Wash", "DET-003", 4, 4, 112, 9.99, "4/12/4", "7501234567901"},
	{13, "Olay Regenerist Cream", "SKIN-001", 5, 5, 34, 24.99, "5/13/5", "7501234567902"},
	{14, "Neutrogena Hydro Boost", "SKIN-002", 5, 5, 41, 19.99, "5/14/5", "7501234567903"},
	{15, "L'Oreal Hair Serum", "HAIR-001", 6, 6, 29, 8.99, "6/15/6", "7501234567904"},
	{16, "TRESemme Keratin Smooth", "HAIR-002", 6, 6, 37, 7.49, "6/16/6", "7501234567905"},
}

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	db, err := postgres.New()
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			logger.Fatalf("Failed to apply schema: %v", err)
		}
	}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM categories"); err != nil {
		logger.Fatalf("Failed to check existing data: %v", err)
	}
	if count > 0 {
		logger.Info("Database already seeded, skipping")
		return
	}

	if err := seed(db, logger); err != nil {
		logger.Fatalf("Failed to seed database: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"categories": len(categories),
		"locations":  len(locations),
		"products":   len(products),
	}).Info("Database seeded")
}

func seed(db *sqlx.DB, logger *logrus.Logger) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err.Error() != "sql: transaction has already been committed or rolled back" {
			logger.Warnf("Rollback failed: %v", err)
		}
	}()

	for _, c := range categories {
		if _, err := tx.Exec(
			`INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)`,
			c.ID, c.Name, c.Description,
		); err != nil {
			return err
		}
	}

	for _, l := range locations {
		if _, err := tx.Exec(
			`INSERT INTO locations (id, shelf_number, block, zone, capacity) VALUES ($1, $2, $3, $4, $5)`,
			l.ID, l.ShelfNumber, l.Block, l.Zone, l.Capacity,
		); err != nil {
			return err
		}
	}

	for _, p := range products {
		if _, err := tx.Exec(
			`INSERT INTO products (id, name, sku, category_id, location_id, quantity, price, qr_code, barcode)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID, p.Name, p.SKU, p.CategoryID, p.LocationID, p.Quantity, p.Price, p.QRCode, p.Barcode,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
