package inventoryRepository

const (
	queryGetProductByQRCode = `
		SELECT
			id,
			name,
			sku,
			category_id,
			location_id,
			quantity,
			price,
			barcode,
			qr_code,
			is_active,
			created_at,
			updated_at
		FROM products
		WHERE qr_code = :qr_code
		  AND is_active = TRUE
	`

	queryGetProductByID = `
		SELECT
			id,
			name,
			sku,
			category_id,
			location_id,
			quantity,
			price,
			barcode,
			qr_code,
			is_active,
			created_at,
			updated_at
		FROM products
		WHERE id = :id
		  AND is_active = TRUE
	`

	queryGetAllActiveProducts = `
		SELECT
			p.id,
			p.name,
			p.sku,
			p.category_id,
			p.location_id,
			p.quantity,
			p.price,
			p.barcode,
			p.qr_code,
			p.is_active,
			p.created_at,
			p.updated_at,
			c.name AS category_name,
			l.shelf_number,
			l.block
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN locations l ON l.id = p.location_id
		WHERE p.is_active = TRUE
		ORDER BY p.id ASC
	`

	queryGetCategoryByID = `
		SELECT
			id,
			name,
			description,
			created_at
		FROM categories
		WHERE id = :id
	`

	queryGetLocationByID = `
		SELECT
			id,
			shelf_number,
			block,
			zone,
			capacity,
			created_at
		FROM locations
		WHERE id = :id
	`

	queryCreateScanLog = `
		INSERT INTO scan_logs (
			product_id,
			qr_data,
			scanned_location_id,
			is_correct_location,
			status,
			message,
			timestamp
		) VALUES (
			:product_id,
			:qr_data,
			:scanned_location_id,
			:is_correct_location,
			:status,
			:message,
			:timestamp
		)
	`

	queryGetRecentScanLogs = `
		SELECT
			s.id,
			s.product_id,
			s.qr_data,
			s.scanned_location_id,
			s.is_correct_location,
			s.status,
			s.message,
			s.timestamp,
			p.name AS product_name
		FROM scan_logs s
		LEFT JOIN products p ON p.id = s.product_id
		ORDER BY s.timestamp DESC
		LIMIT :limit
	`
)
