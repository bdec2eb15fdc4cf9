package scanner

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const createVerificationLogTable = `
	CREATE TABLE IF NOT EXISTS verification_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		product_id TEXT,
		expected_shelf TEXT,
		detected_shelf TEXT,
		status TEXT
	)
`

const insertVerificationLog = `
	INSERT INTO verification_log (timestamp, product_id, expected_shelf, detected_shelf, status)
	VALUES (:timestamp, :product_id, :expected_shelf, :detected_shelf, :status)
`

// LogStore keeps the local verification history for offline spatial runs,
// where no server-side scan log exists.
type LogStore struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewLogStore(path string, log *logrus.Logger) (*LogStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(createVerificationLogTable); err != nil {
		db.Close()
		return nil, err
	}

	return &LogStore{db: db, log: log}, nil
}

func (s *LogStore) LogEvent(ctx context.Context, productID string, expectedShelf string, detectedShelf string, status string) error {
	argsKV := map[string]interface{}{
		"timestamp":      time.Now().Format("2006-01-02 15:04:05"),
		"product_id":     productID,
		"expected_shelf": expectedShelf,
		"detected_shelf": detectedShelf,
		"status":         status,
	}

	if _, err := s.db.NamedExecContext(ctx, insertVerificationLog, argsKV); err != nil {
		s.log.WithFields(logrus.Fields{
			"product_id": productID,
			"error":      err.Error(),
		}).Error("Failed to write verification log")
		return err
	}

	return nil
}

func (s *LogStore) Close() error {
	return s.db.Close()
}
