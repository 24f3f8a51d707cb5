package storage

import (
	"database/sql"
	"fmt"
	"time"

	"campaign-cleaner/models"
	"campaign-cleaner/utils"

	"github.com/lib/pq"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS client (
	client_id      INTEGER  NOT NULL,
	age            INTEGER  NOT NULL,
	job            TEXT     NOT NULL,
	marital        TEXT     NOT NULL,
	education      TEXT,
	credit_default SMALLINT NOT NULL CHECK (credit_default IN (0, 1)),
	mortgage       SMALLINT NOT NULL CHECK (mortgage IN (0, 1))
);

CREATE TABLE IF NOT EXISTS campaign (
	client_id                  INTEGER  NOT NULL,
	number_contacts            INTEGER  NOT NULL,
	contact_duration           INTEGER  NOT NULL,
	previous_campaign_contacts INTEGER  NOT NULL,
	previous_outcome           SMALLINT NOT NULL CHECK (previous_outcome IN (0, 1)),
	campaign_outcome           SMALLINT NOT NULL CHECK (campaign_outcome IN (0, 1)),
	last_contact_date          DATE     NOT NULL
);

CREATE TABLE IF NOT EXISTS economics (
	client_id            INTEGER          NOT NULL,
	cons_price_idx       DOUBLE PRECISION NOT NULL,
	euribor_three_months DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_client_client_id    ON client (client_id);
CREATE INDEX IF NOT EXISTS idx_campaign_client_id  ON campaign (client_id);
CREATE INDEX IF NOT EXISTS idx_economics_client_id ON economics (client_id);
`

// PostgresWriter stores the three datasets in PostgreSQL tables of the same name
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// CreateTables creates the dataset tables if they don't exist, with indexes
func (w *PostgresWriter) CreateTables() error {
	if _, err := w.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	w.logger.Info("Tables '%s', '%s', '%s' are ready", ClientDataset, CampaignDataset, EconomicsDataset)
	return nil
}

// Save replaces the contents of all three tables in a single transaction
func (w *PostgresWriter) Save(ds *models.Datasets) (err error) {
	if err := w.CreateTables(); err != nil {
		return err
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, t := range tables(ds) {
		if err = copyTable(tx, t); err != nil {
			return err
		}
		w.logger.Info("Loaded %d rows into PostgreSQL table %s", len(t.rows), t.name)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// copyTable empties one table and bulk-loads its rows with COPY
func copyTable(tx *sql.Tx, t datasetTable) error {
	if _, err := tx.Exec("DELETE FROM " + pq.QuoteIdentifier(t.name)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", t.name, err)
	}

	stmt, err := tx.Prepare(pq.CopyIn(t.name, t.header...))
	if err != nil {
		return fmt.Errorf("failed to prepare copy into %s: %w", t.name, err)
	}
	defer stmt.Close()

	for i, row := range t.rows {
		if _, err := stmt.Exec(row...); err != nil {
			return fmt.Errorf("failed to copy row %d into %s: %w", i+1, t.name, err)
		}
	}
	// flush buffered rows
	if _, err := stmt.Exec(); err != nil {
		return fmt.Errorf("failed to finish copy into %s: %w", t.name, err)
	}
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}
