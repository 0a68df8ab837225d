package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied statement by statement; the driver runs without
// multiStatements.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title           VARCHAR(200)    NOT NULL,
		description     TEXT            NOT NULL,
		region          VARCHAR(32)     NOT NULL,
		price_per_night BIGINT UNSIGNED NOT NULL DEFAULT 0,
		rating          DECIMAL(2,1)    NULL,
		guests_max      INT UNSIGNED    NOT NULL DEFAULT 1,
		rooms           INT UNSIGNED    NOT NULL DEFAULT 1,
		beds            INT UNSIGNED    NOT NULL DEFAULT 1,
		baths           INT UNSIGNED    NOT NULL DEFAULT 1,
		amenities       JSON            NOT NULL,
		images          JSON            NOT NULL,
		video_url       VARCHAR(500)    NULL,
		status          VARCHAR(16)     NOT NULL DEFAULT 'active',
		created_at      DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_listings_region (region),
		KEY idx_listings_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		listing_id     BIGINT UNSIGNED NOT NULL,
		check_in       DATETIME        NOT NULL,
		check_out      DATETIME        NOT NULL,
		guests         INT UNSIGNED    NOT NULL,
		customer_name  VARCHAR(200)    NOT NULL,
		customer_phone VARCHAR(32)     NOT NULL,
		total_price    BIGINT UNSIGNED NOT NULL,
		status         VARCHAR(16)     NOT NULL DEFAULT 'new',
		created_at     DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_bookings_status (status),
		CONSTRAINT fk_bookings_listing FOREIGN KEY (listing_id) REFERENCES listings (id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS amenities (
		id      BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name_uz VARCHAR(100)    NOT NULL,
		name_ru VARCHAR(100)    NOT NULL,
		icon    VARCHAR(64)     NOT NULL DEFAULT '',
		UNIQUE KEY uq_amenities_name_uz (name_uz)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
