package database

import (
	"context"
	"database/sql"
)

// Statements are idempotent so EnsureSchema can run on every boot.
// Uniqueness of username/email and the foreign keys on rentals/messages
// are enforced here, at the store, not in process.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(64) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role ENUM('public','staff') NOT NULL DEFAULT 'public',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS videos (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		status ENUM('new','pending','accepted','rejected') NOT NULL DEFAULT 'new',
		description TEXT NOT NULL,
		media_url VARCHAR(512) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_videos_name (name)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS rentals (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		video_id BIGINT UNSIGNED NOT NULL,
		rental_date DATE NOT NULL,
		return_date DATE NULL,
		status ENUM('new','pending','returned','cancelled') NOT NULL DEFAULT 'new',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_rentals_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_rentals_video FOREIGN KEY (video_id) REFERENCES videos(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		message TEXT NOT NULL,
		admin_reply TEXT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_messages_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
