package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver

	"sanitizer-bot/models"
)

// Store wraps the durable key-value store for guild policies.
type Store struct {
	db *sql.DB
}

// Open initializes the database connection at the given path and ensures
// the schema exists.
func Open(dbPath string) (*Store, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open the SQLite database. It will be created if it doesn't exist.
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Ping the database to verify the connection.
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create server_configs table: %w", err)
	}

	log.Println("Successfully connected to the database at", dbPath)
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *Store) initTables() error {
	query := `
    CREATE TABLE IF NOT EXISTS server_configs (
        guild_id INTEGER PRIMARY KEY,
        sanitizer_mode INTEGER NOT NULL DEFAULT 0,
        delete_permission INTEGER NOT NULL DEFAULT 0,
        hide_original_embed BOOLEAN NOT NULL DEFAULT true
    );`
	_, err := s.db.Exec(query)
	return err
}

// GetServerConfig returns the guild's policy row, inserting a default row
// when none exists yet. Out-of-range stored integers decode to the enum
// defaults, never an error.
func (s *Store) GetServerConfig(guildID uint64) (models.GuildPolicy, error) {
	query := `
    SELECT sanitizer_mode, delete_permission, hide_original_embed
    FROM server_configs
    WHERE guild_id = ?`

	var mode, perm int
	var hide bool
	err := s.db.QueryRow(query, int64(guildID)).Scan(&mode, &perm, &hide)
	if err == sql.ErrNoRows {
		policy := models.DefaultGuildPolicy(guildID)
		if err := s.insertDefault(policy); err != nil {
			return policy, fmt.Errorf("failed to insert default config for guild %d: %w", guildID, err)
		}
		return policy, nil
	}
	if err != nil {
		return models.GuildPolicy{}, fmt.Errorf("failed to query config for guild %d: %w", guildID, err)
	}

	return models.GuildPolicy{
		GuildID:           guildID,
		SanitizerMode:     models.SanitizerModeFromInt(mode),
		DeletePermission:  models.DeletePermissionFromInt(perm),
		HideOriginalEmbed: hide,
	}, nil
}

func (s *Store) insertDefault(policy models.GuildPolicy) error {
	query := `
    INSERT OR IGNORE INTO server_configs (guild_id, sanitizer_mode, delete_permission, hide_original_embed)
    VALUES (?, ?, ?, ?)`
	_, err := s.db.Exec(query,
		int64(policy.GuildID),
		int(policy.SanitizerMode),
		int(policy.DeletePermission),
		policy.HideOriginalEmbed,
	)
	return err
}

// SaveServerConfig persists the policy, replacing any existing row.
func (s *Store) SaveServerConfig(policy models.GuildPolicy) error {
	query := `
    INSERT OR REPLACE INTO server_configs (guild_id, sanitizer_mode, delete_permission, hide_original_embed)
    VALUES (?, ?, ?, ?)`

	stmt, err := s.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for saving config: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		int64(policy.GuildID),
		int(policy.SanitizerMode),
		int(policy.DeletePermission),
		policy.HideOriginalEmbed,
	)
	if err != nil {
		return fmt.Errorf("failed to save config for guild %d: %w", policy.GuildID, err)
	}
	return nil
}

// AllServerConfigs returns every stored policy row, used by the replica sync.
func (s *Store) AllServerConfigs() ([]models.GuildPolicy, error) {
	rows, err := s.db.Query(`SELECT guild_id, sanitizer_mode, delete_permission, hide_original_embed FROM server_configs`)
	if err != nil {
		return nil, fmt.Errorf("failed to query server configs: %w", err)
	}
	defer rows.Close()

	var configs []models.GuildPolicy
	for rows.Next() {
		var guildID int64
		var mode, perm int
		var hide bool
		if err := rows.Scan(&guildID, &mode, &perm, &hide); err != nil {
			return nil, fmt.Errorf("failed to scan server config: %w", err)
		}
		configs = append(configs, models.GuildPolicy{
			GuildID:           uint64(guildID),
			SanitizerMode:     models.SanitizerModeFromInt(mode),
			DeletePermission:  models.DeletePermissionFromInt(perm),
			HideOriginalEmbed: hide,
		})
	}
	return configs, rows.Err()
}

// SetRawServerConfig writes arbitrary integer codes for a guild, bypassing
// the enum types. Exists for tests exercising out-of-range decoding.
func (s *Store) SetRawServerConfig(guildID uint64, mode, perm int, hide bool) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO server_configs (guild_id, sanitizer_mode, delete_permission, hide_original_embed) VALUES (?, ?, ?, ?)`,
		int64(guildID), mode, perm, hide,
	)
	return err
}
