package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Guild roster
CREATE TABLE members (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    class TEXT NOT NULL CHECK(class IN ('WARRIOR', 'MAGE', 'ARCHER', 'ROGUE', 'PRIEST')),
    role TEXT NOT NULL CHECK(role IN ('MEMBER', 'LEADER')),
    status TEXT NOT NULL CHECK(status IN ('PENDING', 'ACTIVE', 'REJECTED')),
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_member_status ON members(status);

-- Guild events
CREATE TABLE events (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    starts_at TIMESTAMP NOT NULL,
    created_by TEXT NOT NULL REFERENCES members(id),
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_event_starts ON events(starts_at);

-- Parties. An event-scoped party shares its event's lifetime.
CREATE TABLE parties (
    id TEXT PRIMARY KEY,
    event_id TEXT REFERENCES events(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_by TEXT NOT NULL REFERENCES members(id),
    is_closed INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_party_event ON parties(event_id);

-- Slots. The composition shape is fixed at creation; only occupancy churns.
CREATE TABLE slots (
    id TEXT PRIMARY KEY,
    party_id TEXT NOT NULL REFERENCES parties(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    required TEXT NOT NULL CHECK(required IN ('FREE', 'WARRIOR', 'MAGE', 'ARCHER', 'ROGUE', 'PRIEST')),
    occupant_id TEXT REFERENCES members(id),
    resolved_class TEXT CHECK(resolved_class IS NULL OR resolved_class IN ('WARRIOR', 'MAGE', 'ARCHER', 'ROGUE', 'PRIEST')),
    UNIQUE(party_id, position)
);
CREATE INDEX idx_slot_party ON slots(party_id);
-- One slot per member per party.
CREATE UNIQUE INDEX idx_slot_occupant ON slots(party_id, occupant_id) WHERE occupant_id IS NOT NULL;

-- Chat channels. A party's companion channel is removed with the party.
CREATE TABLE channels (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    party_id TEXT UNIQUE REFERENCES parties(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE messages (
    id TEXT PRIMARY KEY,
    channel_id TEXT NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
    author_id TEXT NOT NULL REFERENCES members(id),
    body TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_message_channel ON messages(channel_id, created_at);

-- Announcements
CREATE TABLE announcements (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    author_id TEXT NOT NULL REFERENCES members(id),
    pinned INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

-- Push devices
CREATE TABLE devices (
    token TEXT PRIMARY KEY,
    member_id TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
    platform TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_device_member ON devices(member_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
