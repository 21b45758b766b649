// Package index keeps the messages of one parsed chat in an in-memory SQLite
// database with an FTS5 full-text index, for search and for windowed reads
// around a message.
package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // include driver
)

const schema = `
PRAGMA temp_store = MEMORY;

CREATE TABLE IF NOT EXISTS messages (
    seq     INTEGER PRIMARY KEY,
    ts      TEXT NOT NULL,
    sender  TEXT NOT NULL,
    body    TEXT NOT NULL,
    media   INTEGER NOT NULL DEFAULT 0,
    system  INTEGER NOT NULL DEFAULT 0,
    line    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS messages_sender ON messages(sender);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    body,
    content=messages,
    content_rowid=seq,
    tokenize='unicode61'
);

-- keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, body) VALUES (new.seq, new.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.seq, old.body);
END;
`

// TimeLayout is how message timestamps are stored in the ts column.
const TimeLayout = "2006-01-02 15:04"

// ErrNotFound is returned when a message sequence number is not indexed.
var ErrNotFound = errors.New("message not found")

type DB struct {
	db *sqlx.DB
}

// Open creates an empty in-memory index.
func Open() (*DB, error) {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sqlx.DB {
	return d.db
}

type MessageRow struct {
	Seq    int    `db:"seq"`
	Ts     string `db:"ts"`
	Sender string `db:"sender"`
	Body   string `db:"body"`
	Media  bool   `db:"media"`
	System bool   `db:"system"`
	Line   int    `db:"line"`
}

const selectRow = "SELECT seq, ts, sender, body, media, system, line FROM messages"

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.Get(&n, "SELECT COUNT(*) FROM messages")
	return n, err
}

// FTSCount returns the number of rows in the full-text index.
func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.Get(&n, "SELECT COUNT(*) FROM messages_fts")
	return n, err
}

func (d *DB) GetMessage(seq int) (*MessageRow, error) {
	var m MessageRow
	err := d.db.Get(&m, selectRow+" WHERE seq = ?", seq)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, seq)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetWindow returns up to context messages on each side of hitSeq, in order.
// hitIdx is the position of hitSeq in the returned slice (-1 when hitSeq is
// negative or unknown, in which case every message is returned), startPos is
// the number of messages before the window and totalCount the number indexed.
func (d *DB) GetWindow(hitSeq, context int) (rows []MessageRow, hitIdx int, startPos int, totalCount int, err error) {
	totalCount, err = d.MessageCount()
	if err != nil {
		return nil, -1, 0, 0, err
	}

	// seq is the 0-based position, so no ROW_NUMBER() lookup is needed
	hitPos := -1
	if hitSeq >= 0 && hitSeq < totalCount {
		hitPos = hitSeq
	}

	startPos = 0
	limit := totalCount
	if hitPos >= 0 {
		startPos = hitPos - context
		if startPos < 0 {
			startPos = 0
		}
		endPos := hitPos + context + 1
		if endPos > totalCount {
			endPos = totalCount
		}
		limit = endPos - startPos
	}

	rows = []MessageRow{}
	if err := d.db.Select(&rows, selectRow+" ORDER BY seq LIMIT ? OFFSET ?", limit, startPos); err != nil {
		return nil, -1, 0, 0, err
	}

	hitIdx = -1
	if hitPos >= 0 {
		hitIdx = hitPos - startPos
	}
	return rows, hitIdx, startPos, totalCount, nil
}
