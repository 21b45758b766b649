package index

import (
	"fmt"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

// Load replaces the indexed messages with the rows of t.
func (d *DB) Load(t *parse.Table) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages"); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}

	stmt, err := tx.Preparex(
		`INSERT INTO messages (seq, ts, sender, body, media, system, line)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if t != nil {
		for _, m := range t.Messages {
			_, err := stmt.Exec(
				m.Seq,
				m.Time.Format(TimeLayout),
				m.Sender,
				m.Body,
				m.Media,
				m.System,
				m.Line,
			)
			if err != nil {
				return fmt.Errorf("insert message %d: %w", m.Seq, err)
			}
		}
	}

	return tx.Commit()
}

// Build opens a new index holding t.
func Build(t *parse.Table) (*DB, error) {
	db, err := Open()
	if err != nil {
		return nil, err
	}
	if err := db.Load(t); err != nil {
		db.Close()
		return nil, fmt.Errorf("load index: %w", err)
	}
	return db, nil
}
