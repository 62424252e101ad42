package store

import (
	"fmt"

	"github.com/valops/vacct"
)

// SaveTransfers upserts fetched transfer events. A transfer is identified
// by (transaction, source, destination), so refetching an overlapping
// range is harmless.
func (s *Store) SaveTransfers(events []vacct.TransferEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO transfer (tx_id, date, lamports, from_addr, to_addr, to_label)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (tx_id, from_addr, to_addr) DO UPDATE SET
			date = excluded.date,
			lamports = excluded.lamports,
			to_label = excluded.to_label
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(e.TxID, e.Date.String(), int64(e.Amount), e.From, e.To, e.ToLabel); err != nil {
			return fmt.Errorf("failed to save transfer %s: %w", e.TxID, err)
		}
	}
	return tx.Commit()
}

// Transfers returns all stored transfer events in chronological order.
func (s *Store) Transfers() ([]vacct.TransferEvent, error) {
	rows, err := s.db.Query(`
		SELECT tx_id, date, lamports, from_addr, to_addr, to_label
		FROM transfer
		ORDER BY date ASC, tx_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer table: %w", err)
	}
	defer rows.Close()

	var events []vacct.TransferEvent
	for rows.Next() {
		var e vacct.TransferEvent
		var dateStr string
		var lamports int64
		if err := rows.Scan(&e.TxID, &dateStr, &lamports, &e.From, &e.To, &e.ToLabel); err != nil {
			return nil, err
		}
		if e.Date, err = vacct.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("corrupt transfer date for %s: %w", e.TxID, err)
		}
		e.Amount = vacct.Lamports(lamports)
		events = append(events, e)
	}
	return events, rows.Err()
}

// LatestTransferDate returns the date of the most recent stored transfer,
// or the zero date when the table is empty. Incremental fetches resume
// from here.
func (s *Store) LatestTransferDate() (vacct.Date, error) {
	var dateStr string
	err := s.db.QueryRow(`SELECT COALESCE(MAX(date), '') FROM transfer`).Scan(&dateStr)
	if err != nil {
		return vacct.Date{}, err
	}
	if dateStr == "" {
		return vacct.Date{}, nil
	}
	return vacct.ParseDate(dateStr)
}
