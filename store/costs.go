package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/valops/vacct"
)

// AddCost inserts one cost entry and returns its generated id.
func (s *Store) AddCost(ce vacct.CostEntry) (string, error) {
	id := uuid.New().String()
	reimbursable := 0
	if ce.Reimbursable {
		reimbursable = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO cost (id, period_start, period_end, category, vendor, description, lamports, usd, reimbursable, tx_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, ce.PeriodStart.String(), ce.PeriodEnd.String(), ce.Category, ce.Vendor,
		ce.Description, int64(ce.Amount), ce.USD.Decimal().String(), reimbursable, ce.TxID)
	if err != nil {
		return "", fmt.Errorf("failed to save cost: %w", err)
	}
	return id, nil
}

// Costs returns all stored cost entries ordered by period end.
func (s *Store) Costs() ([]vacct.CostEntry, error) {
	rows, err := s.db.Query(`
		SELECT period_start, period_end, category, vendor, description, lamports, usd, reimbursable, tx_id
		FROM cost
		ORDER BY period_end ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost table: %w", err)
	}
	defer rows.Close()

	var costs []vacct.CostEntry
	for rows.Next() {
		var ce vacct.CostEntry
		var startStr, endStr, usdStr string
		var lamports int64
		var reimbursable int
		if err := rows.Scan(&startStr, &endStr, &ce.Category, &ce.Vendor, &ce.Description,
			&lamports, &usdStr, &reimbursable, &ce.TxID); err != nil {
			return nil, err
		}
		if ce.PeriodStart, err = vacct.ParseDate(startStr); err != nil {
			return nil, fmt.Errorf("corrupt cost period start %q: %w", startStr, err)
		}
		if ce.PeriodEnd, err = vacct.ParseDate(endStr); err != nil {
			return nil, fmt.Errorf("corrupt cost period end %q: %w", endStr, err)
		}
		usd, err := decimal.NewFromString(usdStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt cost amount %q: %w", usdStr, err)
		}
		if !usd.IsZero() {
			ce.USD = vacct.M(usd, "USD")
		}
		ce.Amount = vacct.Lamports(lamports)
		ce.Reimbursable = reimbursable != 0
		costs = append(costs, ce)
	}
	return costs, rows.Err()
}
