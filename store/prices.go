package store

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/valops/vacct"
)

// SavePrices upserts every quote of the series. Prices are stored as
// decimal strings, the exact value round-trips.
func (s *Store) SavePrices(series *vacct.PriceSeries) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO price (day, usd) VALUES (?, ?)
		ON CONFLICT (day) DO UPDATE SET usd = excluded.usd
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var saveErr error
	series.Values(func(on vacct.Date, price vacct.Money) bool {
		if _, err := stmt.Exec(on.String(), price.Decimal().String()); err != nil {
			saveErr = fmt.Errorf("failed to save price at %s: %w", on, err)
			return false
		}
		return true
	})
	if saveErr != nil {
		return saveErr
	}
	return tx.Commit()
}

// Prices loads all stored quotes into a series with the given fallback.
func (s *Store) Prices(fallback vacct.Money) (*vacct.PriceSeries, error) {
	rows, err := s.db.Query(`SELECT day, usd FROM price ORDER BY day ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query price table: %w", err)
	}
	defer rows.Close()

	var days []vacct.Date
	var prices []vacct.Money
	for rows.Next() {
		var dayStr, usdStr string
		if err := rows.Scan(&dayStr, &usdStr); err != nil {
			return nil, err
		}
		day, err := vacct.ParseDate(dayStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt price day %q: %w", dayStr, err)
		}
		usd, err := decimal.NewFromString(usdStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt price value %q: %w", usdStr, err)
		}
		days, prices = append(days, day), append(prices, vacct.M(usd, "USD"))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Rows are unique by day, one bulk load sorts the series once.
	return vacct.NewPriceSeries(fallback).AppendAll(days, prices), nil
}
