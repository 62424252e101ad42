package vacct

import "sort"

// TransferEvent is a single on-chain value transfer, as observed by the
// ledger-reading collaborator. Events are immutable inputs; the engine
// never modifies them.
type TransferEvent struct {
	Date   Date     `json:"date"`
	Amount Lamports `json:"lamports"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	// ToLabel is a human label for the destination when known (exchange
	// name, "Personal Wallet"); empty otherwise.
	ToLabel string `json:"to_label,omitempty"`
	TxID    string `json:"tx_id"`
}

// Less implements the stable total order over events: date first, then
// transaction identifier.
func (t TransferEvent) Less(o TransferEvent) bool {
	if t.Date != o.Date {
		return t.Date.Before(o.Date)
	}
	return t.TxID < o.TxID
}

// SortTransfers sorts events in place by (date, transaction id).
func SortTransfers(events []TransferEvent) {
	sort.Slice(events, func(i, j int) bool { return events[i].Less(events[j]) })
}

// shortenAddress abbreviates a base58 address for display, keeping the
// leading and trailing characters.
func shortenAddress(addr string) string {
	if len(addr) > 12 {
		return addr[:6] + "..." + addr[len(addr)-4:]
	}
	return addr
}

// DestinationLabel resolves the display label for an event's destination:
// the event's own label, then the configured label, then a shortened
// address.
func (t TransferEvent) DestinationLabel(c Config) string {
	if t.ToLabel != "" {
		return t.ToLabel
	}
	if label := c.ExternalLabel(t.To); label != "" {
		return label
	}
	return shortenAddress(t.To)
}
