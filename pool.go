package vacct

// poolLot is an unconsumed slice of seed capital.
type poolLot struct {
	on        Date
	remaining Lamports
}

// capitalPool tracks seed capital not yet returned. Withdrawals consume
// the pool first-in first-out; only the part of a withdrawal that exceeds
// the pool is taxable revenue.
type capitalPool struct {
	lots []poolLot
}

// newCapitalPool builds a pool from seed inflows. The seeds must already
// be in chronological order.
func newCapitalPool(seeds []TransferEvent) *capitalPool {
	p := &capitalPool{}
	for _, s := range seeds {
		if s.Amount > 0 {
			p.lots = append(p.lots, poolLot{on: s.Date, remaining: s.Amount})
		}
	}
	return p
}

// consume takes up to 'amount' from the pool, oldest lots first, and
// returns how much was actually taken.
func (p *capitalPool) consume(amount Lamports) Lamports {
	var taken Lamports
	for i := range p.lots {
		if taken == amount {
			break
		}
		bite := (amount - taken).Min(p.lots[i].remaining)
		p.lots[i].remaining -= bite
		taken += bite
	}
	return taken
}

// Remaining returns the unconsumed seed capital.
func (p *capitalPool) Remaining() Lamports {
	var sum Lamports
	for _, lot := range p.lots {
		sum += lot.remaining
	}
	return sum
}

// applyCapitalPool splits withdrawals into return-of-capital and revenue
// entries against the seed pool.
//
// The split is a full-history replay: the pool state at any withdrawal
// depends on every earlier seed and withdrawal, never on a reporting
// period. Each withdrawal yields a return-of-capital entry when the pool
// covered part of it, and always a revenue entry, explicitly zero when the
// pool covered all of it. Conservation holds per withdrawal: the two parts
// sum to the gross amount.
func applyCapitalPool(seeds, withdrawals []TransferEvent, prices *PriceSeries, c Config) []LedgerEntry {
	pool := newCapitalPool(seeds)

	var entries []LedgerEntry
	for _, w := range withdrawals {
		price, _ := prices.Resolve(w.Date)
		label := w.DestinationLabel(c)

		returned := pool.consume(w.Amount)
		if returned > 0 {
			e := entry(w.Date, ReturnOfCapital, Withdrawal.String(),
				"Return of seed capital to "+label, returned, price)
			e.Destination = label
			e.TxID = w.TxID
			entries = append(entries, e)
		}
		e := entry(w.Date, Revenue, Withdrawal.String(),
			"External withdrawal to "+label, w.Amount-returned, price)
		e.Destination = label
		e.TxID = w.TxID
		entries = append(entries, e)
	}
	return entries
}
