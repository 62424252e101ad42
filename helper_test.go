package vacct

// Account addresses used across tests. Shaped like real base58 keys so
// label shortening behaves as in production.
const (
	testVote       = "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2"
	testIdentity   = "GDnAzM7DhobBkhzGEJxrvukk2vCRS1ifCu1n5MycdK1x"
	testWithdrawer = "3ffaheyqGYACkvnqr9n26wxZrjisBqh2w6zXcWQgqqWf"
	testPersonal   = "9aE476sH92Vz7DMPyq5WLcfqWdk4nqmnzpNRXNpG1BzM"
	testExchange   = "5yQzNmB4vPe91nq2KCT4K2fqWdk4Hxin3NStELsSKCWf"
	testStranger   = "Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS"
	testStranger2  = "4vJ9JU1bJJE96FWSJKvHsmmFADCg4gpZQff4P3bkLKi6"
)

// testConfig returns the role configuration shared by most tests.
func testConfig() Config {
	return Config{
		VoteAccount:       testVote,
		Identity:          testIdentity,
		WithdrawAuthority: testWithdrawer,
		PersonalWallet:    testPersonal,
		KnownExchanges:    map[string]string{testExchange: "Kraken"},
		BootstrapDate:     NewDate(2023, 1, 1),
		AcceptanceDate:    NewDate(2024, 1, 15),
		FallbackPrice:     USD(100),
		Tolerance:         DefaultTolerance,
	}
}

// sol converts whole SOL to lamports for readable test amounts.
func sol(n int64) Lamports { return Lamports(n) * LamportsPerSOL }

// flatPrices returns a series quoting the same price every day from 2023 to
// 2025, so valuation never interferes with a test about flows and every
// resolution stays exact.
func flatPrices(price Money) *PriceSeries {
	var days []Date
	var prices []Money
	end := NewDate(2026, 1, 1)
	for on := NewDate(2023, 1, 1); on.Before(end); on = on.Add(1) {
		days = append(days, on)
		prices = append(prices, price)
	}
	return NewPriceSeries(price).AppendAll(days, prices)
}

// transferOn builds a transfer event with a synthetic transaction id.
func transferOn(on Date, amount Lamports, from, to, tx string) TransferEvent {
	return TransferEvent{Date: on, Amount: amount, From: from, To: to, TxID: tx}
}
