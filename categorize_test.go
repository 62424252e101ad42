package vacct

import "testing"

func TestCategoryOf(t *testing.T) {
	c := testConfig()
	tests := []struct {
		name string
		from string
		to   string
		want Category
	}{
		{"personal wallet to identity is a seed", testPersonal, testIdentity, Seed},
		{"stranger to vote account is a seed", testStranger, testVote, Seed},
		{"identity to personal wallet is a withdrawal", testIdentity, testPersonal, Withdrawal},
		{"identity to known exchange is a withdrawal", testIdentity, testExchange, Withdrawal},
		{"vote to unlabeled external is still a withdrawal", testVote, testStranger, Withdrawal},
		{"identity to vote account is internal", testIdentity, testVote, Internal},
		{"withdraw authority to identity is internal", testWithdrawer, testIdentity, Internal},
		{"no operator account on either side is other", testStranger, testStranger2, Other},
		{"personal wallet to exchange is other", testPersonal, testExchange, Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := transferOn(NewDate(2024, 1, 1), sol(1), tt.from, tt.to, "tx")
			if got := CategoryOf(ev, c); got != tt.want {
				t.Errorf("CategoryOf(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCategorize_Partition(t *testing.T) {
	// Every event lands in exactly one bucket; nothing is dropped.
	c := testConfig()
	events := []TransferEvent{
		transferOn(NewDate(2024, 3, 1), sol(1), testIdentity, testPersonal, "w-later"),
		transferOn(NewDate(2024, 1, 1), sol(10), testPersonal, testIdentity, "seed"),
		transferOn(NewDate(2024, 2, 1), sol(2), testIdentity, testVote, "int"),
		transferOn(NewDate(2024, 2, 1), sol(1), testIdentity, testExchange, "w-early"),
		transferOn(NewDate(2024, 4, 1), sol(3), testStranger, testStranger2, "noise"),
	}

	ct := Categorize(events, c)

	if ct.Len() != len(events) {
		t.Fatalf("partition holds %d events, want %d", ct.Len(), len(events))
	}
	if len(ct.Seeds) != 1 || len(ct.Withdrawals) != 2 || len(ct.Internal) != 1 || len(ct.Other) != 1 {
		t.Errorf("partition = %d/%d/%d/%d seeds/withdrawals/internal/other, want 1/2/1/1",
			len(ct.Seeds), len(ct.Withdrawals), len(ct.Internal), len(ct.Other))
	}
	// Buckets come out chronologically sorted regardless of input order.
	if ct.Withdrawals[0].TxID != "w-early" || ct.Withdrawals[1].TxID != "w-later" {
		t.Errorf("withdrawals not sorted: %q then %q", ct.Withdrawals[0].TxID, ct.Withdrawals[1].TxID)
	}
}

func TestDestinationLabel(t *testing.T) {
	c := testConfig()
	tests := []struct {
		name string
		ev   TransferEvent
		want string
	}{
		{"own label wins", TransferEvent{To: testExchange, ToLabel: "Cold Storage"}, "Cold Storage"},
		{"personal wallet", TransferEvent{To: testPersonal}, "Personal Wallet"},
		{"known exchange", TransferEvent{To: testExchange}, "Kraken"},
		{"unlabeled address is shortened", TransferEvent{To: testStranger}, "Fg6PaF...sLnS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.DestinationLabel(c); got != tt.want {
				t.Errorf("DestinationLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
