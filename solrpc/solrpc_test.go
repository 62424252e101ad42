package solrpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/valops/vacct"
)

// rpcStub serves canned JSON-RPC results keyed by method.
func rpcStub(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("stub cannot decode request: %v", err)
		}
		result, ok := results[req.Method]
		if !ok {
			t.Errorf("stub has no result for method %q", req.Method)
			result = "null"
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + result + `}`))
	}))
}

func TestBalances(t *testing.T) {
	srv := rpcStub(t, map[string]string{
		"getMultipleAccounts": `{
			"context": {"slot": 287143651},
			"value": [
				{"lamports": 5000000000, "owner": "11111111111111111111111111111111"},
				null
			]
		}`,
	})
	defer srv.Close()

	addrs := []string{"VoteAcc", "Unknown"}
	snap, err := New(srv.URL).Balances(context.Background(), addrs)
	if err != nil {
		t.Fatalf("Balances() error = %v", err)
	}
	if snap.Slot != 287143651 {
		t.Errorf("slot = %d, want 287143651", snap.Slot)
	}
	if len(snap.Balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(snap.Balances))
	}
	if snap.Balances[0].Balance != 5_000_000_000 {
		t.Errorf("first balance = %v, want 5 SOL", snap.Balances[0].Balance)
	}
	// Unknown accounts count as zero, observed at the same slot.
	if snap.Balances[1].Balance != 0 || snap.Balances[1].Slot != snap.Slot {
		t.Errorf("missing account = %+v, want zero at snapshot slot", snap.Balances[1])
	}
	if err := snap.Validate(); err != nil {
		t.Errorf("snapshot from one batched read must be atomic: %v", err)
	}
}

func TestTransfers(t *testing.T) {
	// One successful transfer, one failed transaction to be skipped.
	srv := rpcStub(t, map[string]string{
		"getSignaturesForAddress": `[
			{"signature": "sigOK", "blockTime": 1717200000, "err": null},
			{"signature": "sigFailed", "blockTime": 1717100000, "err": {"InstructionError": [0, "Custom"]}}
		]`,
		"getTransaction": `{
			"blockTime": 1717200000,
			"transaction": {
				"message": {
					"instructions": [
						{"program": "system", "programId": "11111111111111111111111111111111",
						 "parsed": {"type": "transfer", "info": {"source": "A", "destination": "B", "lamports": 1500000000}}},
						{"program": "spl-memo", "programId": "Memo111"}
					]
				}
			}
		}`,
	})
	defer srv.Close()

	events, err := New(srv.URL).Transfers(context.Background(), []string{"A"}, vacct.NewDate(2024, 1, 1))
	if err != nil {
		t.Fatalf("Transfers() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.From != "A" || e.To != "B" || e.Amount != 1_500_000_000 || e.TxID != "sigOK" {
		t.Errorf("event = %+v", e)
	}
	if e.Date != vacct.NewDate(2024, 6, 1) {
		t.Errorf("event date = %v, want 2024-06-01", e.Date)
	}
}

func TestTransfers_CutoffStopsPaging(t *testing.T) {
	// Signatures older than the cutoff end the walk; their transactions
	// are never fetched.
	srv := rpcStub(t, map[string]string{
		"getSignaturesForAddress": `[
			{"signature": "old", "blockTime": 946684800, "err": null}
		]`,
	})
	defer srv.Close()

	events, err := New(srv.URL).Transfers(context.Background(), []string{"A"}, vacct.NewDate(2024, 1, 1))
	if err != nil {
		t.Fatalf("Transfers() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want none before the cutoff", len(events))
	}
}

func TestParsedTransaction_VoteWithdraw(t *testing.T) {
	var tx parsedTransaction
	raw := `{
		"blockTime": 1717200000,
		"transaction": {"message": {"instructions": [
			{"program": "vote", "parsed": {"type": "withdraw",
			 "info": {"source": "Vote", "destination": "Wallet", "lamports": 2000000000}}}
		]}}
	}`
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	events := tx.transfers("sig")
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].From != "Vote" || events[0].Amount != 2_000_000_000 {
		t.Errorf("event = %+v", events[0])
	}
}
