package solrpc

import (
	"context"
	"fmt"

	"github.com/valops/vacct"
)

/*
	{
	    "context": { "apiVersion": "1.18.22", "slot": 287143651 },
	    "value": [
	        { "lamports": 999974, "owner": "11111111111111111111111111111111", ... },
	        null
	    ]
	}
*/
type multipleAccountsResult struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value []*struct {
		Lamports uint64 `json:"lamports"`
	} `json:"value"`
}

// Balances reads the balances of all given addresses in one batched call.
// The single getMultipleAccounts read is what makes the snapshot atomic:
// every balance carries the one slot the node answered at, which the
// reconciler insists on. An unknown account counts as zero.
func (c *Client) Balances(ctx context.Context, addresses []string) (vacct.BalanceSnapshot, error) {
	var result multipleAccountsResult
	params := []any{addresses, map[string]string{"commitment": "finalized"}}
	if err := c.call(ctx, "getMultipleAccounts", params, &result); err != nil {
		return vacct.BalanceSnapshot{}, err
	}
	if len(result.Value) != len(addresses) {
		return vacct.BalanceSnapshot{}, fmt.Errorf("getMultipleAccounts returned %d accounts for %d addresses", len(result.Value), len(addresses))
	}

	snap := vacct.BalanceSnapshot{Slot: result.Context.Slot}
	for i, acc := range result.Value {
		b := vacct.AccountBalance{Address: addresses[i], Slot: result.Context.Slot}
		if acc != nil {
			b.Balance = vacct.Lamports(acc.Lamports)
		}
		snap.Balances = append(snap.Balances, b)
	}
	return snap, nil
}
