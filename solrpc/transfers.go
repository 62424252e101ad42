package solrpc

import (
	"context"
	"sync"
	"time"

	"github.com/valops/vacct"
	"golang.org/x/sync/errgroup"
)

// fetchConcurrency bounds parallel getTransaction calls. Public RPC nodes
// reject bursts well below this.
const fetchConcurrency = 8

// signaturePageSize is the getSignaturesForAddress maximum.
const signaturePageSize = 1000

type signatureInfo struct {
	Signature string  `json:"signature"`
	BlockTime int64   `json:"blockTime"`
	Err       any     `json:"err"`
	Memo      *string `json:"memo"`
}

// signatures pages backwards through the address history until it reaches
// signatures older than 'since'.
func (c *Client) signatures(ctx context.Context, address string, since vacct.Date) ([]signatureInfo, error) {
	var all []signatureInfo
	before := ""
	cutoff := since.Time().Unix()
	for {
		opts := map[string]any{"commitment": "finalized", "limit": signaturePageSize}
		if before != "" {
			opts["before"] = before
		}
		var page []signatureInfo
		if err := c.call(ctx, "getSignaturesForAddress", []any{address, opts}, &page); err != nil {
			return nil, err
		}
		for _, s := range page {
			if s.BlockTime != 0 && s.BlockTime < cutoff {
				return all, nil
			}
			if s.Err == nil {
				all = append(all, s)
			}
		}
		if len(page) < signaturePageSize {
			return all, nil
		}
		before = page[len(page)-1].Signature
	}
}

/*
	jsonParsed system transfers appear as:
	{
	    "parsed": {
	        "info": { "destination": "...", "lamports": 1000000, "source": "..." },
	        "type": "transfer"
	    },
	    "program": "system",
	    ...
	}
*/
type parsedTransaction struct {
	BlockTime   int64 `json:"blockTime"`
	Transaction struct {
		Message struct {
			Instructions []struct {
				Program string `json:"program"`
				Parsed  *struct {
					Type string `json:"type"`
					Info struct {
						Source      string `json:"source"`
						Destination string `json:"destination"`
						Lamports    uint64 `json:"lamports"`
					} `json:"info"`
				} `json:"parsed"`
			} `json:"instructions"`
		} `json:"message"`
	} `json:"transaction"`
}

// transfers extracts the system transfers and withdraws of one transaction.
func (tx parsedTransaction) transfers(signature string) []vacct.TransferEvent {
	var events []vacct.TransferEvent
	on := vacct.NewDate(time.Unix(tx.BlockTime, 0).UTC().Date())
	for _, inst := range tx.Transaction.Message.Instructions {
		p := inst.Parsed
		if p == nil {
			continue
		}
		// withdraws from the vote program move lamports the same way
		// transfers from the system program do.
		transferLike := (inst.Program == "system" && p.Type == "transfer") ||
			(inst.Program == "vote" && p.Type == "withdraw")
		if !transferLike || p.Info.Lamports == 0 {
			continue
		}
		events = append(events, vacct.TransferEvent{
			Date:   on,
			Amount: vacct.Lamports(p.Info.Lamports),
			From:   p.Info.Source,
			To:     p.Info.Destination,
			TxID:   signature,
		})
	}
	return events
}

// Transfers fetches every successful lamport transfer touching the given
// addresses since the given date. Transactions are fetched concurrently
// with bounded parallelism; a transfer seen from several tracked addresses
// is returned once. The result is sorted and ready for categorization.
func (c *Client) Transfers(ctx context.Context, addresses []string, since vacct.Date) ([]vacct.TransferEvent, error) {
	seenSig := make(map[string]bool)
	var sigs []string
	for _, addr := range addresses {
		infos, err := c.signatures(ctx, addr, since)
		if err != nil {
			return nil, err
		}
		for _, s := range infos {
			if !seenSig[s.Signature] {
				seenSig[s.Signature] = true
				sigs = append(sigs, s.Signature)
			}
		}
	}

	var mu sync.Mutex
	var events []vacct.TransferEvent

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for _, sig := range sigs {
		g.Go(func() error {
			var tx parsedTransaction
			params := []any{sig, map[string]any{
				"encoding":                       "jsonParsed",
				"commitment":                     "finalized",
				"maxSupportedTransactionVersion": 0,
			}}
			if err := c.call(ctx, "getTransaction", params, &tx); err != nil {
				return err
			}
			mu.Lock()
			events = append(events, tx.transfers(sig)...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	vacct.SortTransfers(events)
	return events, nil
}
