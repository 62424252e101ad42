// Package solrpc reads transfer events and account balances from a Solana
// JSON-RPC node. It is the ledger-reading collaborator of the accounting
// engine: everything it returns is plain data, fetched with finalized
// commitment so reruns over the same range are reproducible.
package solrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultEndpoint is the public mainnet RPC endpoint. Operators with their
// own node should point the client at it instead, public endpoints rate
// limit aggressively.
const DefaultEndpoint = "https://api.mainnet-beta.solana.com"

// Client is a minimal Solana JSON-RPC client covering the calls the
// accounting engine needs.
type Client struct {
	endpoint string
	hc       *http.Client
}

// New returns a client for the given RPC endpoint, or the public mainnet
// endpoint when empty.
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: 30 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC call and unmarshals the result.
func (c *Client) call(ctx context.Context, method string, params []any, result any) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("cannot http POST %s %s: %w", c.endpoint, method, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http POST %s %s: %s", c.endpoint, method, resp.Status)
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("cannot decode %s response: %w", method, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("%s: %w", method, envelope.Error)
	}
	return json.Unmarshal(envelope.Result, result)
}
