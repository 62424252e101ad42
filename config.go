package vacct

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DefaultTolerance is the reconciliation tolerance used when the
// configuration does not set one: 0.0001 SOL.
const DefaultTolerance Lamports = 100_000

// ErrBadRoleConfig reports a malformed role configuration. It is fatal to
// reconciliation but never to classification or ledger assembly.
var ErrBadRoleConfig = errors.New("malformed role configuration")

// Config identifies the operator's accounts and the accounting parameters.
//
// A Config is an immutable value threaded into each computation; nothing in
// this package reads ambient global state.
type Config struct {
	// Operational account addresses. Transfers between these are internal.
	VoteAccount       string `json:"vote_account"`
	Identity          string `json:"identity"`
	WithdrawAuthority string `json:"withdraw_authority"`

	// PersonalWallet is the designated external wallet. It is deliberately
	// not an internal account: transfers from it seed the capital pool and
	// transfers to it are withdrawals.
	PersonalWallet string `json:"personal_wallet"`

	// KnownExchanges are labeled external destinations (deposit addresses).
	KnownExchanges map[string]string `json:"known_exchanges,omitempty"`

	// BootstrapDate is the day the operator started the business.
	BootstrapDate Date `json:"bootstrap_date"`

	// AcceptanceDate is the reimbursement-program enrollment acceptance
	// date. Zero means not enrolled: coverage is always 0.
	AcceptanceDate Date `json:"acceptance_date,omitzero"`

	// FallbackPrice is returned by the price resolver when the series is
	// empty, flagged as a hardcoded fallback.
	FallbackPrice Money   `json:"-"`
	FallbackUSD   float64 `json:"fallback_price_usd"`

	// Tolerance below which a reconciliation difference is considered OK.
	Tolerance Lamports `json:"tolerance_lamports,omitempty"`

	// ReconcileOffChainCosts includes externally-paid cost entries in the
	// reconciliation cash-flow formula. Whether such costs ever touched the
	// on-chain accounts is ambiguous in the books, so this stays a switch.
	ReconcileOffChainCosts bool `json:"reconcile_offchain_costs"`
}

// LoadConfig reads a Config from a JSON file.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	var c Config
	if err := json.Unmarshal(content, &c); err != nil {
		return Config{}, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	c.FallbackPrice = USD(c.FallbackUSD)
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	return c, nil
}

// Validate checks the role configuration for internal consistency.
func (c Config) Validate() error {
	var errs error
	if c.VoteAccount == "" {
		errs = errors.Join(errs, fmt.Errorf("%w: vote account is empty", ErrBadRoleConfig))
	}
	if c.Identity == "" {
		errs = errors.Join(errs, fmt.Errorf("%w: identity is empty", ErrBadRoleConfig))
	}
	if c.WithdrawAuthority == "" {
		errs = errors.Join(errs, fmt.Errorf("%w: withdraw authority is empty", ErrBadRoleConfig))
	}
	if c.PersonalWallet != "" && c.IsInternal(c.PersonalWallet) {
		errs = errors.Join(errs, fmt.Errorf("%w: personal wallet %s is also an operational account", ErrBadRoleConfig, c.PersonalWallet))
	}
	return errs
}

// IsInternal reports whether the address is one of the operator's
// operational accounts (vote, identity, withdraw authority).
func (c Config) IsInternal(addr string) bool {
	if addr == "" {
		return false
	}
	return addr == c.VoteAccount || addr == c.Identity || addr == c.WithdrawAuthority
}

// ExternalLabel returns the configured label for a known external address
// ("Personal Wallet", exchange names) or "" when the address is unlabeled.
func (c Config) ExternalLabel(addr string) string {
	if addr != "" && addr == c.PersonalWallet {
		return "Personal Wallet"
	}
	if label, ok := c.KnownExchanges[addr]; ok {
		return label
	}
	return ""
}

// Enrolled reports whether a reimbursement-program acceptance date is set.
func (c Config) Enrolled() bool { return !c.AcceptanceDate.IsZero() }
