// Package cmd implements the CLI application to manage the validator ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/valops/vacct"
	"github.com/valops/vacct/store"
	"golang.org/x/term"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "data")
	c.Register(&pricesCmd{}, "data")
	c.Register(&costCmd{}, "data")

	c.Register(&reportCmd{}, "reports")
	c.Register(&reconcileCmd{}, "reports")

	c.Register(&serveCmd{}, "server")

	c.Register(&assistCmd{}, "misc")
	c.Register(&topicCmd{}, "misc")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "vacct.json", "Path to the operator configuration file (JSON)")
var databaseFile = flag.String("db", "vacct.db", "Path to the SQLite ledger database")
var rpcEndpoint = flag.String("rpc", "", "Solana JSON-RPC endpoint (defaults to mainnet-beta, or SOLANA_RPC_URL)")

func init() {
	// Environment overrides live in a local .env file when present.
	_ = godotenv.Load()
}

// Endpoint resolves the RPC endpoint from the flag or the environment.
func Endpoint() string {
	if *rpcEndpoint != "" {
		return *rpcEndpoint
	}
	if env := os.Getenv("SOLANA_RPC_URL"); env != "" {
		return env
	}
	return ""
}

// OpenConfig loads and validates the operator configuration.
func OpenConfig() (vacct.Config, error) {
	c, err := vacct.LoadConfig(*configFile)
	if err != nil {
		return vacct.Config{}, err
	}
	if err := c.Validate(); err != nil {
		return vacct.Config{}, err
	}
	return c, nil
}

// OpenStore opens the ledger database, creating and migrating it if needed.
func OpenStore() (*store.Store, error) {
	return store.Open(*databaseFile)
}

// printMarkdown renders markdown to the terminal, falling back to plain
// text when stdout is not a terminal (pipes, redirections).
func printMarkdown(md string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
