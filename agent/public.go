package agent

import (
	"context"
	"fmt"

	"github.com/valops/vacct"
	"github.com/valops/vacct/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// ReportFn replays the recorded books and returns the report for a year
// (0 means the full history). The cmd package provides the implementation.
type ReportFn func(year int) (*vacct.Report, error)

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			The user operates a Solana validator as a sole proprietorship and keeps his tax books here.
			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
			Amounts are in SOL and USD; never invent figures, always get them from the Bookkeeper.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the expert grounded in public information about the
// Solana ecosystem.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert analyst of the Solana ecosystem,
		aware of validator economics, staking rewards, vote costs and the
		latest network news. Ask the Analyst whenever you need recent or
		grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in the Solana ecosystem: validators, staking,
			vote transaction costs, MEV, delegation programs. You leverage
			Google Search to ground your assertions in solid truth, and you
			know how to relate the latest news to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper returns the expert in charge of reading the user's books.
func NewBookkeeper(report ReportFn) *Expert {
	lib := []Function{ledgerTool(report), reconciliationTool(report)}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the
		user's validator tax ledger. He can render the ledger for any tax
		year and check how the books reconcile against on-chain balances.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's validator tax ledger.
				You know how to use the Tools to extract the relevant figures:
				  - the ledger entries and totals for a tax year
				  - the latest reconciliation status
				You are part of a team of experts; yours is everything about the
				user's books. Pardon their approximative language and figure out
				what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func parseYear(args map[string]any) int {
	iyear, ok := args["year"]
	if !ok {
		return 0
	}
	// genai delivers JSON numbers as float64.
	if year, ok := iyear.(float64); ok {
		return int(year)
	}
	return 0
}

func ledgerTool(report ReportFn) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Ledger",
			Description: `Ledger renders the tax ledger: every revenue,
			return-of-capital, reimbursement and expense entry with the
			yearly totals.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"year": {
						Type:        genai.TypeInteger,
						Description: "The tax year to report on. The full history is the default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted ledger with a totals table.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			r, err := report(parseYear(args))
			if err != nil {
				return errorResponse(id, "Ledger", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Ledger",
				Response: map[string]any{
					"output": renderer.LedgerMarkdown(r),
				},
			}
		},
	}
}

func reconciliationTool(report ReportFn) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Reconciliation",
			Description: `Reconciliation returns the latest check of the books
			against on-chain balances, when one has been recorded.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The reconciliation status with expected, actual and difference in SOL.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			r, err := report(0)
			if err != nil {
				return errorResponse(id, "Reconciliation", err)
			}
			if r.Reconciliation == nil {
				return &genai.FunctionResponse{
					ID:   id,
					Name: "Reconciliation",
					Response: map[string]any{
						"output": "No reconciliation has been run. Run 'vacct reconcile' first.",
					},
				}
			}
			rec := r.Reconciliation
			out := fmt.Sprintf("Status %s at slot %d: expected %s SOL, actual %s SOL, difference %s SOL (tolerance %s).",
				rec.Status, rec.Slot, rec.Expected, rec.Actual, rec.Difference.SignedString(), rec.Tolerance)
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Reconciliation",
				Response: map[string]any{
					"output": out,
				},
			}
		},
	}
}
