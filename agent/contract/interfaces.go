package contract

import "context"

// Router is the decision stage: it judges whether a question can be answered
// from transaction data and, if so, which tool to invoke with which args.
type Router interface {
	Decide(ctx context.Context, question string) (DecisionOutcome, error)
}

// Dispatcher validates a tool request against the catalog and executes it
// against the transaction source.
type Dispatcher interface {
	Dispatch(ctx context.Context, req ToolRequest) (ToolResult, error)
}

// Analyst is the analysis stage: it turns the question plus fetched data into
// prose. The returned string is the model's text verbatim.
type Analyst interface {
	Analyze(ctx context.Context, question string, result ToolResult) (string, error)
}
