package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/router.txt
	routerRaw string

	//go:embed template/analyst.txt
	analystRaw string
)

// PromptSet holds loaded system prompt content.
type PromptSet struct {
	Router  string
	Analyst string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings. The embed is
// compile-time, so this is safe to call concurrently.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Router:  strings.TrimSpace(routerRaw),
		Analyst: strings.TrimSpace(analystRaw),
	}
}
