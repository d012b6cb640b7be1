package analyst

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
)

// Analyst is the analysis stage: it renders the tool result into a prompt and
// delegates prose synthesis to the chat model. The response text is returned
// verbatim; the contract with the model is prose, not structured data.
type Analyst struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Analyst, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: analyst system prompt is required", contractx.ErrValidation)
	}

	runner, err := compileAnalystGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, err
	}
	return &Analyst{runner: runner}, nil
}

func (a *Analyst) Analyze(ctx context.Context, question string, result contractx.ToolResult) (string, error) {
	prompt := BuildPrompt(question, result)

	msg, err := a.runner.Invoke(ctx, map[string]any{
		"input": prompt,
	})
	if err != nil {
		return "", fmt.Errorf("%w: analyst invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return "", contractx.ErrEmptyAnswer
	}

	answer := strings.TrimSpace(msg.Content)
	if answer == "" {
		return "", contractx.ErrEmptyAnswer
	}
	return answer, nil
}

func compileAnalystGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add analyst prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add analyst model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add analyst edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add analyst edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add analyst edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("analyst.prose_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile analyst graph: %w", err)
	}
	return runner, nil
}
