package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
)

// CannotAnswerSentinel is the exact text the router model must emit when the
// question is out of scope. Comparison happens once, here; downstream code
// only sees the tagged DecisionOutcome.
const CannotAnswerSentinel = "CANNOT_ANSWER_WITH_TRANSACTION_DATA"

// Router is the decision stage. It binds the tool catalog to a chat model
// and interprets the model's response into a DecisionOutcome.
type Router struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

func New(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	tools []*schema.ToolInfo,
	systemPrompt string,
) (*Router, error) {
	if len(tools) == 0 {
		return nil, fmt.Errorf("%w: router requires at least one tool", contractx.ErrValidation)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: router system prompt is required", contractx.ErrValidation)
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind router tools: %v", contractx.ErrModelInvoke, err)
	}

	runner, err := compileRouterGraph(ctx, toolModel, systemPrompt)
	if err != nil {
		return nil, err
	}
	return &Router{runner: runner}, nil
}

func (r *Router) Decide(ctx context.Context, question string) (contractx.DecisionOutcome, error) {
	if strings.TrimSpace(question) == "" {
		return contractx.DecisionOutcome{}, fmt.Errorf("%w: question is empty", contractx.ErrValidation)
	}

	msg, err := r.runner.Invoke(ctx, map[string]any{
		"input": question,
	})
	if err != nil {
		return contractx.DecisionOutcome{}, fmt.Errorf("%w: router invoke: %v", contractx.ErrModelInvoke, err)
	}

	return Interpret(msg)
}

// Interpret maps a raw router message onto a DecisionOutcome. A tool call
// wins over text; the exact sentinel text means cannot-answer; everything
// else is malformed and surfaced as such, never guessed at.
func Interpret(msg *schema.Message) (contractx.DecisionOutcome, error) {
	if msg == nil {
		return contractx.DecisionOutcome{}, fmt.Errorf("%w: empty router response", contractx.ErrMalformedDecision)
	}

	content := strings.TrimSpace(msg.Content)

	if len(msg.ToolCalls) > 0 {
		call := msg.ToolCalls[0]
		name := strings.TrimSpace(call.Function.Name)
		if name == "" {
			return contractx.DecisionOutcome{}, fmt.Errorf("%w: tool call name is empty", contractx.ErrMalformedDecision)
		}

		args := map[string]any{}
		if rawArgs := strings.TrimSpace(call.Function.Arguments); rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return contractx.DecisionOutcome{}, fmt.Errorf("%w: invalid args for tool=%s: %v", contractx.ErrMalformedDecision, name, err)
			}
		}

		return contractx.DecisionOutcome{
			Kind: contractx.DecisionNeedsTool,
			Raw:  content,
			Request: &contractx.ToolRequest{
				Tool: name,
				Args: args,
			},
		}, nil
	}

	if content == CannotAnswerSentinel {
		return contractx.DecisionOutcome{
			Kind: contractx.DecisionCannotAnswer,
			Raw:  content,
		}, nil
	}

	return contractx.DecisionOutcome{}, fmt.Errorf("%w: neither tool call nor sentinel: %q", contractx.ErrMalformedDecision, content)
}
