package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	analystx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/analyst"
	assistantx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/assistant"
	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	ledgerx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/ledger"
	llmx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/llm"
	promptx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/prompt"
	routerx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/router"
	toolx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/tool"
	configx "github.com/tanpawarit/Finsight-Financial-Assistant/pkg/config"
	logx "github.com/tanpawarit/Finsight-Financial-Assistant/pkg/logger"
	openrouterx "github.com/tanpawarit/Finsight-Financial-Assistant/pkg/openrouter"
)

type AppConfig struct {
	Debug      bool `envconfig:"DEBUG" default:"false"`
	PrettyLogs bool `envconfig:"PRETTY_LOGS" split_words:"true" default:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")
	logx.Init(logx.Config{Debug: appCfg.Debug, PrettyFormat: appCfg.PrettyLogs})

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid llm config")
	}

	openRouterClient := openrouterx.NewClient(llmCfg.OpenRouterFor(contractx.StageRouter))
	if openRouterClient == nil {
		log.Fatal().Msg("failed to initialize openrouter client")
	}

	ctx := context.Background()

	routerCfg := llmCfg.OpenRouterFor(contractx.StageRouter)
	routerModel, err := routerCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router model")
	}

	analystCfg := llmCfg.OpenRouterFor(contractx.StageAnalyst)
	analystModel, err := analystCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build analyst model")
	}

	prompts := promptx.LoadPromptSet()

	dispatcher, err := toolx.NewDispatcher(ledgerx.NewSandbox(nil))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build tool dispatcher")
	}

	router, err := routerx.New(ctx, routerModel, dispatcher.Infos(), prompts.Router)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	analyst, err := analystx.New(ctx, analystModel, prompts.Analyst)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build analyst")
	}

	assistant, err := assistantx.New(router, dispatcher, analyst)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build assistant")
	}

	runREPL(ctx, assistant)
}

func runREPL(ctx context.Context, assistant *assistantx.Assistant) {
	fmt.Println("Financial assistant ready. Ask about your transactions (type 'exit' to quit).")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		answer, err := assistant.Answer(ctx, line)
		if err != nil {
			fmt.Println("Please enter a question.")
			continue
		}
		fmt.Println(answer)

		turn := assistant.Trace()
		log.Debug().
			Str("turn_id", turn.TurnID).
			Str("decision", string(turn.Decision)).
			Interface("tool_request", turn.ToolRequest).
			Interface("effective_range", turn.EffectiveRange).
			Str("error", turn.Err).
			Msg("turn trace")
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("stdin read failed")
	}
}
