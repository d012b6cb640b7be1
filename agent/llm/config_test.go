package llm

import (
	"errors"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
)

func baseConfig() Config {
	return Config{
		BaseURL:            "https://openrouter.ai/api/v1",
		APIKey:             "sk-test",
		Model:              "openai/gpt-4o-mini",
		MaxCompletionToken: 2000,
		Temperature:        0.2,
		Timeout:            30 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	missingKey := baseConfig()
	missingKey.APIKey = "   "
	if err := missingKey.Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing key, got %v", err)
	}

	missingModel := baseConfig()
	missingModel.Model = ""
	if err := missingModel.Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing model, got %v", err)
	}
}

func TestOpenRouterForDefaults(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.RouterTemperature = -1
	cfg.AnalystTemperature = -1

	router := cfg.OpenRouterFor(contractx.StageRouter)
	if router.Model != cfg.Model || router.Temperature != cfg.Temperature {
		t.Fatalf("router stage must fall back to shared settings: %+v", router)
	}

	analyst := cfg.OpenRouterFor(contractx.StageAnalyst)
	if analyst.Model != cfg.Model || analyst.Temperature != cfg.Temperature {
		t.Fatalf("analyst stage must fall back to shared settings: %+v", analyst)
	}
}

func TestOpenRouterForStageOverrides(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.RouterModel = "openai/gpt-4o"
	cfg.RouterTemperature = 0
	cfg.AnalystModel = "anthropic/claude-sonnet"
	cfg.AnalystTemperature = 0.7

	router := cfg.OpenRouterFor(contractx.StageRouter)
	if router.Model != "openai/gpt-4o" {
		t.Fatalf("router model override ignored: %s", router.Model)
	}
	if router.Temperature != 0 {
		t.Fatalf("zero is a deliberate router temperature, got %v", router.Temperature)
	}

	analyst := cfg.OpenRouterFor(contractx.StageAnalyst)
	if analyst.Model != "anthropic/claude-sonnet" || analyst.Temperature != 0.7 {
		t.Fatalf("analyst overrides ignored: %+v", analyst)
	}
}
