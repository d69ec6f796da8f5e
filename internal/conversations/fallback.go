package conversations

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"unimate/internal/models"
)

//go:embed fallback.yaml
var fallbackYAML []byte

var fallbackSummaries = mustParseFallback(fallbackYAML)

func mustParseFallback(data []byte) []models.ConversationSummary {
	summaries, err := parseFallback(data)
	if err != nil {
		panic(err)
	}
	return summaries
}

func parseFallback(data []byte) ([]models.ConversationSummary, error) {
	var summaries []models.ConversationSummary
	if err := yaml.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("parse fallback conversations: %w", err)
	}
	return summaries, nil
}

// Fallback returns a copy of the fixed dataset served when the backend is
// unavailable.
func Fallback() []models.ConversationSummary {
	out := make([]models.ConversationSummary, len(fallbackSummaries))
	copy(out, fallbackSummaries)
	return out
}
