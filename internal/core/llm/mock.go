package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/observability"
)

// mockSummarizer builds a fixed-layout report without calling a model.
type mockSummarizer struct {
	language string
}

// NewMock creates the offline summarizer.
func NewMock(language string) Summarizer {
	return &mockSummarizer{language: language}
}

func (m *mockSummarizer) Name() string {
	return providerMock
}

func (m *mockSummarizer) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "## 1. Executive Overview\n\n_Mock summary (%s)._\n\n", resolveLanguage(req, m.language))

	stats := strings.TrimSpace(req.Stats)
	if stats == "" {
		stats = "No data"
	}

	sb.WriteString(stats)
	sb.WriteString("\n\n## 2. Key Insights by Topic\n\n")

	if len(req.Topics) == 0 {
		sb.WriteString("- No topics.\n")
	}

	for _, topic := range req.Topics {
		fmt.Fprintf(&sb, "- **%s:** %d comments\n", topic.Topic, len(topic.Lines))
	}

	sb.WriteString("\n## 3. Strategic Recommendations\n\n")
	sb.WriteString("1. Address the most discussed topic first.\n")
	sb.WriteString("2. Follow up on negative feedback.\n")
	sb.WriteString("3. Keep what positive feedback praises.\n")

	observability.SummariesGenerated.WithLabelValues(observability.SummaryStatusOK).Inc()

	return sb.String(), nil
}
