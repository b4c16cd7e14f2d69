package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
)

const (
	promptLanguagePlaceholder = "{{LANGUAGE}}"
	promptStatsPlaceholder    = "{{STATS}}"
	promptTopicsPlaceholder   = "{{TOPICS_JSON}}"
	topicsJSONIndent          = "  "
)

const defaultSystemPrompt = `# IDENTITY AND ROLE
You are a Senior Customer Experience (CX) Data Analyst. Your role is to synthesize unstructured survey feedback into a professional, actionable "Executive Summary" for the management team.

# GOAL
Perform abstractive summarization. Read the provided sentiment statistics and topic groupings, then rewrite the findings into a cohesive narrative.
DO NOT simply copy-paste the comments. Interpret them and write a professional summary in your own words.

# OUTPUT REQUIREMENTS
1. Language: formal {{LANGUAGE}} suitable for a business dashboard.
2. Format: Markdown.
3. Tone: objective, insightful, professional and concise.

# RESPONSE STRUCTURE (Markdown)

## 1. Executive Overview
- One concise paragraph summarizing the overall situation.
- Use the sentiment statistics to describe the general mood.

## 2. Key Insights by Topic
For each significant topic in the JSON data:
- **Topic Name:** a clear, human-readable title.
- **Summary:** a synthesized explanation of what users are saying.
- **Sentiment:** the dominant sentiment for this topic.

## 3. Strategic Recommendations
- Provide 3 actionable steps based on the insights.`

const defaultUserPrompt = `Here is the analysis data:

[PART 1: SENTIMENT STATISTICS]
{{STATS}}

[PART 2: DATA GROUPED BY TOPIC]
(The data is in JSON format: Topic Name -> List of Comments)
{{TOPICS_JSON}}

Please generate the Executive Report in {{LANGUAGE}} based on this data.`

func buildSystemPrompt(language string) string {
	return strings.ReplaceAll(defaultSystemPrompt, promptLanguagePlaceholder, language)
}

func buildUserPrompt(stats, topicsJSON, language string) string {
	return strings.NewReplacer(
		promptStatsPlaceholder, strings.TrimRight(stats, "\n"),
		promptTopicsPlaceholder, topicsJSON,
		promptLanguagePlaceholder, language,
	).Replace(defaultUserPrompt)
}

// encodeTopicTexts renders topics as an indented JSON object keyed by topic
// name. Keys keep the given order; a repeated topic name keeps its first lines.
func encodeTopicTexts(topics []domain.TopicTexts) (string, error) {
	if len(topics) == 0 {
		return "{}", nil
	}

	var buf bytes.Buffer

	seen := make(map[string]struct{}, len(topics))

	buf.WriteString("{")

	for _, topic := range topics {
		if _, dup := seen[topic.Topic]; dup {
			continue
		}

		seen[topic.Topic] = struct{}{}

		key, err := marshalNoEscape(topic.Topic, "")
		if err != nil {
			return "", fmt.Errorf(errEncodeTopics, err)
		}

		lines := topic.Lines
		if lines == nil {
			lines = []string{}
		}

		value, err := marshalNoEscape(lines, topicsJSONIndent)
		if err != nil {
			return "", fmt.Errorf(errEncodeTopics, err)
		}

		if len(seen) > 1 {
			buf.WriteString(",")
		}

		buf.WriteString("\n" + topicsJSONIndent)
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(value)
	}

	buf.WriteString("\n}")

	return buf.String(), nil
}

func marshalNoEscape(v any, prefix string) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if prefix != "" {
		enc.SetIndent(prefix, topicsJSONIndent)
	}

	if err := enc.Encode(v); err != nil {
		return "", err
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
