package aggregate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	apperrors "github.com/Am1anB/Sentiment-analysis-project/internal/core/errors"
)

const (
	sentimentColumn = "sentiment"
	topicColumn     = "topic"
	missingText     = "nan"
	utf8BOM         = "\ufeff"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("required column missing")

// textColumnCandidates are the header names recognized as the text column.
var textColumnCandidates = []string{"text", "comment", "content", "message", "ความคิดเห็น", "ข้อความ"}

type columns struct {
	text      int
	sentiment int
	topic     int
}

// ReadCSV reads labelled documents from a CSV with a header row. The text
// column is the leftmost header matching a known text column name, falling
// back to the first column. Rows with a blank or "nan" text are skipped.
func ReadCSV(r io.Reader) ([]Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv header: %w", apperrors.ErrInvalidInput)
	}

	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var docs []Document

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		text := strings.TrimSpace(field(record, cols.text))
		if text == "" || text == missingText {
			continue
		}

		docs = append(docs, Document{
			Text:      text,
			Sentiment: domain.NormalizeLabel(field(record, cols.sentiment)),
			Topic:     strings.TrimSpace(field(record, cols.topic)),
		})
	}

	return docs, nil
}

func locateColumns(header []string) (columns, error) {
	caser := cases.Fold()
	folded := make([]string, len(header))

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}

		folded[i] = caser.String(strings.TrimSpace(name))
	}

	cols := columns{text: -1, sentiment: -1, topic: -1}

	candidates := make([]string, len(textColumnCandidates))
	for i, candidate := range textColumnCandidates {
		candidates[i] = caser.String(candidate)
	}

	for i, name := range folded {
		if indexOf(candidates, name) >= 0 {
			cols.text = i

			break
		}
	}

	if cols.text < 0 && len(header) > 0 {
		cols.text = 0
	}

	cols.sentiment = indexOf(folded, sentimentColumn)
	if cols.sentiment < 0 {
		return cols, fmt.Errorf("%w: %s", ErrMissingColumn, sentimentColumn)
	}

	cols.topic = indexOf(folded, topicColumn)
	if cols.topic < 0 {
		return cols, fmt.Errorf("%w: %s", ErrMissingColumn, topicColumn)
	}

	return cols, nil
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}

	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return record[idx]
}
