package ml

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadQuestionSet reads the labeled question dataset ("Question,Label"
// header). Stray parentheses in labels are stripped, matching how the
// dataset was exported.
func LoadQuestionSet(path string) (questions, labels []string, err error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("%w: %s has no data rows", ErrDataUnavailable, path)
	}

	header := rows[0]
	qIdx, lIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Question":
			qIdx = i
		case "Label":
			lIdx = i
		}
	}
	if qIdx < 0 || lIdx < 0 {
		return nil, nil, fmt.Errorf("%w: %s missing Question/Label columns", ErrDataUnavailable, path)
	}

	for _, row := range rows[1:] {
		if qIdx >= len(row) || lIdx >= len(row) {
			continue
		}
		question := row[qIdx]
		label := strings.NewReplacer("(", "", ")", "").Replace(row[lIdx])
		if strings.TrimSpace(question) == "" || strings.TrimSpace(label) == "" {
			continue
		}
		questions = append(questions, question)
		labels = append(labels, label)
	}

	if len(questions) == 0 {
		return nil, nil, fmt.Errorf("%w: %s has no usable rows", ErrDataUnavailable, path)
	}
	return questions, labels, nil
}

// LoadCategoryColumn reads one category column from the comment dataset.
// Each cell encodes a "text(label)" pair: the text is everything before the
// first '(' and the label is the remainder with closing parens stripped.
// That parsing rule is part of the dataset contract and must not change.
func LoadCategoryColumn(path string, category Category) (texts, labels []string, err error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("%w: %s has no data rows", ErrDataUnavailable, path)
	}

	name := strings.TrimSpace(string(category))
	col := -1
	for i, header := range rows[0] {
		if strings.TrimSpace(header) == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, nil, &ColumnNotFoundError{Category: Category(name)}
	}

	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		cell := row[col]
		if strings.TrimSpace(cell) == "" {
			continue
		}
		text, rest, found := strings.Cut(cell, "(")
		if !found {
			continue
		}
		label := strings.ReplaceAll(rest, ")", "")
		if strings.TrimSpace(text) == "" || strings.TrimSpace(label) == "" {
			continue
		}
		texts = append(texts, text)
		labels = append(labels, label)
	}

	if len(texts) == 0 {
		return nil, nil, fmt.Errorf("%w: column %q of %s has no usable rows", ErrDataUnavailable, name, path)
	}
	return texts, labels, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return rows, nil
}
