// Package classifier suggests an account for a free-text description using a naive Bayes
// model trained on previously posted journal entries.
package classifier

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/jbrukh/bayesian"
)

// MinConfidence is the lowest posterior probability reported as a match.
const MinConfidence = 0.5

// Example is one labelled description.
type Example struct {
	Description string
	AccountID   int64
}

// Classifier maps descriptions to account ids. The zero value and nil never match.
type Classifier struct {
	model *bayesian.Classifier
}

// Train builds a classifier. At least two distinct accounts are needed; with fewer the
// returned classifier never matches.
func Train(examples []Example) *Classifier {
	var classes []bayesian.Class
	seen := make(map[int64]bool)
	for _, ex := range examples {
		if len(Tokenize(ex.Description)) == 0 || seen[ex.AccountID] {
			continue
		}
		seen[ex.AccountID] = true
		classes = append(classes, classOf(ex.AccountID))
	}
	if len(classes) < 2 {
		return &Classifier{}
	}

	model := bayesian.NewClassifier(classes...)
	for _, ex := range examples {
		words := Tokenize(ex.Description)
		if len(words) == 0 {
			continue
		}
		model.Learn(words, classOf(ex.AccountID))
	}
	return &Classifier{model: model}
}

// Predict returns the most likely account and its probability. ok is false when the model
// is untrained, the description has no usable words, or the best class is ambiguous or
// below MinConfidence.
func (c *Classifier) Predict(description string) (accountID int64, confidence float64, ok bool) {
	if c == nil || c.model == nil {
		return 0, 0, false
	}
	words := Tokenize(description)
	if len(words) == 0 {
		return 0, 0, false
	}

	scores, idx, strict := c.model.ProbScores(words)
	if !strict || scores[idx] < MinConfidence {
		return 0, scores[idx], false
	}
	id, err := strconv.ParseInt(string(c.model.Classes[idx]), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return id, scores[idx], true
}

// Tokenize lower-cases s and splits it into words of letters and digits.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func classOf(accountID int64) bayesian.Class {
	return bayesian.Class(strconv.FormatInt(accountID, 10))
}
