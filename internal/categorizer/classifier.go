// Package categorizer assigns a topical domain to a certificate from its
// title and skills using an ordered keyword table.
package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/models"
)

// Classifier is an immutable keyword classifier. The first rule with a
// keyword contained in the text wins; no hit means models.DomainOther.
type Classifier struct {
	rules  []models.DomainRule
	logger logging.Logger
}

// NewClassifier copies rules so later changes by the caller are not seen.
func NewClassifier(rules []models.DomainRule, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	copied := make([]models.DomainRule, len(rules))
	for i, r := range rules {
		copied[i] = models.DomainRule{Name: r.Name, Keywords: append([]string(nil), r.Keywords...)}
	}
	return &Classifier{rules: copied, logger: logger}
}

// NewClassifierFromSource loads the table from src.
func NewClassifierFromSource(src DomainRuleSource, logger logging.Logger) (*Classifier, error) {
	rules, err := src.LoadDomainRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load domain rules: %w", err)
	}
	return NewClassifier(rules, logger), nil
}

// Classify picks the domain for a certificate. When skills is empty and a
// folder hint is given, the hint stands in for the skills.
func (c *Classifier) Classify(title string, skills []string, folderHint string) models.Domain {
	text := ClassificationText(title, skills, folderHint)

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				c.logger.WithFields(
					logging.F(logging.FieldTitle, title),
					logging.F("keyword", kw),
					logging.F(logging.FieldDomain, rule.Name),
				).Debug("Certificate classified by keyword")
				return rule.Name
			}
		}
	}
	return models.DomainOther
}

// ClassificationText is the lower-cased text the keywords are matched in.
func ClassificationText(title string, skills []string, folderHint string) string {
	extra := strings.Join(skills, " ")
	if len(skills) == 0 && folderHint != "" {
		extra = folderHint
	}
	return strings.ToLower(title + " " + extra)
}

// Rules returns a copy of the table in match order.
func (c *Classifier) Rules() []models.DomainRule {
	out := make([]models.DomainRule, len(c.rules))
	copy(out, c.rules)
	return out
}
