package categorizer

import "fjacquet/cert-archive/internal/models"

// DomainRuleSource supplies the ordered keyword table.
type DomainRuleSource interface {
	LoadDomainRules() ([]models.DomainRule, error)
}
