package store

import "fjacquet/cert-archive/internal/models"

// MockDomainStore serves fixed rules in tests.
type MockDomainStore struct {
	Rules []models.DomainRule
	Err   error
}

// LoadDomainRules returns the configured rules or error.
func (m *MockDomainStore) LoadDomainRules() ([]models.DomainRule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rules, nil
}
