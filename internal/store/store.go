// Package store loads the domain keyword table from domains.yaml, falling
// back to the built-in table when no file is configured or found.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/models"
	"fjacquet/cert-archive/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// DefaultDomainsFile is looked up when no explicit file is configured.
const DefaultDomainsFile = "domains.yaml"

// DomainStore reads domain rules from YAML.
type DomainStore struct {
	DomainsFile string
	logger      logging.Logger
}

// NewDomainStore creates a store for the given file. An empty name means
// DefaultDomainsFile in the usual config locations.
func NewDomainStore(domainsFile string, logger logging.Logger) *DomainStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &DomainStore{DomainsFile: domainsFile, logger: logger}
}

// FindConfigFile resolves filename against the working directory, ./config
// and ~/.config/cert-archive.
func (s *DomainStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "cert-archive", filename))
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadDomainRules returns the configured rules in file order. When no file
// exists the built-in table is returned. An explicitly configured file that
// is missing is an error.
func (s *DomainStore) LoadDomainRules() ([]models.DomainRule, error) {
	filename := s.DomainsFile
	explicit := filename != ""
	if !explicit {
		filename = DefaultDomainsFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			s.logger.Debug("No domains file found, using built-in table")
			return models.DefaultDomainRules(), nil
		}
		return nil, fmt.Errorf("error resolving domains file %s: %w", filename, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading domains file: %w", err)
	}

	rules, err := ParseDomainRules(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing domains file %s: %w", path, err)
	}

	s.logger.Debug("Loaded domain rules",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rules)))
	return rules, nil
}

// ParseDomainRules decodes and validates a domains.yaml document.
func ParseDomainRules(data []byte) ([]models.DomainRule, error) {
	var cfg models.DomainsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Domains) == 0 {
		return nil, &parsererror.ValidationError{Subject: "domains", Reason: "no domains defined"}
	}

	for i := range cfg.Domains {
		rule := &cfg.Domains[i]
		rule.Name = models.Domain(strings.ToLower(strings.TrimSpace(string(rule.Name))))
		if !rule.Name.IsValid() || rule.Name == models.DomainOther {
			return nil, &parsererror.ValidationError{
				Subject: "domains",
				Reason:  fmt.Sprintf("unknown domain %q", rule.Name),
			}
		}

		keywords := rule.Keywords[:0]
		for _, kw := range rule.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		rule.Keywords = keywords
	}
	return cfg.Domains, nil
}
