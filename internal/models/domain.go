package models

// Domain is a topical category from a closed vocabulary.
type Domain string

const (
	DomainProgramming   Domain = "programming"
	DomainCloud         Domain = "cloud"
	DomainFrontend      Domain = "frontend"
	DomainDevOps        Domain = "devops"
	DomainAI            Domain = "ai"
	DomainAgile         Domain = "agile"
	DomainEcommerce     Domain = "ecommerce"
	DomainCommunication Domain = "communication"
	DomainTools         Domain = "tools"
	DomainSecurity      Domain = "security"
	DomainData          Domain = "data"
	DomainAPI           Domain = "api"
	DomainOther         Domain = "other"
)

// AllDomains lists the vocabulary in classifier order, "other" last.
var AllDomains = []Domain{
	DomainProgramming, DomainCloud, DomainFrontend, DomainDevOps, DomainAI,
	DomainAgile, DomainEcommerce, DomainCommunication, DomainTools,
	DomainSecurity, DomainData, DomainAPI, DomainOther,
}

// IsValid reports whether d belongs to the vocabulary.
func (d Domain) IsValid() bool {
	for _, known := range AllDomains {
		if d == known {
			return true
		}
	}
	return false
}

func (d Domain) String() string {
	return string(d)
}

// DomainRule maps a domain to the lowercase keywords that select it.
type DomainRule struct {
	Name     Domain   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// DomainsConfig is the shape of domains.yaml.
type DomainsConfig struct {
	Domains []DomainRule `yaml:"domains"`
}

// DefaultDomainRules returns a fresh copy of the built-in keyword table.
// Order matters: the first domain with a matching keyword wins.
func DefaultDomainRules() []DomainRule {
	return []DomainRule{
		{DomainProgramming, []string{"java", "python", "javascript", "programming", "spring", "maven", "object-oriented", "refactoring", "code", "git"}},
		{DomainCloud, []string{"aws", "azure", "google cloud", "cloud", "gcp", "ccv2", "btp"}},
		{DomainFrontend, []string{"css", "html", "frontend", "web developers", "visual studio code", "web"}},
		{DomainDevOps, []string{"docker", "kubernetes", "jenkins", "ci/cd", "devops", "infrastructure", "version control", "ubuntu", "linux"}},
		{DomainAI, []string{"ai", "artificial intelligence", "machine learning", "chatgpt", "gpt", "openai", "claude", "gemini", "copilot", "mcp", "agentic", "deepfake", "dalle"}},
		{DomainAgile, []string{"agile", "scrum", "project management", "kanban"}},
		{DomainEcommerce, []string{"e-commerce", "ecommerce", "seo", "commerce", "sap commerce"}},
		{DomainCommunication, []string{"communication", "meeting", "presentation", "business", "marketing"}},
		{DomainTools, []string{"visual studio code", "postman", "confluence", "microsoft 365", "excel", "windows", "macos"}},
		{DomainSecurity, []string{"security", "owasp", "api security"}},
		{DomainData, []string{"data", "analytics", "excel", "chatgpt data", "dynamodb"}},
		{DomainAPI, []string{"api", "rest", "swagger", "openapi", "postman", "api testing", "api documentation"}},
	}
}
