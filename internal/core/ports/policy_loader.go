package ports

import "go.trai.ch/licheck/internal/core/domain"

// PolicyLoader finds and parses the policy configuration file.
//
//go:generate mockgen -source=policy_loader.go -destination=mocks/mock_policy_loader.go -package=mocks
type PolicyLoader interface {
	// Load walks up from cwd looking for a policy file and returns the
	// parsed configuration. A missing file is not an error: the default
	// policy is returned.
	Load(cwd string) (domain.RunConfig, error)
}
