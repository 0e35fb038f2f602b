package config

// PolicyFile represents the structure of the licheck.yaml configuration file.
type PolicyFile struct {
	Package   string            `yaml:"package"`
	Overrides map[string]string `yaml:"overrides"`
	Whitelist []string          `yaml:"whitelist"`
	Allow     AllowDTO          `yaml:"allow"`
}

// AllowDTO holds the policy toggles. Pointers distinguish "unset" from
// "explicitly false" so the file only changes defaults it names.
type AllowDTO struct {
	Nonfree      *bool `yaml:"nonfree"`
	Viral        *bool `yaml:"viral"`
	Unknown      *bool `yaml:"unknown"`
	Unlicense    *bool `yaml:"unlicense"`
	LGPL         *bool `yaml:"lgpl"`
	Ambiguous    *bool `yaml:"ambiguous"`
	PublicDomain *bool `yaml:"public_domain"`
}
