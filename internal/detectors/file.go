package detectors

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile is the YAML shape of a custom rules file. When Builtin is true
// the custom rules are appended to the built-in set.
type RulesFile struct {
	Builtin bool   `yaml:"builtin"`
	Rules   []Rule `yaml:"rules"`
}

// LoadRulesFile reads custom rules from a YAML file such as:
//
//	builtin: true
//	rules:
//	  - id: acme_token
//	    pattern: 'acme_[a-z0-9]{32}'
//	    severity: high
func LoadRulesFile(path string) ([]Rule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rf RulesFile
	if err := yaml.Unmarshal(b, &rf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rf.Rules) == 0 && !rf.Builtin {
		return nil, fmt.Errorf("%s: %w: no rules defined", path, ErrInvalidRule)
	}
	if rf.Builtin {
		return append(Builtin(), rf.Rules...), nil
	}
	return rf.Rules, nil
}
