package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/coregx/coreglob"
)

// ruleFile is the TOML layout of a --rules file:
//
//	[[rule]]
//	name = "define"
//	pattern = "(define (*) *)"
type ruleFile struct {
	Rules []rule `toml:"rule"`
}

type rule struct {
	Name    string `toml:"name"`
	Pattern string `toml:"pattern"`
}

// compiledRule is a rule ready for matching.
type compiledRule struct {
	name    string
	pattern *coreglob.Pattern
}

// loadRules reads a rule file. Unknown keys are an error so that a typo does
// not silently drop a rule.
func loadRules(path string) ([]rule, error) {
	var rf ruleFile
	md, err := toml.DecodeFile(path, &rf)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("%s: no [[rule]] entries", path)
	}
	for i := range rf.Rules {
		if rf.Rules[i].Name == "" {
			rf.Rules[i].Name = fmt.Sprintf("rule%d", i+1)
		}
	}
	return rf.Rules, nil
}

// compileRules compiles every rule, failing on the first invalid pattern.
func compileRules(rules []rule, config coreglob.Config) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		p, err := coreglob.CompileWithConfig(r.Pattern, config)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{name: r.Name, pattern: p})
	}
	return compiled, nil
}
