package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the command line with stdin and returns the exit status and
// both outputs.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const forms = "(let x)\n(define (sq) y)\n(define z)\n"

func TestMatchStdin(t *testing.T) {
	code, out, _ := runCLI(t, forms, "match", "(define (*) *)")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "-:2:0-15:pattern \"sq\" \"y\"\n", out)
}

func TestMatchNoMatch(t *testing.T) {
	code, out, stderr := runCLI(t, forms, "match", "(lambda *)")
	assert.Equal(t, exitNoMatch, code)
	assert.Empty(t, out)
	assert.Empty(t, stderr)
}

func TestMatchFiles(t *testing.T) {
	a := writeFile(t, "a.scm", forms)
	b := writeFile(t, "b.scm", "(define w)\n")

	code, out, _ := runCLI(t, "", "match", "(define *)", a, b)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, []string{
		a + ":3:0-10:pattern \"z\"",
		b + ":1:0-10:pattern \"w\"",
	}, strings.Split(strings.TrimSpace(out), "\n"))

	code, _, stderr := runCLI(t, "", "match", "x", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "missing")
}

func TestMatchJSON(t *testing.T) {
	code, out, _ := runCLI(t, "f(a, b)\n", "match", "--json", "f(*, *)")
	require.Equal(t, exitOK, code)

	var rec matchRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, matchRecord{
		File:   "-",
		Line:   1,
		Rule:   "pattern",
		Begin:  0,
		End:    7,
		Groups: []string{"a", "b"},
	}, rec)
}

func TestMatchRules(t *testing.T) {
	rules := writeFile(t, "rules.toml", `
[[rule]]
name = "define"
pattern = "(define (*) *)"

[[rule]]
pattern = "(let *)"
`)
	code, out, _ := runCLI(t, forms, "match", "--rules", rules)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "-:1:0-7:rule2 \"x\"\n-:2:0-15:define \"sq\" \"y\"\n", out)
}

func TestMatchRulesErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown_key", "[[rule]]\npatern = \"a\"\n", "unknown keys"},
		{"empty", "# nothing\n", "no [[rule]] entries"},
		{"invalid_pattern", "[[rule]]\nname = \"bad\"\npattern = \"a**\"\n", `rule "bad"`},
		{"syntax", "[[rule]\n", "failed to read rules"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := writeFile(t, "rules.toml", tt.content)
			code, _, stderr := runCLI(t, "", "match", "--rules", rules)
			assert.Equal(t, exitError, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestMatchNeedsPattern(t *testing.T) {
	code, _, stderr := runCLI(t, "", "match")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "needs a PATTERN")
}

func TestCheck(t *testing.T) {
	code, out, _ := runCLI(t, "", "check", "a*b", ".")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "ok\ta*b\t1 groups\nok\t.\t1 groups\n", out)

	code, out, stderr := runCLI(t, "", "check", "a*b", "a**b")
	assert.Equal(t, exitError, code)
	assert.Contains(t, out, "invalid\ta**b\t")
	assert.Contains(t, out, "adjacent")
	assert.Contains(t, stderr, "1 of 2 patterns are invalid")
}

func TestGen(t *testing.T) {
	code, out, _ := runCLI(t, "", "gen", "(define *)", "--name", "Define", "--package", "forms")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "package forms")
	assert.Contains(t, out, "func DefineFirstMatch(input string)")

	path := filepath.Join(t.TempDir(), "define_gen.go")
	code, _, stderr := runCLI(t, "", "gen", "(define *)", "--name", "Define", "-o", path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "generated")
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package main")

	code, _, _ = runCLI(t, "", "gen", "a*")
	assert.Equal(t, exitError, code)

	code, _, stderr = runCLI(t, "", "gen", "a**", "--name", "A")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "adjacent")
}

func TestSettings(t *testing.T) {
	t.Run("engine_flag", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "check", "--engine", "dfa", "a")
		assert.Equal(t, exitError, code)
		assert.Contains(t, stderr, "unknown engine")
	})

	t.Run("engine_env", func(t *testing.T) {
		t.Setenv("COREGLOB_ENGINE", "pikevm")
		code, _, stderr := runCLI(t, "", "check", "-v", "a*")
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stderr, "UseNFA")
	})

	t.Run("config_file", func(t *testing.T) {
		config := writeFile(t, "coreglob.toml", "engine = \"pikevm\"\nverbose = true\nlog-format = \"json\"\n")
		code, _, stderr := runCLI(t, "", "check", "--config", config, "a*")
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stderr, `"strategy":"UseNFA"`)
		assert.Contains(t, stderr, `"level":"debug"`)
	})

	t.Run("flag_beats_config", func(t *testing.T) {
		config := writeFile(t, "coreglob.toml", "engine = \"pikevm\"\n")
		code, _, stderr := runCLI(t, "", "check", "-v", "--config", config, "--engine", "backtrack", "a*")
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stderr, "UseBoundedBacktracker")
	})

	t.Run("bad_log_format", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "check", "--log-format", "xml", "a")
		assert.Equal(t, exitError, code)
		assert.Contains(t, stderr, "unknown log format")
	})

	t.Run("escape_any", func(t *testing.T) {
		code, out, _ := runCLI(t, `a\b`+"\nab\n", "match", "--escape-any", `a\b`)
		assert.Equal(t, exitOK, code)
		assert.Equal(t, "-:2:0-2:pattern\n", out)
	})

	t.Run("missing_config", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "check", "--config", filepath.Join(t.TempDir(), "none.toml"), "a")
		assert.Equal(t, exitError, code)
		assert.Contains(t, stderr, "failed to read config")
	})
}

func TestLoadRulesDefaultsNames(t *testing.T) {
	path := writeFile(t, "r.toml", "[[rule]]\npattern = \"a\"\n[[rule]]\nname = \"b\"\npattern = \"b\"\n")
	rules, err := loadRules(path)
	require.NoError(t, err)
	assert.Equal(t, []rule{{Name: "rule1", Pattern: "a"}, {Name: "b", Pattern: "b"}}, rules)
}
