package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// stdinName stands for standard input in FILE arguments and in output.
const stdinName = "-"

// maxLineSize bounds a single input line.
const maxLineSize = 64 * 1024 * 1024

// matchRecord is one line of --json output.
type matchRecord struct {
	File   string   `json:"file"`
	Line   int      `json:"line"`
	Rule   string   `json:"rule"`
	Begin  int      `json:"begin"`
	End    int      `json:"end"`
	Groups []string `json:"groups"`
}

func (a *app) matchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [PATTERN] [FILE...]",
		Short: "Print the first match of each pattern on every input line",
		Long: `Print the first match of each pattern on every input line.

Without --rules the first argument is the pattern, named "pattern" in the
output. With --rules every argument is a file. Standard input is read when no
file is given or a file is "-".

Text output is FILE:LINE:BEGIN-END:RULE followed by the quoted groups.`,
		RunE: a.runMatch,
	}
	cmd.Flags().Bool("json", false, "print one JSON object per match")
	cmd.Flags().String("rules", "", "TOML file of named patterns")
	a.bindFlags(cmd, "json", "rules")
	return cmd
}

func (a *app) runMatch(cmd *cobra.Command, args []string) error {
	config, err := a.globConfig()
	if err != nil {
		return err
	}

	var rules []rule
	if path := a.v.GetString("rules"); path != "" {
		if rules, err = loadRules(path); err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			return fmt.Errorf("match needs a PATTERN or --rules")
		}
		rules = []rule{{Name: "pattern", Pattern: args[0]}}
		args = args[1:]
	}

	compiled, err := compileRules(rules, config)
	if err != nil {
		return err
	}
	for _, r := range compiled {
		a.log.WithFields(log.Fields{
			"rule":     r.name,
			"pattern":  r.pattern.String(),
			"strategy": r.pattern.Strategy(),
			"groups":   r.pattern.NumGroups(),
		}).Debug("compiled")
	}

	files := args
	if len(files) == 0 {
		files = []string{stdinName}
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	total := 0
	for _, name := range files {
		n, err := a.matchFile(out, name, compiled)
		if err != nil {
			return err
		}
		total += n
	}

	for _, r := range compiled {
		a.log.WithFields(log.Fields{
			"rule":  r.name,
			"stats": fmt.Sprintf("%+v", r.pattern.Stats()),
		}).Debug("done")
	}

	if err := out.Flush(); err != nil {
		return err
	}
	if total == 0 {
		return errNoMatch
	}
	return nil
}

// matchFile searches every line of one input and returns the match count.
func (a *app) matchFile(w io.Writer, name string, rules []compiledRule) (int, error) {
	var r io.Reader
	if name == stdinName {
		r = a.stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		r = f
	}

	jsonOut := a.v.GetBool("json")
	enc := json.NewEncoder(w)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	count := 0
	for line := 1; sc.Scan(); line++ {
		text := sc.Bytes()
		for _, rule := range rules {
			m := rule.pattern.FirstMatchBytes(text)
			if m == nil {
				continue
			}
			count++
			a.log.WithFields(log.Fields{
				"rule": rule.name,
				"file": name,
				"line": line,
			}).Debug("match")

			if jsonOut {
				if err := enc.Encode(matchRecord{
					File:   name,
					Line:   line,
					Rule:   rule.name,
					Begin:  m.BeginByteIndex,
					End:    m.EndByteIndex,
					Groups: m.Groups,
				}); err != nil {
					return count, err
				}
				continue
			}
			fmt.Fprintf(w, "%s:%d:%d-%d:%s", name, line, m.BeginByteIndex, m.EndByteIndex, rule.name)
			for _, g := range m.Groups {
				fmt.Fprintf(w, " %q", g)
			}
			fmt.Fprintln(w)
		}
	}
	if err := sc.Err(); err != nil {
		return count, fmt.Errorf("%s: %w", name, err)
	}
	return count, nil
}
