package main

import (
	"fmt"

	"github.com/coregx/coreglob"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check PATTERN...",
		Short: "Compile patterns and report the invalid ones",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runCheck,
	}
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	config, err := a.globConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, pattern := range args {
		p, err := coreglob.CompileWithConfig(pattern, config)
		if err != nil {
			invalid++
			fmt.Fprintf(out, "invalid\t%s\t%v\n", pattern, err)
			continue
		}
		a.log.WithFields(log.Fields{
			"pattern":  pattern,
			"strategy": p.Strategy(),
		}).Debug("compiled")
		fmt.Fprintf(out, "ok\t%s\t%d groups\n", pattern, p.NumGroups())
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d patterns are invalid", invalid, len(args))
	}
	return nil
}
