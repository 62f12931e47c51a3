package main

import (
	"github.com/coregx/coreglob/codegen"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) genCommand() *cobra.Command {
	var opts codegen.Options
	var output string

	cmd := &cobra.Command{
		Use:   "gen PATTERN",
		Short: "Generate a Go matcher specialized to PATTERN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Pattern = args[0]
			opts.EscapeAny = a.v.GetBool("escape-any")

			if output != "" {
				if err := codegen.WriteFile(opts, output); err != nil {
					return err
				}
				a.log.WithFields(log.Fields{
					"name": opts.Name,
					"file": output,
				}).Info("generated")
				return nil
			}

			src, err := codegen.Generate(opts)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(src)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "prefix of the generated identifiers")
	cmd.Flags().StringVar(&opts.Package, "package", "main", "package name of the generated file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: standard output)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		panic(err)
	}
	return cmd
}
