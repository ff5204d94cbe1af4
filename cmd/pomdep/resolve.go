package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pomdep "github.com/albertocavalcante/go-pomdep"
)

var (
	resolveConfiguration string
	resolveScopes        string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve group:name:version",
	Short: "Resolve a component's dependencies and print the module set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		universe, root, err := loadRoot(args[0])
		if err != nil {
			return err
		}
		scopes, err := parseScopes(resolveScopes)
		if err != nil {
			return err
		}

		result, err := pomdep.Resolve(cmd.Context(), universe, root,
			pomdep.WithRootConfiguration(resolveConfiguration),
			pomdep.WithIncludedScopes(scopes...),
			pomdep.WithLogger(newLogger()),
		)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", result.Root, resolveConfiguration)
		for _, m := range result.Modules {
			fmt.Fprintf(out, "  %-50s  [%s]\n", m.ID, strings.Join(m.Configurations, ", "))
			for _, a := range m.Artifacts {
				fmt.Fprintf(out, "      %s\n", a)
			}
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		fmt.Fprintf(out, "%d modules, %d conflicts, %d excluded edges\n",
			result.Summary.TotalModules, result.Summary.Conflicts, result.Summary.ExcludedEdges)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveConfiguration, "configuration", "c", "compile", "Root configuration to resolve from")
	resolveCmd.Flags().StringVarP(&resolveScopes, "scopes", "s", "compile,runtime", "Comma-separated scopes to include")
}
