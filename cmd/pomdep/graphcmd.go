package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pomdep "github.com/albertocavalcante/go-pomdep"
	"github.com/albertocavalcante/go-pomdep/graph"
)

var (
	graphFormat        string
	graphConfiguration string
)

var graphCmd = &cobra.Command{
	Use:   "graph group:name:version",
	Short: "Render the resolved dependency graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		universe, root, err := loadRoot(args[0])
		if err != nil {
			return err
		}

		result, err := pomdep.Resolve(cmd.Context(), universe, root,
			pomdep.WithRootConfiguration(graphConfiguration),
			pomdep.WithLogger(newLogger()),
		)
		if err != nil {
			return err
		}
		g, err := graph.Build(result)
		if err != nil {
			return err
		}

		switch graphFormat {
		case "dot":
			return g.DOT(cmd.OutOrStdout())
		case "tree":
			tree, err := g.Tree()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tree)
			return nil
		default:
			return fmt.Errorf("unknown format %q (want dot or tree)", graphFormat)
		}
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "tree", "Output format: tree or dot")
	graphCmd.Flags().StringVarP(&graphConfiguration, "configuration", "c", "compile", "Root configuration to resolve from")
}
