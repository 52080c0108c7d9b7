package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available automata",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return fail("loading definitions: %v", err)
		}
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header([]string{"Name", "Kind", "States", "Transitions"})
		for _, def := range reg.Definitions() {
			row := []string{def.Name, string(def.Kind), fmt.Sprint(len(def.States)), fmt.Sprint(len(def.Transitions))}
			if err := table.Append(row); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show the description and transition table of an automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return fail("loading definitions: %v", err)
		}
		def, err := reg.Get(args[0])
		if err != nil {
			return fail("%v", err)
		}
		return cli.Describe(def, cmd.OutOrStdout())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check every definition in a directory",
	Long:  `Loads every definition and reports all configuration errors at once.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("defs")
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			return fail("no definitions directory given")
		}
		reg, err := cli.OpenRegistry(cmd.Context(), dir)
		if err != nil {
			return fail("validation failed:\n%v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d definitions are valid ✅\n", len(reg.Names()))
		return nil
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph <name>",
	Short: "Export an automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the automaton. With --session, the
states reached by a stored session are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return fail("loading definitions: %v", err)
		}
		def, err := reg.Get(args[0])
		if err != nil {
			return fail("%v", err)
		}

		var overlay *graph.Overlay
		if id, _ := cmd.Flags().GetString("session"); id != "" {
			manager, closeFn, err := openManager(cmd)
			if err != nil {
				return fail("%v", err)
			}
			defer closeFn()
			snap, err := manager.Load(cmd.Context(), id)
			if err != nil {
				return fail("loading session '%s': %v", id, err)
			}
			overlay = graph.OverlayFromTrace(snap.Records, snap.Index)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(def, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, describeCmd, validateCmd, graphCmd)
	graphCmd.Flags().String("session", "", "Highlight the states reached by this stored session")
}
