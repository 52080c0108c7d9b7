package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <name> [input]",
	Short: "Step through a simulation interactively",
	Long: `Starts a simulation and reads commands from stdin:

` + runner.HelpText + `

When stdin is not a terminal the prompt and colors are dropped (headless).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return fail("loading definitions: %v", err)
		}
		def, err := reg.Get(args[0])
		if err != nil {
			return fail("%v", err)
		}

		input := ""
		if len(args) > 1 {
			input = args[1]
		}
		cyclic, _ := cmd.Flags().GetBool("cyclic")
		headless, _ := cmd.Flags().GetBool("headless")
		debug, _ := cmd.Flags().GetBool("debug")

		opts := cli.RunOptions{
			Input:    input,
			Cyclic:   cyclic,
			Headless: headless || !runner.IsInteractive(os.Stdin),
			Debug:    debug,
			MaxSteps: maxSteps(cmd),
			Version:  automata.Version,
		}
		if err := cli.RunInteractive(cmd.Context(), def, opts, cmd.InOrStdin(), cmd.OutOrStdout(), cli.NewLogger(debug)); err != nil {
			return fail("%v", err)
		}
		return nil
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace <name> <input>",
	Short: "Run a simulation to its verdict and print every step",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return fail("loading definitions: %v", err)
		}
		def, err := reg.Get(args[0])
		if err != nil {
			return fail("%v", err)
		}
		cyclic, _ := cmd.Flags().GetBool("cyclic")
		asJSON, _ := cmd.Flags().GetBool("json")

		err = cli.Trace(cmd.Context(), def, args[1], cyclic, maxSteps(cmd), asJSON, cmd.OutOrStdout())
		if errors.Is(err, domain.ErrStepLimit) {
			return fail("stopped after %d steps without a verdict", maxSteps(cmd))
		}
		if err != nil {
			return fail("%v", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of automata",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "automata version %s\n", automata.Version)
	},
}

func init() {
	rootCmd.AddCommand(runCmd, traceCmd, versionCmd)

	runCmd.Flags().Bool("cyclic", false, "Repeat the input forever (nfa only)")
	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompt, banner or colors)")
	traceCmd.Flags().Bool("cyclic", false, "Repeat the input (nfa only, bounded by --max-steps)")
	traceCmd.Flags().Bool("json", false, "Print the trace as JSON")
}
