package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persisted simulation sessions",
	Long:  `List, inspect, and remove sessions created through serve or mcp.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, closeFn, err := openManager(cmd)
		if err != nil {
			return fail("%v", err)
		}
		defer closeFn()

		sessions, err := manager.List(cmd.Context())
		if err != nil {
			return fail("listing sessions: %v", err)
		}
		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No stored sessions found.")
			return nil
		}
		fmt.Fprintln(out, "Sessions:")
		for _, s := range sessions {
			fmt.Fprintln(out, "- "+s)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Show the trace of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]
		manager, closeFn, err := openManager(cmd)
		if err != nil {
			return fail("%v", err)
		}
		defer closeFn()

		snap, err := manager.Load(cmd.Context(), sessionID)
		if err != nil {
			return fail("loading session '%s': %v", sessionID, err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fail("marshaling session: %v", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s: %s (%s) input %q, at step %d of %d\n",
			snap.SessionID, snap.Automaton, snap.Kind, snap.Input, snap.Index, len(snap.Records)-1)
		if err := tui.TraceTable(out, snap.Records); err != nil {
			return err
		}
		if snap.Verdict != nil {
			fmt.Fprintln(out, snap.Verdict.Message())
		}
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, closeFn, err := openManager(cmd)
		if err != nil {
			return fail("%v", err)
		}
		defer closeFn()

		failed := 0
		for _, sessionID := range args {
			if err := manager.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", sessionID, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", sessionID)
		}
		if failed > 0 {
			return fmt.Errorf("%d sessions could not be removed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd, sessionInspectCmd, sessionRmCmd)
	sessionInspectCmd.Flags().Bool("json", false, "Print the raw snapshot")
}
