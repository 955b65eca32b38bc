package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/resource-hub/internal/logging"
)

var (
	logFile       string
	caseSensitive bool
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect the application log files",
	}
	cmd.PersistentFlags().StringVarP(&logFile, "file", "f", filepath.Join("logs", logging.AppLogFile), "log file to read")

	tail := &cobra.Command{
		Use:   "tail [lines]",
		Short: "Show the last lines of the log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 20
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v <= 0 {
					return fmt.Errorf("lines must be a positive integer")
				}
				n = v
			}
			lines, err := logging.Tail(logFile, n)
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), logging.Render(l))
			}
			return nil
		},
	}

	follow := &cobra.Command{
		Use:   "follow",
		Short: "Print the last lines, then stream new ones until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := logging.Tail(logFile, 20)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range lines {
				fmt.Fprintln(out, logging.Render(l))
			}
			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", logFile)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return logging.Follow(ctx, logFile, 100*time.Millisecond, func(l logging.Line) {
				fmt.Fprintln(out, logging.Render(l))
			})
		},
	}

	filter := &cobra.Command{
		Use:   "filter <term>",
		Short: "Show lines containing a search term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := logging.Filter(logFile, args[0], caseSensitive)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range lines {
				l.Text = fmt.Sprintf("[%4d] %s", l.Number, l.Text)
				fmt.Fprintln(out, logging.Render(l))
			}
			fmt.Fprintf(out, "Found %d matching lines\n", len(lines))
			return nil
		},
	}
	filter.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match case exactly")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show line counts per level",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := logging.Stats(logFile)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), logging.RenderSummary(s))
			return nil
		},
	}

	cmd.AddCommand(tail, follow, filter, stats)
	return cmd
}
