package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"receiving-manager/core/config"
	"receiving-manager/core/logger"
	"receiving-manager/core/reconcile"
	"receiving-manager/feature/receiving"

	"github.com/spf13/cobra"
)

var (
	// Flags for the scan command
	scanDryRun bool
	scanYes    bool
)

// scanCmd runs an interactive receiving session in the terminal.
var scanCmd = &cobra.Command{
	Use:   "scan <document>",
	Short: "Receive a document interactively from a scanner or keyboard",
	Long: `Opens a receiving session for the document and reads one pack label per line.

Commands:
  :totals          print the running totals
  :short           list lines that are short or over
  :reset           clear all scans
  :export <file>   write the XLSX report
  :finalize        persist the document once it is reconciled
  :quit            leave without finalizing

Examples:
  # Receive a purchase order
  scan PO-1001

  # Check the finalize gate without writing anything
  scan PO-1001 --dry-run

  # Finalize without the confirmation prompt
  scan PO-1001 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "Check the finalize gate without persisting")
	scanCmd.Flags().BoolVar(&scanYes, "yes", false, "Auto-confirm finalize (non-interactive)")

	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	b, err := openBackends(cfg, l)
	if err != nil {
		return err
	}

	t := &scanTerminal{
		svc:      receiving.NewService(b.sources, cfg.Reconcile.Options(), l),
		document: args[0],
		in:       bufio.NewScanner(cmd.InOrStdin()),
		out:      cmd.OutOrStdout(),
		dryRun:   scanDryRun,
		yes:      scanYes,
	}
	return t.run(ctx)
}

// scanTerminal reads pack labels and commands line by line.
type scanTerminal struct {
	svc      *receiving.Service
	document string
	in       *bufio.Scanner
	out      io.Writer
	dryRun   bool
	yes      bool
}

func (t *scanTerminal) run(ctx context.Context) error {
	sum, err := t.svc.Open(ctx, t.document)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", t.document, err)
	}
	t.document = sum.DocumentID

	fmt.Fprintf(t.out, "Receiving %s: %d lines, %d units expected\n", sum.DocumentID, sum.Totals.LineCount, sum.Totals.TotalExpected)
	fmt.Fprintln(t.out, "Scan a pack label, or type :help")
	t.prompt()

	for t.in.Scan() {
		input := strings.TrimSpace(t.in.Text())

		switch {
		case input == "":
		case strings.HasPrefix(input, ":"):
			done, err := t.command(ctx, input)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		default:
			t.scan(ctx, input)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		t.prompt()
	}
	return t.in.Err()
}

func (t *scanTerminal) prompt() {
	fmt.Fprint(t.out, "> ")
}

func (t *scanTerminal) scan(ctx context.Context, label string) {
	res, err := t.svc.Scan(ctx, t.document, label)
	if err != nil {
		fmt.Fprintf(t.out, "✗ %v\n", err)
		return
	}

	switch res.Outcome {
	case reconcile.OutcomeNoMatch:
		fmt.Fprintf(t.out, "✗ %s matched no manifest line, it can be scanned again\n", res.Label)
		return
	case reconcile.OutcomePartiallyMatched:
		fmt.Fprintf(t.out, "⚠️  %s partially matched: %d lines credited, %d contents unmatched\n", res.Label, len(res.MatchedLineKeys), res.Unmatched)
	default:
		fmt.Fprintf(t.out, "✓ %s matched %d lines\n", res.Label, len(res.MatchedLineKeys))
	}
	t.totals()
}

// command runs a ':' command. It reports done when the session should end.
func (t *scanTerminal) command(ctx context.Context, input string) (bool, error) {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":totals":
		t.totals()
	case ":short":
		t.short()
	case ":reset":
		if _, err := t.svc.Reset(t.document); err != nil {
			return false, err
		}
		fmt.Fprintln(t.out, "All scans cleared")
		t.totals()
	case ":export":
		if len(fields) < 2 {
			fmt.Fprintln(t.out, "Usage: :export <file>")
			return false, nil
		}
		t.export(fields[1])
	case ":finalize":
		return t.finalize(ctx)
	case ":quit", ":q":
		fmt.Fprintln(t.out, "Leaving without finalizing")
		return true, nil
	case ":help":
		fmt.Fprintln(t.out, "Commands: :totals :short :reset :export <file> :finalize :quit")
	default:
		fmt.Fprintf(t.out, "Unknown command %s, type :help\n", fields[0])
	}
	return false, nil
}

func (t *scanTerminal) totals() {
	sum, err := t.svc.Summary(t.document)
	if err != nil {
		fmt.Fprintf(t.out, "✗ %v\n", err)
		return
	}
	tot := sum.Totals
	fmt.Fprintf(t.out, "  expected %d, observed %d, matched lines %d/%d, discrepancy %d\n",
		tot.TotalExpected, tot.TotalObserved, tot.MatchedCount, tot.LineCount, tot.AggregateDiscrepancy)
	if sum.CanFinalize {
		fmt.Fprintln(t.out, "  ready to finalize")
	}
}

func (t *scanTerminal) short() {
	sum, err := t.svc.Summary(t.document)
	if err != nil {
		fmt.Fprintf(t.out, "✗ %v\n", err)
		return
	}

	n := 0
	for _, l := range sum.Lines {
		if l.Discrepancy == 0 {
			continue
		}
		n++
		fmt.Fprintf(t.out, "  %-12s %-24s expected %d observed %d (%s %d)\n",
			l.Key, l.MatchKey().String(), l.Expected, l.Observed, l.Status, abs(l.Discrepancy))
	}
	if n == 0 {
		fmt.Fprintln(t.out, "  no discrepancies")
	}
}

func (t *scanTerminal) export(path string) {
	data, err := t.svc.Report(t.document)
	if err != nil {
		fmt.Fprintf(t.out, "✗ %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(t.out, "✗ failed to write %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(t.out, "Report written to %s\n", path)
}

func (t *scanTerminal) finalize(ctx context.Context) (bool, error) {
	// Check the gate before asking for confirmation
	_, err := t.svc.Finalize(ctx, t.document, true)
	if errors.Is(err, reconcile.ErrNotFinalizable) {
		fmt.Fprintf(t.out, "✗ %v\n", err)
		t.short()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if t.dryRun {
		fmt.Fprintln(t.out, "Dry-run mode: the document can be finalized, no changes were made")
		return false, nil
	}

	if !t.confirm() {
		fmt.Fprintln(t.out, "Finalize cancelled")
		return false, nil
	}

	res, err := t.svc.Finalize(ctx, t.document, false)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(t.out, "✓ %s finalized (%s)\n", res.DocumentID, strings.Join(res.Finalizers, ", "))
	return true, nil
}

// confirm prompts on the session input unless --yes was given.
func (t *scanTerminal) confirm() bool {
	if t.yes {
		fmt.Fprintln(t.out, "✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(t.out, "Type 'yes' to finalize: ")
	if !t.in.Scan() {
		return false
	}
	return strings.TrimSpace(t.in.Text()) == "yes"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
