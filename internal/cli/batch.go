package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Davincible/bsgs/internal/validation"
	"github.com/Davincible/bsgs/pkg/config"
	"github.com/Davincible/bsgs/pkg/dlog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// BatchEntry is one solved (or rejected) line of batch input
type BatchEntry struct {
	Line     int     `json:"line"`
	Alpha    string  `json:"alpha,omitempty"`
	Beta     string  `json:"beta,omitempty"`
	Modulus  string  `json:"modulus,omitempty"`
	Found    bool    `json:"found"`
	Exponent *string `json:"exponent"`
	Error    string  `json:"error,omitempty"`
}

// batchJob is a parsed input line waiting to be solved
type batchJob struct {
	line   int
	fields []string
}

func NewBatchCommand() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Solve many discrete logarithms from a file or stdin",
		Long: `Read one "alpha beta modulus" triple per line and solve each independently.

Fields may be separated by spaces, commas or semicolons. Blank lines and
'#' comments are ignored. Results are printed in input order; a bad line is
reported without stopping the rest of the batch.`,
		Example: `  # From a file with 8 workers
  bsgs batch problems.txt --workers 8

  # From stdin
  printf '5 3 7\n2 22 29\n' | bsgs batch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Defaults.Workers
			}
			if err := validation.ValidateWorkers(workers); err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open batch file: %w", err)
				}
				defer f.Close()
				in = f
			}

			jobs, err := readBatchJobs(in)
			if err != nil {
				return err
			}

			entries, err := solveBatch(cmd.Context(), jobs, workers, cfg)
			if err != nil {
				return err
			}

			if wantJSON(cmd, cfg) {
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			outputBatchText(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of problems solved concurrently")

	return cmd
}

// readBatchJobs splits input into jobs, skipping blank and comment lines
func readBatchJobs(r io.Reader) ([]batchJob, error) {
	var jobs []batchJob

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := validation.StripComment(scanner.Text())
		if text == "" {
			continue
		}
		jobs = append(jobs, batchJob{line: line, fields: validation.SplitFields(text)})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch input: %w", err)
	}

	return jobs, nil
}

// solveBatch solves every job with at most workers running at once. Each
// entry lands at its job's index, so output order matches input order.
func solveBatch(ctx context.Context, jobs []batchJob, workers int, cfg *config.Config) ([]BatchEntry, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	entries := make([]BatchEntry, len(jobs))
	solver := newSolver()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	slog.Debug("Starting batch", "jobs", len(jobs), "workers", workers)

	for i := range jobs {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = solveJob(solver, jobs[i], cfg)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}

	return entries, nil
}

func solveJob(solver *dlog.Solver, job batchJob, cfg *config.Config) BatchEntry {
	entry := BatchEntry{Line: job.line}

	if len(job.fields) != 3 {
		entry.Error = fmt.Sprintf("expected 3 fields (alpha beta modulus), got %d", len(job.fields))
		return entry
	}

	values, err := parseAll([]string{"alpha", "beta", "modulus"}, job.fields)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	alpha, beta, modulus := values[0], values[1], values[2]
	entry.Alpha, entry.Beta, entry.Modulus = alpha.String(), beta.String(), modulus.String()

	if err := checkModulus(modulus, cfg); err != nil {
		entry.Error = err.Error()
		return entry
	}

	result, err := solver.Solve(alpha, beta, modulus)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}

	entry.Found = result.Found
	entry.Exponent = exponentString(result)
	return entry
}

func outputBatchText(w io.Writer, entries []BatchEntry) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	solved, unsolvable, failed := 0, 0, 0
	for _, e := range entries {
		switch {
		case e.Error != "":
			failed++
			red.Fprintf(w, "line %d: error: %s\n", e.Line, e.Error)
		case e.Found:
			solved++
			green.Fprintf(w, "line %d: %s^%s ≡ %s (mod %s)\n", e.Line, e.Alpha, *e.Exponent, e.Beta, e.Modulus)
		default:
			unsolvable++
			yellow.Fprintf(w, "line %d: no solution for %s^x ≡ %s (mod %s)\n", e.Line, e.Alpha, e.Beta, e.Modulus)
		}
	}

	fmt.Fprintf(w, "\n%d solved, %d without solution, %d failed\n", solved, unsolvable, failed)
}
