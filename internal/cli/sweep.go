package cli

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dungeonforge/pkg/asset"
	"github.com/matzehuels/dungeonforge/pkg/cache"
	"github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// sweepFlags holds options for the sweep command.
type sweepFlags struct {
	gen     genFlags
	seeds   int
	workers int
}

// sweepReport aggregates the outcome of one sweep.
type sweepReport struct {
	Seeds       int
	Succeeded   int
	Attempts    int // summed over successful seeds
	MaxAttempts int
	Graphs      map[string]int // successful layouts per graph
	Failures    map[string]int // failed seeds per error code
	Elapsed     time.Duration
}

// Rate returns the share of seeds that produced a layout.
func (r sweepReport) Rate() float64 {
	if r.Seeds == 0 {
		return 0
	}
	return float64(r.Succeeded) / float64(r.Seeds)
}

// sweepCommand creates the sweep command.
func (c *CLI) sweepCommand() *cobra.Command {
	var f sweepFlags

	cmd := &cobra.Command{
		Use:   "sweep [level]",
		Short: "Generate many seeds in parallel and report the success rate",
		Long: `Sweep generates the level once per seed, starting at --seed, and reports
how many seeds produced a layout, how many attempts they took and which
graphs were picked. Nothing is cached or written.`,
		Example: `  dungeonforge sweep --seeds 500
  dungeonforge sweep --seeds 50 --inner 100 examples/levels/catacombs.yaml`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeLevelFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			path, err := levelPath(cfg, args)
			if err != nil {
				return err
			}
			if f.seeds < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--seeds must be at least 1")
			}
			lvl, err := asset.ReadFile(path)
			if err != nil {
				return err
			}

			opts := f.gen.options(cfg)
			opts.LevelPath = path
			opts.Level = lvl
			runner := pipeline.NewRunner(cache.NewNullCache(), nil, quietLogger())

			spin := newSpinner(cmd.Context(), fmt.Sprintf("Sweeping %d seeds...", f.seeds))
			spin.Start()
			report, err := runSweep(cmd.Context(), runner, opts, f.seeds, f.workers, func(done int) {
				spin.Update(fmt.Sprintf("Sweeping %d/%d seeds...", done, f.seeds))
			})
			spin.Stop()
			if err != nil {
				return err
			}
			c.Logger.Info("sweep done", "level", opts.LevelName(), "seeds", report.Seeds, "took", report.Elapsed.Round(time.Millisecond))

			printSweep(opts.LevelName(), opts.Seed, report)
			return nil
		},
	}

	f.gen.register(cmd)
	cmd.Flags().IntVar(&f.seeds, "seeds", 100, "number of consecutive seeds to try")
	cmd.Flags().IntVar(&f.workers, "workers", runtime.NumCPU(), "parallel generations")

	return cmd
}

// runSweep generates seeds base.Seed .. base.Seed+n-1. Failed generations
// are counted, not returned; only cancellation aborts the sweep. progress,
// if set, is called with the number of finished seeds.
func runSweep(ctx context.Context, runner *pipeline.Runner, base pipeline.Options, n, workers int, progress func(done int)) (sweepReport, error) {
	if err := base.ValidateForGenerate(); err != nil {
		return sweepReport{}, err
	}
	if workers < 1 {
		workers = 1
	}

	report := sweepReport{
		Seeds:    n,
		Graphs:   make(map[string]int),
		Failures: make(map[string]int),
	}
	var mu sync.Mutex
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		opts := base
		opts.Seed = base.Seed + uint64(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := runner.Generate(gctx, opts.Level, opts)

			mu.Lock()
			defer mu.Unlock()
			if progress != nil {
				defer func() { progress(report.Succeeded + failed(report)) }()
			}
			if err != nil {
				code := string(errors.GetCode(err))
				if code == "" {
					code = "OTHER"
				}
				report.Failures[code]++
				return nil
			}
			report.Succeeded++
			report.Attempts += result.Stats.Attempts
			report.MaxAttempts = max(report.MaxAttempts, result.Stats.Attempts)
			report.Graphs[result.Stats.GraphID]++
			return nil
		})
	}
	err := g.Wait()
	report.Elapsed = time.Since(start)
	return report, err
}

func printSweep(name string, from uint64, r sweepReport) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	newTable := func(headers ...string) *table.Table {
		return table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers(headers...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle.Padding(0, 1)
				}
				return cell
			})
	}

	avg := "-"
	if r.Succeeded > 0 {
		avg = fmt.Sprintf("%.1f", float64(r.Attempts)/float64(r.Succeeded))
	}
	summary := newTable("Seeds", "Succeeded", "Rate", "Attempts (avg)", "Attempts (max)", "Time").
		Row(
			fmt.Sprintf("%d..%d", from, from+uint64(r.Seeds)-1),
			strconv.Itoa(r.Succeeded),
			fmt.Sprintf("%.1f%%", 100*r.Rate()),
			avg,
			strconv.Itoa(r.MaxAttempts),
			r.Elapsed.Round(time.Millisecond).String(),
		)

	fmt.Fprintln(stdout, StyleTitle.Render("Sweep "+name))
	fmt.Fprintln(stdout, summary.Render())

	if len(r.Graphs) > 0 {
		graphs := newTable("Graph", "Layouts")
		for _, id := range sortedKeys(r.Graphs) {
			graphs.Row(id, strconv.Itoa(r.Graphs[id]))
		}
		fmt.Fprintln(stdout, graphs.Render())
	}
	if len(r.Failures) > 0 {
		failures := newTable("Failure", "Seeds")
		for _, code := range sortedKeys(r.Failures) {
			failures.Row(code, strconv.Itoa(r.Failures[code]))
		}
		fmt.Fprintln(stdout, failures.Render())
	}

	switch {
	case r.Succeeded == r.Seeds:
		printSuccess("Every seed produced a layout")
	case r.Succeeded == 0:
		printError("No seed produced a layout")
		printNextStep("Check the level", "dungeonforge validate")
	default:
		printWarning("%d of %d seeds failed", r.Seeds-r.Succeeded, r.Seeds)
	}
}

func failed(r sweepReport) int {
	n := 0
	for _, c := range r.Failures {
		n += c
	}
	return n
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
