// internal/commands/validate.go
package benchmatrix

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"github.com/mwiater/benchmatrix/internal/probe"
)

// maxParallelChecks bounds how many environment checks run at once; the
// network-touching checks would otherwise contend with each other.
const maxParallelChecks = 3

var validateTimeout = 10 * time.Second

// validateCmd verifies that every registered probe can run in the current
// environment.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every registered probe can run in this environment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		type checkResult struct {
			name string
			err  error
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), validateTimeout)
		defer cancel()

		sem := semaphore.NewWeighted(maxParallelChecks)
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			results []checkResult
		)
		for _, p := range probe.All() {
			wg.Add(1)
			go func(p probe.Probe) {
				defer wg.Done()
				if err := sem.Acquire(ctx, 1); err != nil {
					mu.Lock()
					results = append(results, checkResult{p.Name(), err})
					mu.Unlock()
					return
				}
				defer sem.Release(1)

				err := p.Check(ctx)
				mu.Lock()
				results = append(results, checkResult{p.Name(), err})
				mu.Unlock()
			}(p)
		}
		wg.Wait()

		sort.Slice(results, func(i, j int) bool { return results[i].name < results[j].name })
		failed := 0
		for _, result := range results {
			if result.err != nil {
				failed++
				color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "✗ %-20s %v\n", result.name, result.err)
				continue
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %-20s ok\n", result.name)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d probes failed validation", failed, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
