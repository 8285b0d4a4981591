package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/roasbeef/actorcore/actor"
	"github.com/roasbeef/actorcore/examples/counter"
	"github.com/roasbeef/actorcore/worker"
	"github.com/spf13/cobra"
)

var (
	counterSteps int
	counterBy    int
)

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Spawn a counter actor, increment it, and print its final value",
	RunE:  runCounter,
}

func init() {
	counterCmd.Flags().IntVar(&counterSteps, "steps", 5,
		"Number of Increment calls to send")
	counterCmd.Flags().IntVar(&counterBy, "by", 1,
		"Amount to increment by on each step")
}

func runCounter(cmd *cobra.Command, args []string) error {
	sys := worker.NewSystem(worker.SystemConfig{ID: "actorctl", Size: workerCount})
	defer sys.Shutdown(0)

	ctx := context.Background()

	a := counter.New()
	addr := actor.StartLocal[counter.Actor, int, error](sys.Next(), a, a)
	defer addr.Close()

	for i := 0; i < counterSteps; i++ {
		callCtx, cancel := context.WithTimeout(ctx, time.Second)
		result := addr.Call(counter.Increment{By: counterBy}).Await(callCtx)
		cancel()

		switch {
		case result.IsOK():
			fmt.Fprintf(cmd.OutOrStdout(), "step %d: value=%d\n", i+1, result.Item())
		case result.IsHandlerErr():
			return fmt.Errorf("increment failed: %w", result.HandlerErr())
		default:
			return fmt.Errorf("increment cancelled")
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	final := addr.Call(counter.GetValue{}).Await(callCtx)
	if !final.IsOK() {
		return fmt.Errorf("final read did not complete")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "final value: %d\n", final.Item())

	return nil
}
