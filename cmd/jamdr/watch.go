package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jamdr/jamdr/internal/watch"
)

// watchAndRender re-renders changed inputs until ctx is cancelled.
func watchAndRender(ctx context.Context, job *renderJob, paths []string) error {
	if !job.stdout {
		fmt.Fprintf(job.env.Stderr, "Watching %d file(s), press Ctrl+C to stop\n", len(paths))
	}
	err := watch.Files(ctx, paths, watch.DefaultDebounce, func(changed []string) {
		if err := job.run(ctx, changed); err != nil && !errors.Is(err, ErrRenderFailed) {
			fmt.Fprintf(job.env.Stderr, "error: %v%s\n", err, hintFor(err))
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
