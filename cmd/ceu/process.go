package main

import (
	"fmt"

	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/process"
)

// Run executes the process command.
func (c *ProcessCmd) Run(deps *Dependencies) error {
	if c.Concurrency > 0 {
		deps.Runner.Concurrency = c.Concurrency
	}

	progress := func(event process.ProgressEvent) {
		if event.Outcome == process.OutcomeFailed {
			fmt.Fprintf(deps.Stderr, "  [%d/%d] fail %s: %s\n", event.Completed, event.Total, event.URL, event.Error)
		}
	}

	stats, err := deps.Runner.ProcessPending(deps.Ctx, process.Options{
		Limit:    c.Limit,
		Provider: c.Provider,
	}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
		return err
	}

	if stats.Processed == 0 {
		fmt.Fprintln(deps.Stdout, "No pending pages. Use 'ceu crawl' to collect some.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Processed %d pages: %d successful, %d failed, %d skipped\n",
		stats.Processed, stats.Successful, stats.Failed, stats.Skipped)
	fmt.Fprintf(deps.Stdout, "  Courses: %d created, %d updated\n", stats.Created, stats.Updated)
	return nil
}

// Run executes the reprocess command.
func (c *ReprocessCmd) Run(deps *Dependencies) error {
	outcome, err := deps.Runner.Reprocess(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Reprocessed %s: %s\n", c.ID, outcome)
	if outcome == process.OutcomeFailed {
		page, err := deps.RawPages.FindRawPageByID(deps.Ctx, c.ID)
		if err == nil && page.ProcessingError != "" {
			fmt.Fprintf(deps.Stdout, "  error: %s\n", page.ProcessingError)
		}
	}
	return nil
}
