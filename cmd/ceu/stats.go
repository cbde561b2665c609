package main

import (
	"fmt"

	"github.com/tasanda/ceu"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	sections := []struct {
		title string
		by    ceu.CountDimension
	}{
		{"Pages by status", ceu.CountByStatus},
		{"Pages by provider", ceu.CountByProvider},
		{"Pages by type", ceu.CountByPageType},
	}

	for i, s := range sections {
		counts, err := deps.RawPages.CountRawPages(deps.Ctx, s.by)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
			return err
		}
		if i == 0 && len(counts) == 0 {
			fmt.Fprintln(deps.Stdout, "No pages stored. Use 'ceu crawl' to collect some.")
			return nil
		}
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprint(deps.Stdout, ceu.FormatCounts(s.title, counts))
	}
	return nil
}

// Run executes the failed command.
func (c *FailedCmd) Run(deps *Dependencies) error {
	status := ceu.StatusFailed
	pages, err := deps.RawPages.FindRawPages(deps.Ctx, ceu.RawPageFilter{
		Status:   &status,
		OmitHTML: true,
		Limit:    c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No failed pages.")
		return nil
	}

	for _, p := range pages {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.ID, p.Provider, p.URL)
		if p.ProcessingError != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", p.ProcessingError)
		}
	}
	return nil
}
