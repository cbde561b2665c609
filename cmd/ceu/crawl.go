package main

import (
	"fmt"
	"sort"

	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/crawl"
)

// urlDisplayWidth bounds URLs printed in progress lines.
const urlDisplayWidth = 80

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	p, err := deps.Providers.Get(c.Provider)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
		fmt.Fprintln(deps.Stderr, "Hint: Run 'ceu providers' to list configured providers")
		return err
	}
	if !p.Active {
		fmt.Fprintf(deps.Stderr, "warning: provider %q is inactive\n", p.Name)
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %s (%s)\n", p.DisplayName, p.BaseURL())
		case crawl.ProgressCompleted:
			if c.Verbose {
				fmt.Fprintf(deps.Stdout, "  [%s] %s\n", event.PageType, crawl.TruncateURL(event.URL, urlDisplayWidth))
			}
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", crawl.TruncateURL(event.URL, urlDisplayWidth), event.Error)
		case crawl.ProgressBlocked:
			fmt.Fprintf(deps.Stderr, "  robots.txt disallows %s\n", crawl.TruncateURL(event.URL, urlDisplayWidth))
		}
	}

	opts := crawl.Options{MaxPages: c.MaxPages, DryRun: c.DryRun}
	result, err := deps.Crawler.Crawl(deps.Ctx, p, opts, progress)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "  %s\n", crawl.FormatResult(result))
		printPageTypes(deps, result.ByType)
		if c.DryRun {
			fmt.Fprintln(deps.Stdout, "  Dry run: nothing stored")
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", ceu.ErrorMessage(err))
		return err
	}
	return nil
}

func printPageTypes(deps *Dependencies, byType map[ceu.PageType]int) {
	types := make([]string, 0, len(byType))
	for pt := range byType {
		types = append(types, string(pt))
	}
	sort.Strings(types)
	for _, pt := range types {
		fmt.Fprintf(deps.Stdout, "    %-14s %d\n", pt+":", byType[ceu.PageType(pt)])
	}
}
