package main

import (
	"fmt"
	"strings"

	"github.com/tasanda/ceu"
	"gopkg.in/yaml.v3"
)

// maxListed bounds each list printed by explore.
const maxListed = 20

// Run executes the explore command.
func (c *ExploreCmd) Run(deps *Dependencies) error {
	page, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
		return err
	}

	if c.Suggest != "" {
		return c.suggest(deps, page)
	}

	analysis, err := deps.Analyzer.Analyze(page.HTML, page.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
		return err
	}
	printAnalysis(deps, analysis)

	if c.Content {
		preview, err := deps.Previewer.Preview(page.HTML)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "\n--- %s ---\n\n%s\n", preview.Title, preview.Markdown)
	}
	return nil
}

func (c *ExploreCmd) suggest(deps *Dependencies, page *ceu.FetchResult) error {
	p, err := deps.Analyzer.SuggestProvider(page.HTML, page.URL, c.Suggest)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
		return err
	}

	out, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode provider config: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "# Save as providers/%s.yaml and review the patterns.\n", p.Name)
	_, err = deps.Stdout.Write(out)
	return err
}

func printAnalysis(deps *Dependencies, a *ceu.PageAnalysis) {
	w := deps.Stdout
	fmt.Fprintf(w, "URL:    %s\n", a.URL)
	fmt.Fprintf(w, "Title:  %s\n", a.Title)
	fmt.Fprintf(w, "Links:  %d (%d internal, %d external)\n", a.LinkCount, len(a.InternalLinks), len(a.ExternalLinks))
	fmt.Fprintf(w, "Forms:  %d  Images: %d\n", a.Forms, a.Images)

	for _, level := range []string{"h1", "h2", "h3"} {
		if hs := a.Headings[level]; len(hs) > 0 {
			fmt.Fprintf(w, "%s:     %s\n", strings.ToUpper(level), strings.Join(hs, " | "))
		}
	}

	if len(a.Selectors) > 0 {
		fmt.Fprintln(w, "\nMatching course selectors:")
		for _, s := range a.Selectors {
			fmt.Fprintf(w, "  %-40s %d\n", s.Selector, s.Count)
		}
	}

	if len(a.CourseCandidates) > 0 {
		fmt.Fprintf(w, "\nCourse candidates (%d):\n", len(a.CourseCandidates))
		for _, u := range a.CourseCandidates[:min(len(a.CourseCandidates), maxListed)] {
			fmt.Fprintf(w, "  %s\n", u)
		}
	}

	if len(a.CSSClasses) > 0 {
		fmt.Fprintf(w, "\nFrequent classes: %s\n", strings.Join(a.CSSClasses[:min(len(a.CSSClasses), maxListed)], ", "))
	}
}
