package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tasanda/ceu"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	var html, url string
	switch {
	case c.HTMLFile != "":
		data, err := os.ReadFile(c.HTMLFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		html, url = string(data), c.URL
	case c.URL != "":
		result, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
			return err
		}
		html, url = result.HTML, result.URL
	default:
		err := ceu.Errorf(ceu.EINVALID, "either --html-file or --url is required")
		fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
		return err
	}

	result := deps.Processor.Process(deps.Ctx, html, url, c.Provider)

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
