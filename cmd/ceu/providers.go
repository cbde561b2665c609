package main

import (
	"fmt"
	"strings"

	"github.com/tasanda/ceu"
)

// Run executes the providers command.
func (c *ProvidersCmd) Run(deps *Dependencies) error {
	if c.Validate {
		return c.validate(deps)
	}

	providers := deps.Providers.List()
	if len(providers) == 0 {
		fmt.Fprintf(deps.Stdout, "No providers configured. Add YAML files under %s/providers.\n", deps.Config.Dir)
		return nil
	}

	for _, p := range providers {
		state := "active"
		if !p.Active {
			state = "inactive"
		}
		fmt.Fprintf(deps.Stdout, "%-16s %-8s %-32s %s\n", p.Name, state, p.DisplayName, p.BaseURL())
	}
	return nil
}

func (c *ProvidersCmd) validate(deps *Dependencies) error {
	names, err := deps.Config.List()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ceu.ErrorMessage(err))
		return err
	}

	var invalid []string
	for _, name := range names {
		problems := deps.Config.Validate(name)
		if len(problems) == 0 {
			fmt.Fprintf(deps.Stdout, "%s: OK\n", name)
			continue
		}
		invalid = append(invalid, name)
		fmt.Fprintf(deps.Stdout, "%s:\n", name)
		for _, p := range problems {
			fmt.Fprintf(deps.Stdout, "  - %s\n", p)
		}
	}

	if len(invalid) > 0 {
		return ceu.Errorf(ceu.EINVALID, "invalid provider configs: %s", strings.Join(invalid, ", "))
	}
	return nil
}
