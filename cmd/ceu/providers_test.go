package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasanda/ceu"
	main "github.com/tasanda/ceu/cmd/ceu"
	"github.com/tasanda/ceu/config"
)

func TestProvidersCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists providers with state", func(t *testing.T) {
		t.Parallel()

		inactive := acmeProvider()
		inactive.Name = "beta"
		inactive.DisplayName = "Beta Learning"
		inactive.Active = false

		deps, stdout, _ := newDeps()
		deps.Providers = ceu.NewProviderRegistry(acmeProvider(), inactive)

		err := (&main.ProvidersCmd{}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Regexp(t, `acme\s+active\s+Acme CE\s+https://www.acme-ce.com`, out)
		assert.Regexp(t, `beta\s+inactive\s+Beta Learning`, out)
	})

	t.Run("explains how to add providers", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Config = config.NewLoader("/etc/ceu")
		deps.Providers = ceu.NewProviderRegistry()

		err := (&main.ProvidersCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "/etc/ceu/providers")
	})

	t.Run("validates every provider file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		providers := filepath.Join(dir, "providers")
		require.NoError(t, os.MkdirAll(providers, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(providers, "good.yaml"), []byte(`
domains:
  - base_url: https://good.example.com
crawl:
  start_urls: ["https://good.example.com/courses"]
`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(providers, "bad.yaml"), []byte("active: true\n"), 0o644))

		deps, stdout, _ := newDeps()
		deps.Config = config.NewLoader(dir)

		err := (&main.ProvidersCmd{Validate: true}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, ceu.EINVALID, ceu.ErrorCode(err))
		out := stdout.String()
		assert.Contains(t, out, "good: OK")
		assert.Contains(t, out, "bad:\n  - Missing required field: crawl.start_urls")
	})
}
