// Package config loads provider configurations from YAML files.
//
// Providers live in <dir>/providers/<name>.yaml. Files whose name starts
// with an underscore are templates and are ignored. String values may
// reference environment variables as ${VAR} or ${VAR:-default}.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tasanda/ceu"
	"gopkg.in/yaml.v3"
)

const providersDir = "providers"

var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// Loader reads provider configurations from a config directory.
type Loader struct {
	Dir string

	// LookupEnv resolves ${VAR} references. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	validate *validator.Validate
}

// NewLoader returns a Loader for the config directory dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir, validate: newValidator()}
}

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadProvider reads and parses the named provider configuration.
// Returns ENOTFOUND if the file does not exist and EINVALID if it does not
// parse.
func (l *Loader) LoadProvider(name string) (*ceu.Provider, error) {
	path := filepath.Join(l.Dir, providersDir, name+".yaml")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ceu.Errorf(ceu.ENOTFOUND, "provider config file not found: %s.yaml", name)
	} else if err != nil {
		return nil, fmt.Errorf("read provider config: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, ceu.Errorf(ceu.EINVALID, "parse %s.yaml: %v", name, err)
	}
	l.interpolate(&root)

	p := ceu.NewProvider(name)
	if len(root.Content) > 0 {
		if err := root.Decode(p); err != nil {
			return nil, ceu.Errorf(ceu.EINVALID, "parse %s.yaml: %v", name, err)
		}
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}

// LoadAll loads every provider configuration, sorted by name. Providers
// that fail to load are left out and their errors joined into the returned
// error, so callers can use the providers that did load.
func (l *Loader) LoadAll(activeOnly bool) ([]*ceu.Provider, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}

	var (
		providers []*ceu.Provider
		errs      []error
	)
	for _, name := range names {
		p, err := l.LoadProvider(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if activeOnly && !p.Active {
			continue
		}
		providers = append(providers, p)
	}
	return providers, errors.Join(errs...)
}

// Registry loads every provider, active or not, into a registry.
func (l *Loader) Registry() (*ceu.ProviderRegistry, error) {
	providers, err := l.LoadAll(false)
	return ceu.NewProviderRegistry(providers...), err
}

// List returns the names of the configured providers, sorted. A missing
// providers directory yields an empty list.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(l.Dir, providersDir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "_") || filepath.Ext(name) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Validate returns the problems with the named provider configuration.
// An empty result means the provider is usable.
func (l *Loader) Validate(name string) []string {
	p, err := l.LoadProvider(name)
	if ceu.ErrorCode(err) == ceu.ENOTFOUND {
		return []string{fmt.Sprintf("Provider config file not found: %s.yaml", name)}
	} else if err != nil {
		return []string{fmt.Sprintf("Failed to parse config: %s", ceu.ErrorMessage(err))}
	}

	problems := p.Validate()
	seen := make(map[string]bool, len(problems))
	for _, msg := range problems {
		seen[msg] = true
	}
	for _, msg := range l.validateStruct(p) {
		if !seen[msg] {
			seen[msg] = true
			problems = append(problems, msg)
		}
	}
	for _, pattern := range patternList(p.Crawl.Patterns) {
		if _, err := regexp.Compile(pattern); err != nil {
			problems = append(problems, fmt.Sprintf("Invalid pattern %q: matched literally", pattern))
		}
	}
	return problems
}

func (l *Loader) validateStruct(p *ceu.Provider) []string {
	if l.validate == nil {
		l.validate = newValidator()
	}
	err := l.validate.Struct(p)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	var problems []string
	for _, e := range verrs {
		// Drop the leading struct name from "Provider.crawl.start_urls[0]".
		_, field, _ := strings.Cut(e.Namespace(), ".")
		switch e.Tag() {
		case "required", "min":
			problems = append(problems, "Missing required field: "+field)
		case "url":
			problems = append(problems, fmt.Sprintf("Invalid URL in %s: %v", field, e.Value()))
		default:
			problems = append(problems, fmt.Sprintf("Invalid value for %s: must be %s %s", field, e.Tag(), e.Param()))
		}
	}
	return problems
}

// interpolate expands environment references in every scalar value.
func (l *Loader) interpolate(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && strings.Contains(n.Value, "${") {
		n.Value = envVarPattern.ReplaceAllStringFunc(n.Value, func(ref string) string {
			m := envVarPattern.FindStringSubmatch(ref)
			if v, ok := l.lookupEnv(m[1]); ok {
				return v
			}
			return m[2]
		})
		if n.Style == 0 {
			// Let the expanded value resolve as a number or bool again.
			n.Tag = ""
		}
	}
	for _, c := range n.Content {
		l.interpolate(c)
	}
}

func (l *Loader) lookupEnv(key string) (string, bool) {
	if l.LookupEnv != nil {
		return l.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

func patternList(p ceu.URLPatterns) []string {
	all := make([]string, 0, len(p.Listing)+len(p.CourseDetail)+len(p.Skip))
	all = append(all, p.Listing...)
	all = append(all, p.CourseDetail...)
	return append(all, p.Skip...)
}
