package vin

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrInvalidCatalog is returned by NewCatalog when the table data is inconsistent.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Make is a manufacturer with the WMI codes that resolve to it.
type Make struct {
	Name     string
	Tendency DriveTendency
	WMIs     []string
}

// Data is the raw table input for NewCatalog.
type Data struct {
	Makes []Make
	// Models maps a manufacturer name to its ordered model list.
	Models map[string][]string
	// Engines maps a manufacturer name to engine code -> profile.
	Engines map[string]map[string]EngineProfile
	// CountryOverrides maps a full WMI to a country that wins over the
	// first-character region table.
	CountryOverrides map[string]string
}

type engineKey struct {
	make string
	code string
}

// Catalog is the immutable set of lookup tables the decoder resolves against.
// It is safe for concurrent use; nothing mutates it after NewCatalog returns.
type Catalog struct {
	wmi       map[string]Manufacturer
	byMake    map[string][]string
	models    map[string][]string
	engines   map[engineKey]EngineProfile
	overrides map[string]string
}

// NewCatalog validates d and builds a Catalog from a private copy of it.
// Either every table is accepted or none is.
func NewCatalog(d Data) (*Catalog, error) {
	c := &Catalog{
		wmi:       make(map[string]Manufacturer),
		byMake:    make(map[string][]string),
		models:    make(map[string][]string, len(d.Models)),
		engines:   make(map[engineKey]EngineProfile),
		overrides: make(map[string]string, len(d.CountryOverrides)),
	}
	var errs []error

	for _, m := range d.Makes {
		if m.Name == "" {
			errs = append(errs, errors.New("make with empty name"))
			continue
		}
		if _, dup := c.byMake[m.Name]; dup {
			errs = append(errs, fmt.Errorf("make %q registered twice", m.Name))
			continue
		}
		if len(m.WMIs) == 0 {
			errs = append(errs, fmt.Errorf("make %q has no WMI codes", m.Name))
		}
		codes := make([]string, 0, len(m.WMIs))
		for _, w := range m.WMIs {
			if len(w) != wmiEnd {
				errs = append(errs, fmt.Errorf("make %q: WMI %q is not %d characters", m.Name, w, wmiEnd))
				continue
			}
			if prev, ok := c.wmi[w]; ok {
				errs = append(errs, fmt.Errorf("WMI %q maps to both %q and %q", w, prev.Name, m.Name))
				continue
			}
			c.wmi[w] = Manufacturer{Name: m.Name, Tendency: m.Tendency}
			codes = append(codes, w)
		}
		sort.Strings(codes)
		c.byMake[m.Name] = codes
	}

	for name, list := range d.Models {
		if _, ok := c.byMake[name]; !ok {
			errs = append(errs, fmt.Errorf("models for unregistered make %q", name))
			continue
		}
		if len(list) == 0 {
			errs = append(errs, fmt.Errorf("make %q has an empty model list", name))
			continue
		}
		if slices.Contains(list, "") {
			errs = append(errs, fmt.Errorf("make %q has an empty model name", name))
			continue
		}
		c.models[name] = slices.Clone(list)
	}

	for name, byCode := range d.Engines {
		if _, ok := c.byMake[name]; !ok {
			errs = append(errs, fmt.Errorf("engines for unregistered make %q", name))
			continue
		}
		for code, p := range byCode {
			if len(code) != 2 {
				errs = append(errs, fmt.Errorf("make %q: engine code %q is not 2 characters", name, code))
				continue
			}
			c.engines[engineKey{make: name, code: code}] = p
		}
	}

	for w, country := range d.CountryOverrides {
		if len(w) != wmiEnd || country == "" {
			errs = append(errs, fmt.Errorf("invalid country override %q -> %q", w, country))
			continue
		}
		c.overrides[w] = country
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return c, nil
}

// MustCatalog is NewCatalog that panics on invalid data.
func MustCatalog(d Data) *Catalog {
	c, err := NewCatalog(d)
	if err != nil {
		panic(err)
	}
	return c
}

// defaultCatalog is built at package initialization, before any decode can run.
var defaultCatalog = MustCatalog(DefaultData())

// Default returns the built-in catalog.
func Default() *Catalog { return defaultCatalog }

// DefaultData returns a fresh copy of the built-in table data.
func DefaultData() Data {
	makes := make([]Make, len(registry))
	for i, m := range registry {
		makes[i] = Make{Name: m.Name, Tendency: m.Tendency, WMIs: slices.Clone(m.WMIs)}
	}
	models := make(map[string][]string, len(modelCatalog))
	for k, v := range modelCatalog {
		models[k] = slices.Clone(v)
	}
	engines := make(map[string]map[string]EngineProfile, len(engineProfiles))
	for k, v := range engineProfiles {
		inner := make(map[string]EngineProfile, len(v))
		for code, p := range v {
			inner[code] = p
		}
		engines[k] = inner
	}
	overrides := make(map[string]string, len(countryOverrides))
	for k, v := range countryOverrides {
		overrides[k] = v
	}
	return Data{Makes: makes, Models: models, Engines: engines, CountryOverrides: overrides}
}

// Manufacturer resolves a WMI.
func (c *Catalog) Manufacturer(wmi string) (Manufacturer, bool) {
	m, ok := c.wmi[wmi]
	return m, ok
}

// Models returns a copy of the ordered model list for a manufacturer.
func (c *Catalog) Models(name string) []string {
	return slices.Clone(c.models[name])
}

// Engine resolves an engine profile, falling back to DefaultEngine().
func (c *Catalog) Engine(name, code string) EngineProfile {
	if p, ok := c.engines[engineKey{make: name, code: code}]; ok {
		return p
	}
	return defaultEngine
}

// CountryOverride returns the forced country for a WMI, if any.
func (c *Catalog) CountryOverride(wmi string) (string, bool) {
	country, ok := c.overrides[wmi]
	return country, ok
}

// Manufacturers returns all registered manufacturer names, sorted.
func (c *Catalog) Manufacturers() []string {
	names := make([]string, 0, len(c.byMake))
	for n := range c.byMake {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WMIs returns the sorted WMI codes registered for a manufacturer.
func (c *Catalog) WMIs(name string) []string {
	return slices.Clone(c.byMake[name])
}
