// Package component provides the in-memory component model backing legacy
// configuration resolution: components with named, hierarchical
// configurations carrying dependency descriptors and artifacts, and a
// Universe that looks components up by coordinates.
//
// Components are built once, then treated as immutable. A built Universe
// is safe for concurrent read access from any number of resolution
// workers.
package component

import (
	"fmt"
	"sort"

	pomdep "github.com/albertocavalcante/go-pomdep"
)

// Component is a module at an exact version together with its named
// configurations.
type Component struct {
	id      pomdep.ComponentID
	configs map[string]*Config
	order   []string
}

// New creates a component with no configurations.
func New(group, name, version string) *Component {
	return &Component{
		id:      pomdep.ComponentID{Group: group, Name: name, Version: version},
		configs: make(map[string]*Config),
	}
}

// NewMaven creates a component with the configuration set published for
// POM metadata: compile; runtime extending compile; provided; test
// extending runtime; master carrying the main artifact; and default
// extending runtime and master.
func NewMaven(group, name, version string) *Component {
	c := New(group, name, version)
	c.AddConfiguration("compile")
	c.AddConfiguration("runtime", "compile")
	c.AddConfiguration("provided")
	c.AddConfiguration("test", "runtime")
	master := c.AddConfiguration("master")
	master.AddArtifact(pomdep.DefaultArtifact(name))
	c.AddConfiguration("default", "runtime", "master")
	return c
}

// ID identifies the component.
func (c *Component) ID() pomdep.ComponentID { return c.id }

// AddConfiguration adds a named configuration extending the given parents.
// Adding a name twice returns the existing configuration.
func (c *Component) AddConfiguration(name string, extends ...string) *Config {
	if existing, ok := c.configs[name]; ok {
		return existing
	}
	cfg := &Config{owner: c, name: name, extends: extends}
	c.configs[name] = cfg
	c.order = append(c.order, name)
	return cfg
}

// Configuration returns the named configuration, if declared.
func (c *Component) Configuration(name string) (pomdep.ConfigurationView, bool) {
	cfg, ok := c.configs[name]
	if !ok {
		return nil, false
	}
	return cfg, true
}

// Config returns the named configuration as its concrete type for
// continued building, if declared.
func (c *Component) Config(name string) (*Config, bool) {
	cfg, ok := c.configs[name]
	return cfg, ok
}

// ConfigurationNames returns the declared configuration names in
// declaration order.
func (c *Component) ConfigurationNames() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Config is one named configuration on a component. It implements
// pomdep.ConfigurationView.
type Config struct {
	owner     *Component
	name      string
	extends   []string
	deps      []pomdep.DependencyDescriptor
	artifacts []pomdep.ArtifactName
}

// Name returns the configuration name.
func (c *Config) Name() string { return c.name }

// AddDependency declares a dependency on this configuration.
func (c *Config) AddDependency(d pomdep.DependencyDescriptor) *Config {
	c.deps = append(c.deps, d)
	return c
}

// AddArtifact attaches an artifact to this configuration.
func (c *Config) AddArtifact(a pomdep.ArtifactName) *Config {
	c.artifacts = append(c.artifacts, a)
	return c
}

// Hierarchy returns the names of all configurations this one extends,
// transitively, including itself. Order is preorder from self; each name
// appears once.
func (c *Config) Hierarchy() []string {
	var out []string
	seen := make(map[string]struct{})
	var walk func(name string)
	walk = func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if parent, ok := c.owner.configs[name]; ok {
			for _, ext := range parent.extends {
				walk(ext)
			}
		}
	}
	walk(c.name)
	return out
}

// Dependencies returns the descriptors visible on this configuration: its
// own declarations followed by inherited ones, deduplicated structurally.
func (c *Config) Dependencies() []pomdep.DependencyDescriptor {
	var out []pomdep.DependencyDescriptor
	seen := make(map[uint64]struct{})
	for _, name := range c.Hierarchy() {
		cfg, ok := c.owner.configs[name]
		if !ok {
			continue
		}
		for _, d := range cfg.deps {
			if _, dup := seen[d.Hash()]; dup {
				continue
			}
			seen[d.Hash()] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// Artifacts returns the artifacts this configuration resolves to,
// including inherited ones.
func (c *Config) Artifacts() []pomdep.ArtifactName {
	var out []pomdep.ArtifactName
	seen := make(map[pomdep.ArtifactName]struct{})
	for _, name := range c.Hierarchy() {
		cfg, ok := c.owner.configs[name]
		if !ok {
			continue
		}
		for _, a := range cfg.artifacts {
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

// Universe holds components keyed by coordinates and implements
// pomdep.ComponentLookup.
type Universe struct {
	components map[string]map[string]*Component // "group:name" -> version
}

// NewUniverse creates a universe holding the given components.
func NewUniverse(components ...*Component) *Universe {
	u := &Universe{components: make(map[string]map[string]*Component)}
	for _, c := range components {
		u.Add(c)
	}
	return u
}

// Add registers a component. Adding the same coordinates twice replaces
// the earlier component.
func (u *Universe) Add(c *Component) {
	id := c.id.ModuleID()
	if u.components[id] == nil {
		u.components[id] = make(map[string]*Component)
	}
	u.components[id][c.id.Version] = c
}

// Component returns the component at the exact coordinates, if present.
func (u *Universe) Component(group, name, version string) (pomdep.TargetComponent, bool) {
	c, ok := u.components[group+":"+name][version]
	if !ok {
		return nil, false
	}
	return c, true
}

// Versions returns the known versions of a module, sorted.
func (u *Universe) Versions(group, name string) []string {
	versions := u.components[group+":"+name]
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Get returns the concrete component at the exact coordinates, or an
// error naming the missing coordinates.
func (u *Universe) Get(group, name, version string) (*Component, error) {
	c, ok := u.components[group+":"+name][version]
	if !ok {
		return nil, fmt.Errorf("component %s:%s:%s: %w", group, name, version, pomdep.ErrComponentNotFound)
	}
	return c, nil
}
