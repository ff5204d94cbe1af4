package component

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	pomdep "github.com/albertocavalcante/go-pomdep"
)

// universeFile is the TOML shape of a component universe.
//
// Example:
//
//	[[components]]
//	group = "org.example"
//	name = "app"
//	version = "1.0.0"
//
//	  [[components.dependencies]]
//	  group = "org.example"
//	  name = "lib"
//	  version = "2.3"
//	  scope = "compile"
//
//	    [[components.dependencies.excludes]]
//	    group = "commons-logging"
//	    module = "*"
type universeFile struct {
	Components []componentEntry `toml:"components"`
}

type componentEntry struct {
	Group   string `toml:"group"`
	Name    string `toml:"name"`
	Version string `toml:"version"`

	// Plain disables the standard POM configuration set; configurations
	// must then be declared explicitly.
	Plain bool `toml:"plain,omitempty"`

	Configurations []configurationEntry `toml:"configurations,omitempty"`
	Dependencies   []dependencyEntry    `toml:"dependencies,omitempty"`
}

type configurationEntry struct {
	Name      string          `toml:"name"`
	Extends   []string        `toml:"extends,omitempty"`
	Artifacts []artifactEntry `toml:"artifacts,omitempty"`
}

type artifactEntry struct {
	Name       string `toml:"name"`
	Type       string `toml:"type,omitempty"`
	Extension  string `toml:"extension,omitempty"`
	Classifier string `toml:"classifier,omitempty"`
}

type dependencyEntry struct {
	Group   string `toml:"group"`
	Name    string `toml:"name"`
	Version string `toml:"version"`

	Scope      string `toml:"scope,omitempty"`
	Optional   bool   `toml:"optional,omitempty"`
	Constraint bool   `toml:"constraint,omitempty"`

	// Classifier or Type turn into a dependency artifact override.
	Classifier string `toml:"classifier,omitempty"`
	Type       string `toml:"type,omitempty"`

	Excludes []excludeEntry `toml:"excludes,omitempty"`
}

type excludeEntry struct {
	Group  string `toml:"group"`
	Module string `toml:"module"`
}

// LoadUniverse reads a TOML universe file from disk.
func LoadUniverse(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	u, err := ParseUniverse(data)
	if err != nil {
		return nil, fmt.Errorf("parse universe file %s: %w", path, err)
	}
	return u, nil
}

// ParseUniverse builds a Universe from TOML content.
func ParseUniverse(data []byte) (*Universe, error) {
	var file universeFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	universe := NewUniverse()
	for _, entry := range file.Components {
		c, err := buildComponent(entry)
		if err != nil {
			return nil, err
		}
		universe.Add(c)
	}
	return universe, nil
}

func buildComponent(entry componentEntry) (*Component, error) {
	if entry.Group == "" || entry.Name == "" || entry.Version == "" {
		return nil, fmt.Errorf("component entry needs group, name and version (got %q:%q:%q)", entry.Group, entry.Name, entry.Version)
	}

	var c *Component
	if entry.Plain {
		c = New(entry.Group, entry.Name, entry.Version)
	} else {
		c = NewMaven(entry.Group, entry.Name, entry.Version)
	}

	for _, cfgEntry := range entry.Configurations {
		cfg := c.AddConfiguration(cfgEntry.Name, cfgEntry.Extends...)
		for _, a := range cfgEntry.Artifacts {
			cfg.AddArtifact(pomdep.ArtifactName{
				Name:       a.Name,
				Type:       a.Type,
				Extension:  a.Extension,
				Classifier: a.Classifier,
			})
		}
	}

	for _, depEntry := range entry.Dependencies {
		descriptor, scope, err := buildDescriptor(depEntry)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", c.ID(), err)
		}
		cfg := c.AddConfiguration(scope.Configuration())
		cfg.AddDependency(descriptor)
	}
	return c, nil
}

func buildDescriptor(entry dependencyEntry) (pomdep.DependencyDescriptor, pomdep.Scope, error) {
	var zero pomdep.DependencyDescriptor
	scope, err := pomdep.ParseScope(entry.Scope)
	if err != nil {
		return zero, scope, fmt.Errorf("dependency %s:%s: %w", entry.Group, entry.Name, err)
	}
	if entry.Optional && entry.Constraint {
		return zero, scope, fmt.Errorf("dependency %s:%s: optional and constraint are mutually exclusive", entry.Group, entry.Name)
	}

	kind := pomdep.KindOrdinary
	switch {
	case entry.Optional:
		kind = pomdep.KindOptional
	case entry.Constraint:
		kind = pomdep.KindConstraintOnly
	}

	var artifact *pomdep.ArtifactName
	if entry.Classifier != "" || entry.Type != "" {
		artifact = &pomdep.ArtifactName{
			Name:       entry.Name,
			Type:       entry.Type,
			Extension:  entry.Type,
			Classifier: entry.Classifier,
		}
	}

	excludes := make([]pomdep.ExcludeRule, 0, len(entry.Excludes))
	for _, e := range entry.Excludes {
		excludes = append(excludes, pomdep.ExcludeRule{Group: e.Group, Module: e.Module})
	}

	selector := pomdep.ModuleSelector{Group: entry.Group, Name: entry.Name, Version: entry.Version}
	return pomdep.NewDependencyDescriptor(selector, scope, kind, artifact, excludes), scope, nil
}
