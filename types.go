package pomdep

import (
	"sort"
	"strings"

	"github.com/albertocavalcante/go-pomdep/exclude"
)

// ModuleSelector identifies the target of a dependency declaration: a
// module (group + name) and the requested version. The version is the
// string declared in the descriptor, not necessarily a version that exists
// anywhere.
type ModuleSelector struct {
	Group   string `json:"group"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// String returns the selector as "group:name:version".
func (s ModuleSelector) String() string {
	return s.Group + ":" + s.Name + ":" + s.Version
}

// ModuleID returns the version-less "group:name" identifier.
func (s ModuleSelector) ModuleID() string {
	return s.Group + ":" + s.Name
}

// ComponentID identifies a concrete component: a module at an exact
// version.
type ComponentID struct {
	Group   string `json:"group"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// String returns the identifier as "group:name:version".
func (id ComponentID) String() string {
	return id.Group + ":" + id.Name + ":" + id.Version
}

// ModuleID returns the version-less "group:name" identifier.
func (id ComponentID) ModuleID() string {
	return id.Group + ":" + id.Name
}

// ExcludeRule is a glob-capable group/module pattern pair that prevents a
// transitive dependency from being pulled in. See the exclude package for
// matching semantics.
type ExcludeRule = exclude.Rule

// ArtifactName names a single artifact: the file name stem plus type,
// extension and classifier. Type and Extension default to "jar" when
// empty; Classifier is empty for the main artifact.
type ArtifactName struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Extension  string `json:"extension,omitempty"`
	Classifier string `json:"classifier,omitempty"`
}

// DefaultArtifact returns the conventional main artifact for a module: a
// "jar" with no classifier.
func DefaultArtifact(name string) ArtifactName {
	return ArtifactName{Name: name, Type: "jar", Extension: "jar"}
}

// String returns a compact "name-classifier.extension" style rendering.
func (a ArtifactName) String() string {
	var sb strings.Builder
	sb.WriteString(a.Name)
	if a.Classifier != "" {
		sb.WriteByte('-')
		sb.WriteString(a.Classifier)
	}
	sb.WriteByte('.')
	switch {
	case a.Extension != "":
		sb.WriteString(a.Extension)
	case a.Type != "":
		sb.WriteString(a.Type)
	default:
		sb.WriteString("jar")
	}
	return sb.String()
}

// Resolution is the final result of walking a component's legacy
// configuration graph.
type Resolution struct {
	// Root is the component resolution started from.
	Root ComponentID `json:"root"`

	// Modules lists all resolved modules, sorted by group then name.
	Modules []ResolvedModule `json:"modules"`

	// Summary provides aggregate statistics about the resolution.
	Summary ResolutionSummary `json:"summary"`

	// Warnings contains non-fatal issues encountered during resolution,
	// such as version conflicts settled by highest-version selection.
	Warnings []string `json:"warnings,omitempty"`
}

// Module returns the resolved module with the given "group:name"
// identifier, if present.
func (r *Resolution) Module(moduleID string) (ResolvedModule, bool) {
	for _, m := range r.Modules {
		if m.ID.ModuleID() == moduleID {
			return m, true
		}
	}
	return ResolvedModule{}, false
}

// ResolvedModule is one module selected by resolution.
type ResolvedModule struct {
	// ID is the module at its selected version.
	ID ComponentID `json:"id"`

	// Configurations names the target configurations traversed on this
	// component, in selection order.
	Configurations []string `json:"configurations"`

	// Artifacts are the artifacts contributed by this module: either the
	// dependency-declared override artifacts or the defaults of the
	// traversed configurations.
	Artifacts []ArtifactName `json:"artifacts,omitempty"`

	// RequiredBy lists the components that declared an edge to this
	// module, sorted.
	RequiredBy []string `json:"required_by"`

	// RequestedVersions lists every distinct version requested for this
	// module, including versions contributed by optional and
	// constraint-only declarations. Sorted.
	RequestedVersions []string `json:"requested_versions,omitempty"`
}

// ResolutionSummary provides statistics about a resolution result.
type ResolutionSummary struct {
	// TotalModules is the number of resolved modules, excluding the root.
	TotalModules int `json:"total_modules"`

	// Conflicts is the number of modules for which more than one version
	// was requested.
	Conflicts int `json:"conflicts"`

	// ExcludedEdges is the number of dependency edges skipped because an
	// exclude rule matched the target module.
	ExcludedEdges int `json:"excluded_edges"`
}

func sortedStringSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
