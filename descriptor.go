package pomdep

import (
	"fmt"
	"hash/fnv"
)

// DependencyDescriptor is an immutable value describing one dependency
// declaration from POM-shaped metadata: the selector, the scope it was
// declared with, its kind, its exclude rules, and an optional artifact
// override.
//
// Descriptors are created once per declared dependency and shared freely
// across concurrent resolution of multiple graph edges; version
// substitution produces a new descriptor via WithRequested instead of
// mutating in place.
type DependencyDescriptor struct {
	selector ModuleSelector
	scope    Scope
	kind     DependencyKind
	excludes []ExcludeRule
	artifact *ArtifactName
}

// NewDependencyDescriptor builds a descriptor. The excludes slice is
// copied; order and duplicates are preserved. artifact may be nil, meaning
// the declaration carried no classifier or non-default type.
func NewDependencyDescriptor(selector ModuleSelector, scope Scope, kind DependencyKind, artifact *ArtifactName, excludes []ExcludeRule) DependencyDescriptor {
	d := DependencyDescriptor{
		selector: selector,
		scope:    scope,
		kind:     kind,
	}
	if artifact != nil {
		a := *artifact
		d.artifact = &a
	}
	if len(excludes) > 0 {
		d.excludes = make([]ExcludeRule, len(excludes))
		copy(d.excludes, excludes)
	}
	return d
}

// Selector returns the target module and requested version.
func (d DependencyDescriptor) Selector() ModuleSelector { return d.selector }

// Scope returns the declared POM scope.
func (d DependencyDescriptor) Scope() Scope { return d.scope }

// Kind returns the dependency kind.
func (d DependencyDescriptor) Kind() DependencyKind { return d.kind }

// Excludes returns the declared exclude rules in declaration order,
// including duplicates. This is the raw declaration; ConfigurationExcludes
// applies the kind-dependent rules the resolver uses.
func (d DependencyDescriptor) Excludes() []ExcludeRule {
	out := make([]ExcludeRule, len(d.excludes))
	copy(out, d.excludes)
	return out
}

// Artifact returns the declared artifact override, if any. This is the raw
// declaration; DependencyArtifacts applies the kind-dependent rules the
// resolver uses.
func (d DependencyDescriptor) Artifact() (ArtifactName, bool) {
	if d.artifact == nil {
		return ArtifactName{}, false
	}
	return *d.artifact, true
}

// IsTransitive reports whether this dependency contributes transitive
// edges. Only ordinary dependencies do.
func (d DependencyDescriptor) IsTransitive() bool { return d.kind == KindOrdinary }

// IsOptional reports whether the dependency was declared optional.
func (d DependencyDescriptor) IsOptional() bool { return d.kind == KindOptional }

// IsConstraint reports whether this is a constraint-only
// (dependency-management) declaration.
func (d DependencyDescriptor) IsConstraint() bool { return d.kind == KindConstraintOnly }

// IsChanging reports whether the target is expected to change without a
// version bump. Always false for POM-shaped metadata.
func (d DependencyDescriptor) IsChanging() bool { return false }

// WithRequested returns a copy of the descriptor with only the selector
// replaced. The receiver is unchanged.
func (d DependencyDescriptor) WithRequested(selector ModuleSelector) DependencyDescriptor {
	out := d
	out.selector = selector
	return out
}

// ConfigurationExcludes returns the exclude rules that apply to a
// traversal of this dependency. Optional dependencies never propagate
// exclusions: their purpose is additive opt-in, not exclusion of
// transitive graph members. Constraint-only declarations keep theirs.
//
// The active configuration names are accepted for interface symmetry with
// richer metadata formats and are unused here: in POM metadata excludes are
// global to the dependency, not per-configuration.
func (d DependencyDescriptor) ConfigurationExcludes(active []string) []ExcludeRule {
	_ = active
	if d.kind == KindOptional {
		return nil
	}
	return d.Excludes()
}

// DependencyArtifacts returns the artifacts to materialize instead of the
// target's defaults: zero or one element.
//
// A classifier or type on an optional dependency is ignored here even when
// declared: for an optional dependency the declaration only ever
// influences the version contributed for a matching group/name pair, never
// the artifact set pulled transitively. Version alignment elsewhere still
// honors the classifier, and that asymmetry is deliberate.
func (d DependencyDescriptor) DependencyArtifacts() []ArtifactName {
	if d.kind == KindOptional || d.artifact == nil {
		return nil
	}
	return []ArtifactName{*d.artifact}
}

// Equal reports structural equality over all five fields. Exclude order
// matters for equality, mirroring the declaration-preserving storage.
func (d DependencyDescriptor) Equal(other DependencyDescriptor) bool {
	if d.selector != other.selector || d.scope != other.scope || d.kind != other.kind {
		return false
	}
	if (d.artifact == nil) != (other.artifact == nil) {
		return false
	}
	if d.artifact != nil && *d.artifact != *other.artifact {
		return false
	}
	if len(d.excludes) != len(other.excludes) {
		return false
	}
	for i := range d.excludes {
		if d.excludes[i] != other.excludes[i] {
			return false
		}
	}
	return true
}

// Hash returns a structural FNV-1a hash consistent with Equal.
func (d DependencyDescriptor) Hash() uint64 {
	h := fnv.New64a()
	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p))
			h.Write([]byte{0})
		}
	}
	write(d.selector.Group, d.selector.Name, d.selector.Version)
	write(d.scope.String(), d.kind.String())
	for _, e := range d.excludes {
		write(e.Group, e.Module)
	}
	if d.artifact != nil {
		write(d.artifact.Name, d.artifact.Type, d.artifact.Extension, d.artifact.Classifier)
	}
	return h.Sum64()
}

// String renders the descriptor for diagnostics.
func (d DependencyDescriptor) String() string {
	return fmt.Sprintf("dependency: %s, scope: %s, kind: %s", d.selector, d.scope, d.kind)
}
