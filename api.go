// Package pomdep resolves dependency declarations sourced from POM-shaped
// metadata into a legacy, named-configuration dependency graph.
//
// POM metadata carries no variant attributes, so resolution follows the
// legacy path: each dependency edge selects named configurations on its
// target by the compile/runtime/master fallback rules instead of attribute
// matching.
//
// # Overview
//
// The package provides three layers:
//
//   - DependencyDescriptor: the immutable value model for one declared
//     dependency (selector, scope, kind, excludes, artifact override),
//     with the kind-dependent exclude and artifact rules attached.
//   - SelectLegacyConfigurations: the pure selection procedure deciding
//     which target configurations an edge traverses.
//   - Resolver: a walker that drives descriptor edges across a component
//     universe, applying exclusion and artifact-override rules along the
//     way.
//
// The component subpackage supplies the in-memory component store, the
// graph subpackage renders resolved graphs, and the exclude and version
// subpackages implement rule matching and version comparison.
//
// # Quick Start
//
//	universe := component.NewUniverse(app, lib, logging)
//	result, err := pomdep.Resolve(ctx, universe, app)
//
//	// Resolution from the runtime configuration with test scope included
//	result, err := pomdep.Resolve(ctx, universe, app,
//	    pomdep.WithRootConfiguration("runtime"),
//	    pomdep.WithIncludedScopes(pomdep.ScopeCompile, pomdep.ScopeRuntime, pomdep.ScopeTest),
//	)
//
// # Thread Safety
//
// All value types are immutable and every operation is a pure function of
// its inputs plus the injected ComponentLookup. Resolution is safe to run
// from arbitrarily many goroutines as long as the lookup tolerates
// concurrent reads.
package pomdep

import "context"

// Resolve walks the legacy configuration graph of root against the given
// component lookup. It is the recommended entry point.
func Resolve(ctx context.Context, lookup ComponentLookup, root TargetComponent, opts ...Option) (*Resolution, error) {
	r, err := NewResolver(lookup, opts...)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, root)
}
