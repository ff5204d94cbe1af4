package pomdep

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/albertocavalcante/go-pomdep/exclude"
	"github.com/albertocavalcante/go-pomdep/version"
)

// ComponentLookup resolves exact component versions. It is the boundary to
// whatever store holds the component universe; the component package
// provides the in-memory implementation.
//
// Implementations must tolerate concurrent calls from multiple resolution
// workers.
type ComponentLookup interface {
	Component(group, name, version string) (TargetComponent, bool)
}

// Resolver walks the legacy configuration graph spanned by POM-shaped
// dependency descriptors.
//
// For every ordinary dependency edge it asks legacy configuration
// selection which target configurations to traverse, installs the edge's
// exclude rules on the traversal, and materializes either the declared
// override artifact or the target's default artifacts. Optional and
// constraint-only declarations contribute version alignment only and never
// edges. When more than one version of a module is requested, the highest
// one wins and the conflict is recorded as a warning.
//
// A Resolver is immutable after construction and safe for concurrent use,
// provided its ComponentLookup is.
type Resolver struct {
	lookup ComponentLookup
	cfg    *resolverConfig
}

// NewResolver creates a resolver over the given component lookup.
func NewResolver(lookup ComponentLookup, opts ...Option) (*Resolver, error) {
	if lookup == nil {
		return nil, fmt.Errorf("component lookup is nil")
	}
	cfg, err := newResolverConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Resolver{lookup: lookup, cfg: cfg}, nil
}

// traversalRecord captures what was learned about one traversed version of
// a module.
type traversalRecord struct {
	configurations []string
	artifacts      map[ArtifactName]struct{}
}

func (t *traversalRecord) addConfigurations(names []string) {
	for _, name := range names {
		found := false
		for _, existing := range t.configurations {
			if existing == name {
				found = true
				break
			}
		}
		if !found {
			t.configurations = append(t.configurations, name)
		}
	}
}

// moduleState accumulates version requests and traversal results for one
// group:name module.
type moduleState struct {
	group, name string
	requests    map[string]map[string]struct{} // version -> requesting component ids
	requiredBy  map[string]struct{}            // real edges only
	traversed   map[string]*traversalRecord    // version -> record
}

type traversalItem struct {
	component TargetComponent
	selection []ConfigurationView
	excludes  *exclude.Matcher
	depth     int
}

// Resolve walks the graph starting from the root component's configured
// root configuration (default "compile") and returns the resolved module
// set. The root component itself is not part of the result.
func (r *Resolver) Resolve(ctx context.Context, root TargetComponent) (*Resolution, error) {
	if root == nil {
		return nil, fmt.Errorf("root component is nil")
	}
	log := r.cfg.log()

	rootView, ok := root.Configuration(r.cfg.rootConfiguration)
	if !ok {
		return nil, r.failures().ConfigurationNotFound(root.ID(), r.cfg.rootConfiguration, root.ID(), r.cfg.rootConfiguration)
	}

	emptyExcludes, err := exclude.New()
	if err != nil {
		return nil, err
	}

	modules := make(map[string]*moduleState)
	visited := map[string]struct{}{
		visitKey(root.ID(), emptyExcludes): {},
	}
	excludedEdges := 0

	queue := []traversalItem{{
		component: root,
		selection: []ConfigurationView{rootView},
		excludes:  emptyExcludes,
	}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := queue[0]
		queue = queue[1:]

		if item.depth > r.cfg.maxDepth {
			return nil, fmt.Errorf("dependency depth %d exceeds maximum %d at %s", item.depth, r.cfg.maxDepth, item.component.ID())
		}

		seen := make(map[uint64]struct{})
		for _, view := range item.selection {
			for _, dep := range view.Dependencies() {
				if _, dup := seen[dep.Hash()]; dup {
					continue
				}
				seen[dep.Hash()] = struct{}{}

				if !r.cfg.includeScope(dep.Scope()) {
					continue
				}
				sel := dep.Selector()
				state := stateFor(modules, sel)

				if !dep.IsTransitive() {
					// Optional and constraint-only declarations align
					// versions without contributing an edge.
					log.Debug("version alignment only", "from", item.component.ID(), "dependency", dep.String())
					state.request(sel.Version, item.component.ID())
					continue
				}
				if item.excludes.ExcludesModule(sel.Group, sel.Name) {
					log.Debug("edge excluded", "from", item.component.ID(), "module", sel.ModuleID())
					excludedEdges++
					continue
				}

				state.request(sel.Version, item.component.ID())
				state.requiredBy[item.component.ID().String()] = struct{}{}

				target, found := r.lookup.Component(sel.Group, sel.Name, sel.Version)
				if !found {
					return nil, fmt.Errorf("resolve %s (required by %s): %w", sel, item.component.ID(), ErrComponentNotFound)
				}

				selection, err := SelectLegacyConfigurations(item.component.ID(), view.Name(), target, r.cfg.failures)
				if err != nil {
					return nil, err
				}
				log.Debug("selected configurations", "target", target.ID(), "configurations", selection.Names())

				record := state.record(sel.Version)
				record.addConfigurations(selection.Names())
				for _, a := range edgeArtifacts(dep, selection) {
					record.artifacts[a] = struct{}{}
				}

				childExcludes, err := item.excludes.Union(dep.ConfigurationExcludes(selection.Names())...)
				if err != nil {
					return nil, fmt.Errorf("resolve %s: %w", sel, err)
				}
				key := visitKey(target.ID(), childExcludes)
				if _, done := visited[key]; done {
					continue
				}
				visited[key] = struct{}{}
				queue = append(queue, traversalItem{
					component: target,
					selection: selection.Configurations,
					excludes:  childExcludes,
					depth:     item.depth + 1,
				})
			}
		}
	}

	return r.buildResolution(root.ID(), modules, excludedEdges)
}

// buildResolution applies highest-version selection per module and
// assembles the sorted result.
func (r *Resolver) buildResolution(root ComponentID, modules map[string]*moduleState, excludedEdges int) (*Resolution, error) {
	res := &Resolution{Root: root}
	res.Summary.ExcludedEdges = excludedEdges

	ids := make([]string, 0, len(modules))
	for id := range modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		state := modules[id]
		if len(state.requiredBy) == 0 {
			// Requested only by optional or constraint-only declarations:
			// nothing pulled it in, so it does not appear in the result.
			continue
		}

		versions := make([]string, 0, len(state.requests))
		for v := range state.requests {
			versions = append(versions, v)
		}
		sort.Strings(versions)
		selected := version.Max(versions...)

		if len(versions) > 1 {
			res.Summary.Conflicts++
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"multiple versions requested for %s (%s); selected %s",
				id, strings.Join(versions, ", "), selected))
		}

		record, ok := state.traversed[selected]
		if !ok {
			// The winning version was contributed purely by alignment;
			// reuse what the traversed version told us about the target.
			var traversedVersion string
			for v := range state.traversed {
				if traversedVersion == "" || version.Compare(v, traversedVersion) > 0 {
					traversedVersion = v
				}
			}
			record = state.traversed[traversedVersion]
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s aligned to version %s, which no edge traversed (traversed %s)",
				id, selected, traversedVersion))
		}

		artifacts := make([]ArtifactName, 0, len(record.artifacts))
		for a := range record.artifacts {
			artifacts = append(artifacts, a)
		}
		sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].String() < artifacts[j].String() })

		res.Modules = append(res.Modules, ResolvedModule{
			ID:                ComponentID{Group: state.group, Name: state.name, Version: selected},
			Configurations:    record.configurations,
			Artifacts:         artifacts,
			RequiredBy:        sortedStringSet(state.requiredBy),
			RequestedVersions: versions,
		})
	}

	res.Summary.TotalModules = len(res.Modules)
	return res, nil
}

func (r *Resolver) failures() FailureReporter {
	if r.cfg.failures != nil {
		return r.cfg.failures
	}
	return defaultFailureReporter{}
}

// edgeArtifacts returns the artifacts an edge materializes: the declared
// override when present, else the defaults of the selected configurations.
func edgeArtifacts(dep DependencyDescriptor, selection ConfigurationSelection) []ArtifactName {
	if override := dep.DependencyArtifacts(); len(override) > 0 {
		return override
	}
	var out []ArtifactName
	for _, view := range selection.Configurations {
		out = append(out, view.Artifacts()...)
	}
	return out
}

func stateFor(modules map[string]*moduleState, sel ModuleSelector) *moduleState {
	id := sel.ModuleID()
	state, ok := modules[id]
	if !ok {
		state = &moduleState{
			group:      sel.Group,
			name:       sel.Name,
			requests:   make(map[string]map[string]struct{}),
			requiredBy: make(map[string]struct{}),
			traversed:  make(map[string]*traversalRecord),
		}
		modules[id] = state
	}
	return state
}

func (s *moduleState) request(version string, from ComponentID) {
	if s.requests[version] == nil {
		s.requests[version] = make(map[string]struct{})
	}
	s.requests[version][from.String()] = struct{}{}
}

func (s *moduleState) record(version string) *traversalRecord {
	record, ok := s.traversed[version]
	if !ok {
		record = &traversalRecord{artifacts: make(map[ArtifactName]struct{})}
		s.traversed[version] = record
	}
	return record
}

func visitKey(id ComponentID, excludes *exclude.Matcher) string {
	return id.String() + "|" + excludes.Signature()
}
