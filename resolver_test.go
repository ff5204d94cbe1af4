package pomdep_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pomdep "github.com/albertocavalcante/go-pomdep"
	"github.com/albertocavalcante/go-pomdep/component"
)

func ordinary(name, version string, excludes ...pomdep.ExcludeRule) pomdep.DependencyDescriptor {
	return pomdep.NewDependencyDescriptor(
		pomdep.ModuleSelector{Group: "org.example", Name: name, Version: version},
		pomdep.ScopeCompile, pomdep.KindOrdinary, nil, excludes)
}

func mustResolve(t *testing.T, universe *component.Universe, root *component.Component, opts ...pomdep.Option) *pomdep.Resolution {
	t.Helper()
	res, err := pomdep.Resolve(context.Background(), universe, root, opts...)
	require.NoError(t, err)
	return res
}

func mustModule(t *testing.T, res *pomdep.Resolution, moduleID string) pomdep.ResolvedModule {
	t.Helper()
	m, ok := res.Module(moduleID)
	require.True(t, ok, "module %s missing from result", moduleID)
	return m
}

func TestResolveSimpleChain(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	lib := component.NewMaven("org.example", "lib", "1.0")
	logging := component.NewMaven("org.example", "logging", "2.1")

	mustConfig(t, app, "compile").AddDependency(ordinary("lib", "1.0"))
	mustConfig(t, lib, "compile").AddDependency(ordinary("logging", "2.1"))

	res := mustResolve(t, component.NewUniverse(app, lib, logging), app)

	assert.Equal(t, app.ID(), res.Root)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, pomdep.ResolutionSummary{TotalModules: 2}, res.Summary)

	libModule := mustModule(t, res, "org.example:lib")
	assert.Equal(t, "1.0", libModule.ID.Version)
	assert.Equal(t, []string{"compile", "master"}, libModule.Configurations)
	assert.Equal(t, []pomdep.ArtifactName{pomdep.DefaultArtifact("lib")}, libModule.Artifacts)
	assert.Equal(t, []string{"org.example:app:1.0"}, libModule.RequiredBy)

	loggingModule := mustModule(t, res, "org.example:logging")
	assert.Equal(t, "2.1", loggingModule.ID.Version)
	assert.Equal(t, []string{"org.example:lib:1.0"}, loggingModule.RequiredBy)

	_, rootListed := res.Module("org.example:app")
	assert.False(t, rootListed, "root never appears in its own result")
}

func TestResolveConflictSelectsHighestVersion(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	a := component.NewMaven("org.example", "a", "1.0")
	b := component.NewMaven("org.example", "b", "1.0")
	c1 := component.NewMaven("org.example", "c", "1.0")
	c2 := component.NewMaven("org.example", "c", "2.0")

	mustConfig(t, app, "compile").
		AddDependency(ordinary("a", "1.0")).
		AddDependency(ordinary("b", "1.0"))
	mustConfig(t, a, "compile").AddDependency(ordinary("c", "1.0"))
	mustConfig(t, b, "compile").AddDependency(ordinary("c", "2.0"))

	res := mustResolve(t, component.NewUniverse(app, a, b, c1, c2), app)

	m := mustModule(t, res, "org.example:c")
	assert.Equal(t, "2.0", m.ID.Version)
	assert.Equal(t, []string{"1.0", "2.0"}, m.RequestedVersions)
	assert.Equal(t, []string{"org.example:a:1.0", "org.example:b:1.0"}, m.RequiredBy)

	assert.Equal(t, 1, res.Summary.Conflicts)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "multiple versions requested for org.example:c (1.0, 2.0); selected 2.0", res.Warnings[0])
}

func TestResolveOptionalAlignsVersionWithoutEdge(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	lib := component.NewMaven("org.example", "lib", "1.0")
	uuid := component.NewMaven("org.example", "uuid", "1.0")

	optionalUUID := pomdep.NewDependencyDescriptor(
		pomdep.ModuleSelector{Group: "org.example", Name: "uuid", Version: "3.0"},
		pomdep.ScopeCompile, pomdep.KindOptional, nil, nil)

	mustConfig(t, app, "compile").
		AddDependency(ordinary("lib", "1.0")).
		AddDependency(ordinary("uuid", "1.0"))
	mustConfig(t, lib, "compile").AddDependency(optionalUUID)

	// uuid 3.0 does not exist anywhere; alignment must not look it up.
	res := mustResolve(t, component.NewUniverse(app, lib, uuid), app)

	m := mustModule(t, res, "org.example:uuid")
	assert.Equal(t, "3.0", m.ID.Version, "the optional declaration wins version alignment")
	assert.Equal(t, []string{"1.0", "3.0"}, m.RequestedVersions)
	assert.Equal(t, []string{"org.example:app:1.0"}, m.RequiredBy,
		"the optional declaration is not an edge")
	// Configurations and artifacts come from the version an edge actually
	// traversed.
	assert.Equal(t, []string{"compile", "master"}, m.Configurations)
	assert.Equal(t, []pomdep.ArtifactName{pomdep.DefaultArtifact("uuid")}, m.Artifacts)

	assert.Equal(t, 1, res.Summary.Conflicts)
	assert.Contains(t, res.Warnings, "multiple versions requested for org.example:uuid (1.0, 3.0); selected 3.0")
	assert.Contains(t, res.Warnings, "org.example:uuid aligned to version 3.0, which no edge traversed (traversed 1.0)")
}

func TestResolveOptionalAndConstraintAloneContributeNothing(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	lib := component.NewMaven("org.example", "lib", "1.0")

	optional := pomdep.NewDependencyDescriptor(
		pomdep.ModuleSelector{Group: "org.example", Name: "maybe", Version: "1.0"},
		pomdep.ScopeCompile, pomdep.KindOptional, nil, nil)
	constraint := pomdep.NewDependencyDescriptor(
		pomdep.ModuleSelector{Group: "org.example", Name: "pinned", Version: "4.2"},
		pomdep.ScopeCompile, pomdep.KindConstraintOnly, nil, nil)

	mustConfig(t, app, "compile").
		AddDependency(ordinary("lib", "1.0")).
		AddDependency(optional).
		AddDependency(constraint)

	res := mustResolve(t, component.NewUniverse(app, lib), app)

	_, hasMaybe := res.Module("org.example:maybe")
	_, hasPinned := res.Module("org.example:pinned")
	assert.False(t, hasMaybe, "an optional dependency nothing else pulls in stays out")
	assert.False(t, hasPinned, "a constraint nothing else pulls in stays out")
	assert.Equal(t, 1, res.Summary.TotalModules)
}

func TestResolveExcludesPruneTransitiveEdges(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	lib := component.NewMaven("org.example", "lib", "1.0")
	good := component.NewMaven("org.good", "ok", "1.0")

	mustConfig(t, app, "compile").AddDependency(
		ordinary("lib", "1.0", pomdep.ExcludeRule{Group: "org.bad", Module: "*"}))
	mustConfig(t, lib, "compile").
		AddDependency(pomdep.NewDependencyDescriptor(
			pomdep.ModuleSelector{Group: "org.bad", Name: "evil", Version: "1.0"},
			pomdep.ScopeCompile, pomdep.KindOrdinary, nil, nil)).
		AddDependency(pomdep.NewDependencyDescriptor(
			pomdep.ModuleSelector{Group: "org.good", Name: "ok", Version: "1.0"},
			pomdep.ScopeCompile, pomdep.KindOrdinary, nil, nil))

	// org.bad:evil deliberately has no component in the universe: the edge
	// must be pruned before any lookup happens.
	res := mustResolve(t, component.NewUniverse(app, lib, good), app)

	_, hasEvil := res.Module("org.bad:evil")
	assert.False(t, hasEvil)
	mustModule(t, res, "org.good:ok")
	assert.Equal(t, 1, res.Summary.ExcludedEdges)
	assert.Equal(t, 2, res.Summary.TotalModules)
}

func TestResolveExcludesArePathDependent(t *testing.T) {
	// app reaches lib twice: once directly with an exclude on evil, and
	// once through bridge without it. The unexcluded path must still pull
	// evil in.
	app := component.NewMaven("org.example", "app", "1.0")
	bridge := component.NewMaven("org.example", "bridge", "1.0")
	lib := component.NewMaven("org.example", "lib", "1.0")
	evil := component.NewMaven("org.bad", "evil", "1.0")

	mustConfig(t, app, "compile").
		AddDependency(ordinary("lib", "1.0", pomdep.ExcludeRule{Group: "org.bad", Module: "evil"})).
		AddDependency(ordinary("bridge", "1.0"))
	mustConfig(t, bridge, "compile").AddDependency(ordinary("lib", "1.0"))
	mustConfig(t, lib, "compile").AddDependency(pomdep.NewDependencyDescriptor(
		pomdep.ModuleSelector{Group: "org.bad", Name: "evil", Version: "1.0"},
		pomdep.ScopeCompile, pomdep.KindOrdinary, nil, nil))

	res := mustResolve(t, component.NewUniverse(app, bridge, lib, evil), app)

	mustModule(t, res, "org.bad:evil")
	assert.Equal(t, 1, res.Summary.ExcludedEdges)

	libModule := mustModule(t, res, "org.example:lib")
	assert.Equal(t, []string{"org.example:app:1.0", "org.example:bridge:1.0"}, libModule.RequiredBy)
}

func TestResolveArtifactOverrideReplacesDefaults(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	lib := component.NewMaven("org.example", "lib", "1.0")

	sources := &pomdep.ArtifactName{Name: "lib", Type: "jar", Extension: "jar", Classifier: "sources"}
	mustConfig(t, app, "compile").AddDependency(pomdep.NewDependencyDescriptor(
		pomdep.ModuleSelector{Group: "org.example", Name: "lib", Version: "1.0"},
		pomdep.ScopeCompile, pomdep.KindOrdinary, sources, nil))

	res := mustResolve(t, component.NewUniverse(app, lib), app)

	m := mustModule(t, res, "org.example:lib")
	assert.Equal(t, []pomdep.ArtifactName{*sources}, m.Artifacts,
		"the declared artifact replaces the target's default jar")
}

func TestResolveScopeFiltering(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	lib := component.NewMaven("org.example", "lib", "1.0")
	junit := component.NewMaven("org.junit", "junit", "5.0")

	mustConfig(t, app, "compile").AddDependency(ordinary("lib", "1.0"))
	mustConfig(t, app, "test").AddDependency(pomdep.NewDependencyDescriptor(
		pomdep.ModuleSelector{Group: "org.junit", Name: "junit", Version: "5.0"},
		pomdep.ScopeTest, pomdep.KindOrdinary, nil, nil))

	universe := component.NewUniverse(app, lib, junit)

	// Default root configuration never sees the test configuration.
	res := mustResolve(t, universe, app)
	_, hasJUnit := res.Module("org.junit:junit")
	assert.False(t, hasJUnit)

	// From the test configuration the declaration is visible, but its
	// scope is filtered out by default.
	res = mustResolve(t, universe, app, pomdep.WithRootConfiguration("test"))
	_, hasJUnit = res.Module("org.junit:junit")
	assert.False(t, hasJUnit)

	res = mustResolve(t, universe, app,
		pomdep.WithRootConfiguration("test"),
		pomdep.WithIncludedScopes(pomdep.ScopeCompile, pomdep.ScopeRuntime, pomdep.ScopeTest))
	mustModule(t, res, "org.junit:junit")
	mustModule(t, res, "org.example:lib")
}

func TestResolveCycleTerminates(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	b := component.NewMaven("org.example", "b", "1.0")
	c := component.NewMaven("org.example", "c", "1.0")

	mustConfig(t, app, "compile").AddDependency(ordinary("b", "1.0"))
	mustConfig(t, b, "compile").AddDependency(ordinary("c", "1.0"))
	mustConfig(t, c, "compile").AddDependency(ordinary("b", "1.0"))

	res := mustResolve(t, component.NewUniverse(app, b, c), app)

	assert.Equal(t, 2, res.Summary.TotalModules)
	bModule := mustModule(t, res, "org.example:b")
	assert.Equal(t, []string{"org.example:app:1.0", "org.example:c:1.0"}, bModule.RequiredBy)
}

func TestResolveMissingComponent(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	mustConfig(t, app, "compile").AddDependency(ordinary("ghost", "1.0"))

	_, err := pomdep.Resolve(context.Background(), component.NewUniverse(app), app)
	require.Error(t, err)
	assert.ErrorIs(t, err, pomdep.ErrComponentNotFound)
	assert.Contains(t, err.Error(), "org.example:ghost:1.0")
	assert.Contains(t, err.Error(), "required by org.example:app:1.0")
}

func TestResolveRootConfigurationMissing(t *testing.T) {
	app := component.New("org.example", "app", "1.0")
	app.AddConfiguration("api")

	_, err := pomdep.Resolve(context.Background(), component.NewUniverse(app), app)
	require.Error(t, err)

	var notFound *pomdep.ConfigurationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "compile", notFound.Requested)
	assert.Equal(t, app.ID(), notFound.TargetComponent)
}

func TestResolveTargetConfigurationMismatchPropagates(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	odd := component.New("org.example", "odd", "1.0")
	odd.AddConfiguration("api")

	mustConfig(t, app, "compile").AddDependency(ordinary("odd", "1.0"))

	_, err := pomdep.Resolve(context.Background(), component.NewUniverse(app, odd), app)
	require.Error(t, err)

	var notFound *pomdep.ConfigurationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, app.ID(), notFound.FromComponent)
	assert.Equal(t, "compile", notFound.FromConfiguration)
	assert.Equal(t, odd.ID(), notFound.TargetComponent)
}

func TestResolveMaxDepth(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")
	b := component.NewMaven("org.example", "b", "1.0")
	c := component.NewMaven("org.example", "c", "1.0")

	mustConfig(t, app, "compile").AddDependency(ordinary("b", "1.0"))
	mustConfig(t, b, "compile").AddDependency(ordinary("c", "1.0"))

	universe := component.NewUniverse(app, b, c)

	_, err := pomdep.Resolve(context.Background(), universe, app, pomdep.WithMaxDepth(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum 1")

	_, err = pomdep.Resolve(context.Background(), universe, app, pomdep.WithMaxDepth(2))
	assert.NoError(t, err)
}

func TestResolveHonorsContextCancellation(t *testing.T) {
	app := component.NewMaven("org.example", "app", "1.0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pomdep.Resolve(ctx, component.NewUniverse(app), app)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewResolverValidation(t *testing.T) {
	universe := component.NewUniverse()

	_, err := pomdep.NewResolver(nil)
	assert.Error(t, err)

	_, err = pomdep.NewResolver(universe, pomdep.WithRootConfiguration(""))
	assert.Error(t, err)

	_, err = pomdep.NewResolver(universe, pomdep.WithMaxDepth(0))
	assert.Error(t, err)
}

// mustConfig fetches an already-declared configuration for building.
func mustConfig(t *testing.T, c *component.Component, name string) *component.Config {
	t.Helper()
	cfg, ok := c.Config(name)
	require.True(t, ok, "configuration %s missing on %s", name, c.ID())
	return cfg
}
