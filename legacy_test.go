package pomdep_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pomdep "github.com/albertocavalcante/go-pomdep"
	"github.com/albertocavalcante/go-pomdep/component"
)

var fromID = pomdep.ComponentID{Group: "org.example", Name: "app", Version: "1.0"}

func mustSelect(t *testing.T, fromConfiguration string, target pomdep.TargetComponent) pomdep.ConfigurationSelection {
	t.Helper()
	selection, err := pomdep.SelectLegacyConfigurations(fromID, fromConfiguration, target, nil)
	require.NoError(t, err)
	return selection
}

func TestSelectFromCompilePicksCompileOnly(t *testing.T) {
	target := component.New("org.example", "lib", "1.0")
	target.AddConfiguration("compile")
	target.AddConfiguration("runtime", "compile")

	selection := mustSelect(t, "compile", target)

	assert.Equal(t, []string{"compile"}, selection.Names())
	assert.False(t, selection.NeedsAttributeMatching)
}

func TestSelectFromRuntimeWhenRuntimeExtendsCompile(t *testing.T) {
	target := component.New("org.example", "lib", "1.0")
	target.AddConfiguration("compile")
	target.AddConfiguration("runtime", "compile")

	selection := mustSelect(t, "runtime", target)

	// runtime already carries the compile dependencies via its hierarchy,
	// so compile is not selected a second time.
	assert.Equal(t, []string{"runtime"}, selection.Names())
}

func TestSelectFromRuntimeWhenRuntimeIsStandalone(t *testing.T) {
	target := component.New("org.example", "lib", "1.0")
	target.AddConfiguration("compile")
	target.AddConfiguration("runtime")

	selection := mustSelect(t, "runtime", target)

	assert.Equal(t, []string{"runtime", "compile"}, selection.Names())
}

func TestSelectFallsBackToDefaultAndDeduplicates(t *testing.T) {
	// A target published under an older metadata scheme: one "default"
	// configuration and nothing else. Both the runtime and compile lookups
	// land on it, and it must appear once.
	target := component.New("org.example", "legacy", "0.9")
	target.AddConfiguration("default")

	for _, from := range []string{"compile", "runtime", "test", "anything"} {
		t.Run("from "+from, func(t *testing.T) {
			selection := mustSelect(t, from, target)
			assert.Equal(t, []string{"default"}, selection.Names())
		})
	}
}

func TestSelectIncludesMasterOnlyWhenNonEmpty(t *testing.T) {
	dep := pomdep.NewDependencyDescriptor(
		pomdep.ModuleSelector{Group: "org.example", Name: "extra", Version: "1.0"},
		pomdep.ScopeCompile, pomdep.KindOrdinary, nil, nil)

	tests := []struct {
		name  string
		build func(*component.Config)
		want  []string
	}{
		{
			name:  "master with an artifact",
			build: func(m *component.Config) { m.AddArtifact(pomdep.DefaultArtifact("lib")) },
			want:  []string{"compile", "master"},
		},
		{
			name:  "master with a dependency",
			build: func(m *component.Config) { m.AddDependency(dep) },
			want:  []string{"compile", "master"},
		},
		{
			name:  "empty master",
			build: func(*component.Config) {},
			want:  []string{"compile"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := component.New("org.example", "lib", "1.0")
			target.AddConfiguration("compile")
			tt.build(target.AddConfiguration("master"))

			selection := mustSelect(t, "compile", target)
			assert.Equal(t, tt.want, selection.Names())
		})
	}
}

func TestSelectMavenComponentShape(t *testing.T) {
	// NewMaven attaches the main jar to master, so every selection from a
	// POM-published component includes master.
	target := component.NewMaven("org.example", "lib", "1.0")

	assert.Equal(t, []string{"compile", "master"}, mustSelect(t, "compile", target).Names())
	assert.Equal(t, []string{"runtime", "master"}, mustSelect(t, "runtime", target).Names())
	assert.Equal(t, []string{"runtime", "master"}, mustSelect(t, "test", target).Names())
}

func TestSelectConfigurationNotFound(t *testing.T) {
	// Neither the requested configuration nor "default" exists.
	target := component.New("org.example", "odd", "2.0")
	target.AddConfiguration("api")

	_, err := pomdep.SelectLegacyConfigurations(fromID, "runtime", target, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, pomdep.ErrConfigurationNotFound)

	var notFound *pomdep.ConfigurationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, fromID, notFound.FromComponent)
	assert.Equal(t, "runtime", notFound.FromConfiguration)
	assert.Equal(t, target.ID(), notFound.TargetComponent)
	assert.Equal(t, "runtime", notFound.Requested)
	assert.Contains(t, err.Error(), "org.example:odd:2.0")
	assert.Contains(t, err.Error(), `configuration "runtime"`)
}

type stubReporter struct{ calls int }

func (r *stubReporter) ConfigurationNotFound(from pomdep.ComponentID, fromConfiguration string, target pomdep.ComponentID, requested string) error {
	r.calls++
	return fmt.Errorf("stub: %s -> %s wants %s", from, target, requested)
}

func TestSelectUsesInjectedFailureReporter(t *testing.T) {
	target := component.New("org.example", "odd", "2.0")

	reporter := &stubReporter{}
	_, err := pomdep.SelectLegacyConfigurations(fromID, "compile", target, reporter)
	require.Error(t, err)
	assert.Equal(t, 1, reporter.calls)
	assert.EqualError(t, err, "stub: org.example:app:1.0 -> org.example:odd:2.0 wants compile")
	assert.False(t, errors.Is(err, pomdep.ErrConfigurationNotFound),
		"injected reporters control the error type themselves")
}
