package pomdep

// ConfigurationView is the read-only view of one named configuration on a
// target component, as needed by legacy configuration selection.
//
// Implementations must be safe for concurrent read access.
type ConfigurationView interface {
	// Name returns the configuration name.
	Name() string

	// Hierarchy returns the names of all configurations this one extends,
	// transitively, including itself.
	Hierarchy() []string

	// Dependencies returns the dependency descriptors visible on this
	// configuration, including inherited ones.
	Dependencies() []DependencyDescriptor

	// Artifacts returns the artifacts this configuration resolves to,
	// including inherited ones.
	Artifacts() []ArtifactName
}

// TargetComponent is the read-only view of the component a dependency edge
// points at.
//
// Implementations must be safe for concurrent read access.
type TargetComponent interface {
	// ID identifies the component.
	ID() ComponentID

	// Configuration returns the named configuration, if it exists.
	Configuration(name string) (ConfigurationView, bool)
}

// FailureReporter constructs the failure returned when legacy selection
// cannot find a target configuration. It constructs the error; it does not
// raise it. The selector propagates whatever it returns.
type FailureReporter interface {
	ConfigurationNotFound(from ComponentID, fromConfiguration string, target ComponentID, requested string) error
}

// defaultFailureReporter returns *ConfigurationNotFoundError values.
type defaultFailureReporter struct{}

func (defaultFailureReporter) ConfigurationNotFound(from ComponentID, fromConfiguration string, target ComponentID, requested string) error {
	return &ConfigurationNotFoundError{
		FromComponent:     from,
		FromConfiguration: fromConfiguration,
		TargetComponent:   target,
		Requested:         requested,
	}
}

// ConfigurationSelection is the outcome of legacy configuration selection:
// the ordered, deduplicated set of target configurations to traverse.
type ConfigurationSelection struct {
	// Configurations are the selected configurations in selection order.
	// Order only matters for diagnostics, never for semantics.
	Configurations []ConfigurationView

	// NeedsAttributeMatching tells the caller whether variant attribute
	// matching must still run. Always false for the legacy path: the
	// selected configurations are final.
	NeedsAttributeMatching bool
}

// Names returns the selected configuration names in selection order.
func (s ConfigurationSelection) Names() []string {
	names := make([]string, len(s.Configurations))
	for i, c := range s.Configurations {
		names[i] = c.Name()
	}
	return names
}

// SelectLegacyConfigurations decides which of the target's named
// configurations participate in resolving an edge that leaves
// fromConfiguration on the component identified by from.
//
// The selection rules:
//   - If the edge is sourced from a configuration named "compile", choose
//     the target's "compile", or "default" if it has none.
//   - Otherwise choose "runtime" (or "default"), and additionally
//     "compile" (or "default") unless the chosen configuration already
//     extends "compile".
//   - Always include "master" if it exists and carries at least one
//     dependency or artifact. It is a side-channel configuration used to
//     attach extra artifacts and dependencies outside the main hierarchy.
//
// The "default" fallback accommodates targets published under older
// metadata schemes that declare a single configuration. When neither the
// requested configuration nor "default" exists, the failure constructed by
// failures is returned; passing a nil failures uses a reporter that
// returns *ConfigurationNotFoundError. The failure is fatal to resolving
// this one edge and is never retried: a target's configuration set is
// static for a resolution run.
func SelectLegacyConfigurations(from ComponentID, fromConfiguration string, target TargetComponent, failures FailureReporter) (ConfigurationSelection, error) {
	if failures == nil {
		failures = defaultFailureReporter{}
	}

	var result []ConfigurationView
	requiresCompile := fromConfiguration == "compile"
	if !requiresCompile {
		// From every configuration other than compile, include both the
		// runtime and compile dependencies.
		runtime, err := findTargetConfiguration(from, fromConfiguration, target, "runtime", failures)
		if err != nil {
			return ConfigurationSelection{}, err
		}
		result = append(result, runtime)
		requiresCompile = !hierarchyContains(runtime, "compile")
	}
	if requiresCompile {
		// From compile, or when the target's runtime configuration does
		// not extend compile, include the compile dependencies.
		compile, err := findTargetConfiguration(from, fromConfiguration, target, "compile", failures)
		if err != nil {
			return ConfigurationSelection{}, err
		}
		if len(result) == 0 || result[0].Name() != compile.Name() {
			result = append(result, compile)
		}
	}
	if master, ok := target.Configuration("master"); ok {
		if len(master.Dependencies()) > 0 || len(master.Artifacts()) > 0 {
			result = append(result, master)
		}
	}
	return ConfigurationSelection{Configurations: result}, nil
}

// findTargetConfiguration resolves name on the target, falling back to
// "default" when absent.
func findTargetConfiguration(from ComponentID, fromConfiguration string, target TargetComponent, name string, failures FailureReporter) (ConfigurationView, error) {
	if c, ok := target.Configuration(name); ok {
		return c, nil
	}
	if c, ok := target.Configuration("default"); ok {
		return c, nil
	}
	return nil, failures.ConfigurationNotFound(from, fromConfiguration, target.ID(), name)
}

func hierarchyContains(c ConfigurationView, name string) bool {
	for _, h := range c.Hierarchy() {
		if h == name {
			return true
		}
	}
	return false
}
