package pomdep

import "fmt"

// Scope is the POM scope a dependency was declared with. It indicates when
// the dependency is needed and decides which configuration of the declaring
// component the dependency is attached to.
type Scope int

const (
	// ScopeCompile dependencies are needed to compile against the module
	// and propagate to consumers.
	ScopeCompile Scope = iota

	// ScopeRuntime dependencies are needed at execution time only.
	ScopeRuntime

	// ScopeProvided dependencies are expected to be supplied by the
	// runtime environment and do not propagate.
	ScopeProvided

	// ScopeTest dependencies are only needed to compile and run tests.
	ScopeTest

	// ScopeSystem dependencies are like provided ones but resolved from an
	// explicit path rather than a repository.
	ScopeSystem

	// ScopeImport marks a dependency-management import; it only ever
	// appears on constraint-only declarations.
	ScopeImport
)

var scopeNames = map[Scope]string{
	ScopeCompile:  "compile",
	ScopeRuntime:  "runtime",
	ScopeProvided: "provided",
	ScopeTest:     "test",
	ScopeSystem:   "system",
	ScopeImport:   "import",
}

// String returns the lowercase POM spelling of the scope.
func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// Configuration returns the name of the configuration a dependency with
// this scope belongs to on the declaring component. System scope shares
// the provided configuration; import scope contributes constraints to
// compile.
func (s Scope) Configuration() string {
	switch s {
	case ScopeSystem:
		return "provided"
	case ScopeImport:
		return "compile"
	default:
		return s.String()
	}
}

// ParseScope parses the POM spelling of a scope. An empty string parses to
// ScopeCompile, matching the POM default.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "compile":
		return ScopeCompile, nil
	case "runtime":
		return ScopeRuntime, nil
	case "provided":
		return ScopeProvided, nil
	case "test":
		return ScopeTest, nil
	case "system":
		return ScopeSystem, nil
	case "import":
		return ScopeImport, nil
	default:
		return ScopeCompile, fmt.Errorf("unknown dependency scope %q", s)
	}
}

// DependencyKind classifies a dependency declaration. The three kinds are
// mutually exclusive by construction; the flags a descriptor exposes
// (IsTransitive, IsOptional, IsConstraint) all derive from it.
type DependencyKind int

const (
	// KindOrdinary is a normal declared dependency, transitive by default.
	KindOrdinary DependencyKind = iota

	// KindOptional is a dependency declared with <optional>true</optional>.
	// It is never transitive; its excludes and artifact overrides are
	// ignored, and it only contributes to version alignment.
	KindOptional

	// KindConstraintOnly is a dependency-management entry: it influences
	// version selection but contributes no dependency edge. Its excludes
	// still apply.
	KindConstraintOnly
)

// String returns a short name for the kind.
func (k DependencyKind) String() string {
	switch k {
	case KindOrdinary:
		return "ordinary"
	case KindOptional:
		return "optional"
	case KindConstraintOnly:
		return "constraint"
	default:
		return fmt.Sprintf("DependencyKind(%d)", int(k))
	}
}
