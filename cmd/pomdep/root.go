package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	pomdep "github.com/albertocavalcante/go-pomdep"
	"github.com/albertocavalcante/go-pomdep/component"
)

// version is set via build-time ldflags.
var version = "dev"

var (
	universePath string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "pomdep",
	Short: "Resolve POM-shaped dependency metadata into a configuration graph",
	Long: `pomdep resolves dependency declarations sourced from POM-shaped metadata
against a component universe described in a TOML file, using the legacy
named-configuration selection rules (compile/runtime/master with a
"default" fallback).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&universePath, "universe", "u", "universe.toml", "Path to the TOML component universe")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable resolution debug logging")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(graphCmd)
}

// newLogger returns the resolution logger: silent unless --verbose.
func newLogger() *slog.Logger {
	if !verbose {
		return nil
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "pomdep",
		Level:  log.DebugLevel,
	})
	return slog.New(handler)
}

// parseCoordinates parses "group:name:version".
func parseCoordinates(s string) (group, name, ver string, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("expected group:name:version, got %q", s)
	}
	return parts[0], parts[1], parts[2], nil
}

// loadRoot loads the universe and looks up the root component in it.
func loadRoot(coordinates string) (*component.Universe, *component.Component, error) {
	group, name, ver, err := parseCoordinates(coordinates)
	if err != nil {
		return nil, nil, err
	}
	universe, err := component.LoadUniverse(universePath)
	if err != nil {
		return nil, nil, err
	}
	root, err := universe.Get(group, name, ver)
	if err != nil {
		return nil, nil, err
	}
	return universe, root, nil
}

// parseScopes parses a comma-separated scope list.
func parseScopes(s string) ([]pomdep.Scope, error) {
	var scopes []pomdep.Scope
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		scope, err := pomdep.ParseScope(part)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}
	if len(scopes) == 0 {
		return nil, fmt.Errorf("no scopes given")
	}
	return scopes, nil
}
