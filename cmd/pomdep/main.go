// Command pomdep resolves POM-shaped dependency metadata against a
// component universe file and prints the resolved modules or graph.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
