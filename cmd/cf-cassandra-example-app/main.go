// Command cf-cassandra-example-app stores and fetches string values in
// Cassandra tables, either from the command line or over HTTP.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
