// perfgate is the load-test feedback CLI: analyze, trends, compare, status,
// archive, serve.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
