// Command typedstore inspects and manages versioned JSON storage files.
package main

import "github.com/custodia-labs/typedstore/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
