package main

import "github.com/deploymenttheory/go-wetfmt/cmd"

func main() {
	cmd.Execute()
}
