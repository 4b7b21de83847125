// Command jekyllpipe converts static site HTML pages into Jekyll fragments.
package main

import "github.com/gaurav-prasanna/jekyllpipe/cmd"

func main() {
	cmd.Execute()
}
