package main

import "github.com/trailhead-labs/funnelcast/cmd"

func main() {
	cmd.Execute()
}
