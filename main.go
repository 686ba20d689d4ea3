package main

import "github.com/o1x3/profile-stats/cmd"

func main() {
	cmd.Execute()
}
