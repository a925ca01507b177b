package main

import "github.com/frahmantamala/sashbid/cmd"

func main() {
	cmd.Execute()
}
