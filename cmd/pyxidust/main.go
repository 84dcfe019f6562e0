package main

import "pyxidust/cmd/pyxidust/cmd"

func main() {
	cmd.Execute()
}
