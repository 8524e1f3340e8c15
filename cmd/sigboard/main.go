package main

import "github.com/nfrund/sigboard/cmd/sigboard/cmd"

func main() {
	cmd.Execute()
}
