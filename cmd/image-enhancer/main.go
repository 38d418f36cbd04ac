package main

import (
	"image-enhancer/cmd/image-enhancer/cmd"
)

func main() {
	cmd.Execute()
}
