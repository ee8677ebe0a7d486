package main

import "github.com/xcke/bytesafe/internal/cmd"

func main() {
	cmd.Execute()
}
