package main

import "media-review/cmd"

func main() {
	cmd.Execute()
}
