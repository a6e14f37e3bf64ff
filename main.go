package main

import "github.com/minjae-dev/asset-management/cmd"

func main() {
	cmd.Execute()
}
