package main

import "github.com/andresmejia3/tonematch/cmd"

func main() {
	cmd.Execute()
}
