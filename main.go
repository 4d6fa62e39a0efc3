package main

import "github.com/PolarWolf314/ssh-keys/cmd"

func main() {
	cmd.Execute()
}
