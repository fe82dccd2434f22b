package main

import "friendsnap-backend/cmd"

func main() {
	cmd.Run()
}
