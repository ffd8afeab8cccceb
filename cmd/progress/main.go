package main

import "progresstracker/cmd/progress/root"

func main() {
	root.Execute()
}
