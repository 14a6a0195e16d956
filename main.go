package main

import "magazine/catalog/cmd"

func main() {
	cmd.Execute()
}
