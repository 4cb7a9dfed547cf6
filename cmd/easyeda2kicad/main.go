package main

import "github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/cmd/easyeda2kicad/cmd"

func main() {
	cmd.Execute()
}
