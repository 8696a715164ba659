// Package main provides the recipe CLI, the build configuration declarator
// for the C++ playground.
package main

func main() {
	Execute()
}
