// Package main provides the CLI entrypoint for anya.
package main

func main() {
	Execute()
}
