// Package main provides the entry point for the liveapi service.
package main

func main() {
	Execute()
}
