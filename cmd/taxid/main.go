// Package main is the entry point for taxid, a generator and validator for
// 11-digit tax identification numbers.
package main

func main() {
	Execute()
}
