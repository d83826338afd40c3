// Package main provides the hovertrans backend and its command line tools.
//
// Usage:
//
//	hovertrans serve
//	hovertrans translate --target ko "hello world"
//	hovertrans history list
//
// See --help for all available options.
package main

// @title hovertrans API
// @version 1.0
// @description Backend for the hovertrans select-to-translate extension.
// @BasePath /api
func main() {
	Execute()
}
