// This is free and unencumbered software released into the public domain.
// See the UNLICENSE file for details.

// Package main - classicrypt is a toolkit of classical ciphers: the Caesar
// and keyed Caesar shift, the Playfair digraph cipher, the PC-1 step of the
// DES key schedule and frequency analysis of monoalphabetic substitutions.
package main

import "github.com/bgallie/classicrypt/cmd"

func main() {
	cmd.Execute()
}
