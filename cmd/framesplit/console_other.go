//go:build !windows

package main

func attachParentConsole() {}
