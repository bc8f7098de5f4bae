package main

import "github.com/redactyl/litscan/cmd/litscan"

func main() { litscan.Execute() }
