// credit is a tool for measuring the contributions made to Github
// repositories: response times to Issues and Pull Requests, merge rates,
// and the people behind them.
//
// Usage:
//
//	credit repo fosskers/aura
//	credit users --location Japan
//	credit limit
package main

import (
	"github.com/fosskers/credit/cmd"
)

// Version is the current version of credit.
// It can be overridden at build time using:
//
//	go build -ldflags="-X main.Version=v1.0.0"
var Version = "dev"

func main() {
	cmd.Version = Version
	cmd.Execute()
}
