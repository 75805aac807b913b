package main

import (
	"context"

	"github.com/ougirez/covidstats/cmd/covidstats/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
