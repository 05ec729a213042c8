package main

import (
	"context"

	"deathreport/internal/cli"
)

func main() {
	cli.Execute(context.Background())
}
