package main

import (
	"context"
	"os"

	"github.com/terraincognita07/bloom/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
