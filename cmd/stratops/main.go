package main

import (
	"context"
	"fmt"
	"os"

	"github.com/stratops/stratops/cmd/commands"
)

func main() {
	if err := commands.Execute(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
