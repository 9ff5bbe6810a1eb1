package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/bluecup/internal/cli"
)

func main() {

	ctx := context.Background()
	app := cli.NewApp(os.Stdin, os.Stdout)

	if err := app.RootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}

}
