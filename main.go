package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fobware/keyless/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "keyless",
		Usage: "Keyless-entry handshake simulator",
		Commands: []*cli.Command{
			cmd.KeygenCommand(),
			cmd.OpenCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
