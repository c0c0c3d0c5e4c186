package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/fobware/keyless/keys"
)

// KeygenCommand creates the keygen command
func KeygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Provision an RSA key pair: public half for the vehicle, private half for the fob",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "Directory to write the PEM files to",
				Value: ".",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Base name for the key files",
				Value: "fob",
			},
			&cli.IntFlag{
				Name:  "bits",
				Usage: "RSA modulus size in bits",
				Value: 2048,
			},
		},
		Action: runKeygenCommand,
	}
}

func runKeygenCommand(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	bits := int(cmd.Int("bits"))
	privateKey, err := keys.Generate(bits)
	if err != nil {
		return fmt.Errorf("failed to generate key pair: %w", err)
	}

	privPath, pubPath, err := keys.SavePair(cmd.String("out-dir"), cmd.String("name"), privateKey)
	if err != nil {
		return fmt.Errorf("failed to save key pair: %w", err)
	}

	log.Info("key pair provisioned",
		zap.Int("bits", bits),
		zap.String("private", privPath),
		zap.String("public", pubPath))
	return nil
}

func newLogger() (*zap.Logger, error) {
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}
