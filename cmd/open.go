package cmd

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/fobware/keyless/freshness"
	"github.com/fobware/keyless/handshake"
	"github.com/fobware/keyless/keys"
	"github.com/fobware/keyless/transport"
)

// OpenCommand creates the open command
func OpenCommand() *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Run one keyless-entry handshake between a fob and a vehicle",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "private-key",
				Usage: "Path to the fob's PEM private key (an ephemeral pair is generated when omitted)",
			},
			&cli.StringFlag{
				Name:  "public-key",
				Usage: "Path to the vehicle's PEM public key (defaults to the private key's pair)",
			},
			&cli.IntFlag{
				Name:  "bits",
				Usage: "Modulus size for an ephemeral pair",
				Value: 2048,
			},
			&cli.DurationFlag{
				Name:  "window",
				Usage: "Freshness window the vehicle enforces",
				Value: freshness.Window,
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "Simulated delivery latency between initiation and processing",
			},
		},
		Action: runOpenCommand,
	}
}

func runOpenCommand(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	privateKey, publicKey, err := loadOrGenerateKeys(cmd, log)
	if err != nil {
		return err
	}

	// The vehicle's clock runs ahead by the simulated latency, so a
	// large enough --delay demonstrates stale-token rejection.
	vehicleClock := handshake.Clock(time.Now)
	if delay := cmd.Duration("delay"); delay > 0 {
		vehicleClock = func() time.Time { return time.Now().Add(delay) }
	}

	fob := handshake.NewFob(privateKey, nil, log)
	vehicle := handshake.NewVehicle(publicKey, cmd.Duration("window"), vehicleClock, log)

	medium := transport.NewMedium()
	medium.Attach(vehicle)
	medium.Attach(fob)

	initiation, err := fob.Initiate()
	if err != nil {
		return fmt.Errorf("failed to initiate handshake: %w", err)
	}
	medium.Broadcast(initiation)
	medium.Drain()

	if !fob.Completed() {
		return errors.New("handshake did not complete: vehicle rejected the request")
	}
	log.Info("handshake complete")
	return nil
}

// loadOrGenerateKeys resolves the key material for one run: PEM files
// when provided, otherwise an ephemeral in-memory pair.
func loadOrGenerateKeys(cmd *cli.Command, log *zap.Logger) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privPath := cmd.String("private-key")
	if privPath == "" {
		bits := int(cmd.Int("bits"))
		log.Info("provisioning ephemeral key pair", zap.Int("bits", bits))
		privateKey, err := keys.Generate(bits)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate key pair: %w", err)
		}
		return privateKey, &privateKey.PublicKey, nil
	}

	privateKey, err := keys.LoadPrivateKey(privPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load private key: %w", err)
	}

	publicKey := &privateKey.PublicKey
	if pubPath := cmd.String("public-key"); pubPath != "" {
		publicKey, err = keys.LoadPublicKey(pubPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load public key: %w", err)
		}
	}
	return privateKey, publicKey, nil
}
