package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/haukened/wiredns/internal/dns/cache"
	"github.com/haukened/wiredns/internal/dns/common/clock"
	"github.com/haukened/wiredns/internal/dns/common/log"
	"github.com/haukened/wiredns/internal/dns/config"
	"github.com/haukened/wiredns/internal/dns/domain"
	"github.com/haukened/wiredns/internal/dns/keyring"
	"github.com/haukened/wiredns/internal/dns/packet"
	"github.com/haukened/wiredns/internal/dns/replay"
)

const (
	version = "0.1.0-dev"
	appName = "wiredns-tool"
)

// Application is the composition root: it owns every long-lived
// dependency (config, keyring, render cache, clock, signer, replay
// guard) that the subcommands below share; logging goes through the
// package-level log functions. The packet codec itself takes no
// configuration and is never a field here — only the CLI is.
type Application struct {
	config  *config.AppConfig
	keys    *keyring.Store
	renders *cache.RenderCache
	clock   clock.Clock
	signer  packet.Signer
	replay  *replay.Guard
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{"version": version, "env": cfg.Env}, "starting "+appName)

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "failed to build application")
	}
	defer app.keys.Close()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var cmdErr error
	switch os.Args[1] {
	case "decode":
		cmdErr = app.runDecode(os.Args[2:])
	case "query":
		cmdErr = app.runQuery(os.Args[2:])
	case "sign":
		cmdErr = app.runSign(os.Args[2:])
	case "verify":
		cmdErr = app.runVerify(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], cmdErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `%s: DNS wire message inspection and TSIG signing tool

Usage:
  %s decode                          read a hex-encoded message on stdin, print its dump
  %s query -name NAME -type TYPE     build and hex-encode a query message
  %s sign -key NAME                  read a hex message on stdin, append a TSIG record, print the result
  %s verify -key NAME                read a hex message on stdin, verify its trailing TSIG record
`, appName, appName, appName, appName, appName)
}

// buildApplication constructs the shared dependencies every subcommand
// draws on, following the same "load config, open stores, hand back one
// struct" shape a long-running server's composition root uses.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	store, err := keyring.Open(cfg.KeyringPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	renders, err := cache.New(256)
	if err != nil {
		return nil, fmt.Errorf("failed to build render cache: %w", err)
	}
	return &Application{
		config:  cfg,
		keys:    store,
		renders: renders,
		clock:   clock.RealClock{},
		signer:  packet.HMACSigner{},
		replay:  replay.NewGuard(uint64(cfg.ReplayFilterCapacity), cfg.ReplayFilterFPRate),
	}, nil
}

func (app *Application) runDecode(_ []string) error {
	raw, err := readHexStdin()
	if err != nil {
		return err
	}
	p, err := packet.Decode(raw, true)
	if err != nil {
		fmt.Fprintln(os.Stdout, p.StringCached(app.renders))
		return err
	}
	fmt.Fprintln(os.Stdout, p.StringCached(app.renders))
	return nil
}

func (app *Application) runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	name := fs.String("name", "", "query name")
	qtype := fs.String("type", "A", "query type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rrtype := domain.RRTypeFromString(*qtype)
	if rrtype == 0 {
		return fmt.Errorf("unknown query type %q", *qtype)
	}
	q, err := packet.NewQuery(*name, rrtype, domain.RRClassIN)
	if err != nil {
		return err
	}
	wireBytes, err := q.Encode()
	if err != nil {
		return err
	}
	if uint(len(wireBytes)) > app.config.MaxUDPSize {
		log.Warn(map[string]any{"size": len(wireBytes), "max": app.config.MaxUDPSize}, "query exceeds configured MaxUDPSize")
	}
	fmt.Fprintln(os.Stdout, hex.EncodeToString(wireBytes))
	return nil
}

func (app *Application) runSign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	keyName := fs.String("key", "", "TSIG key name registered in the keyring")
	fudge := fs.Uint("fudge", 300, "allowed clock skew in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	algorithm, key, err := app.keys.Get(*keyName)
	if err != nil {
		return fmt.Errorf("looking up key %q: %w", *keyName, err)
	}
	raw, err := readHexStdin()
	if err != nil {
		return err
	}
	p, err := packet.Decode(raw, false)
	if err != nil {
		return err
	}
	if _, err := packet.SignTSIG(p, app.signer, app.clock, *keyName, algorithm, key, uint16(*fudge), nil); err != nil {
		return err
	}
	signed, err := p.Encode()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, hex.EncodeToString(signed))
	return nil
}

func (app *Application) runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	keyName := fs.String("key", "", "TSIG key name registered in the keyring")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, key, err := app.keys.Get(*keyName)
	if err != nil {
		return fmt.Errorf("looking up key %q: %w", *keyName, err)
	}
	raw, err := readHexStdin()
	if err != nil {
		return err
	}
	p, err := packet.Decode(raw, false)
	if err != nil {
		return err
	}
	mac, err := packet.VerifyTSIG(p, app.signer, app.clock, key, nil)
	if err != nil {
		return err
	}
	if app.replay.Seen(p.Header.ID, mac) {
		return fmt.Errorf("message id %d already verified: possible replay", p.Header.ID)
	}
	app.replay.Mark(p.Header.ID, mac)
	fmt.Fprintln(os.Stdout, "OK")
	return nil
}

func readHexStdin() ([]byte, error) {
	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	trimmed := trimSpaceBytes(text)
	raw, err := hex.DecodeString(string(trimmed))
	if err != nil {
		return nil, fmt.Errorf("stdin is not valid hex: %w", err)
	}
	return raw, nil
}

func trimSpaceBytes(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
