// Command storefront drives the customer-side cart and checkout against the
// order service from a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/pkg/logger"
	"zaylux-store/internal/storefront/session"
)

const usage = `usage: storefront <command> [flags]

commands:
  products [-category perfume|drone|watch]
  add -id <product id> [-qty n]
  update -id <product id> -qty n
  remove -id <product id>
  cart
  clear
  coupon -code <code>
  checkout -name <name> -phone <phone> -city <city> -address <address> [-coupon <code>]
  track -order <public order id> -phone <phone>
  notify -id <product id> -phone <phone> [-name <name>]
  lang [en|ar]
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("missing command")
	}

	cfg, err := config.LoadStorefrontConfig()
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(cfg.Log, stderr).Slog()

	s, err := session.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn("failed to close store", "error", err)
		}
	}()

	cli := &cli{session: s, out: stdout}
	cmd, ok := cli.commands()[args[0]]
	if !ok {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	return cmd(ctx, fs, args[1:])
}
