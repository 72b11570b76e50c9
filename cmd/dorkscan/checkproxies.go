package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dorkscan/dorkscan/internal/config"
	"github.com/dorkscan/dorkscan/internal/proxy"
)

// NewCheckProxiesCmd creates the check-proxies command.
func NewCheckProxiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-proxies [proxy-url]...",
		Short: "Check which configured proxies are reachable",
		Long: `Check-proxies sends one request through each proxy and reports whether
it succeeded. Proxies come from arguments or from the configuration
file's proxies list.

The check is advisory: scan never removes failing proxies on its own.

Examples:
  # Check proxies given as arguments
  dorkscan check-proxies socks5://10.0.0.1:1080 http://10.0.0.2:8080

  # Check the pool from .dorkscan
  dorkscan check-proxies

  # Use a different probe target
  dorkscan check-proxies --target https://example.org socks5://10.0.0.1:1080`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckProxiesCmd,
	}

	cmd.Flags().String("target", proxy.DefaultCheckTarget,
		"URL fetched through each proxy")
	cmd.Flags().DurationP("timeout", "t", proxy.DefaultCheckTimeout,
		"Timeout per proxy check")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .dorkscan in current or home directory)")

	return cmd
}

// runCheckProxiesCmd executes the check-proxies command.
func runCheckProxiesCmd(cmd *cobra.Command, args []string) error {
	target, err := cmd.Flags().GetString("target")
	if err != nil {
		return err
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	raws := args
	if len(raws) == 0 {
		if configPath := config.FindConfigFile(configFlag); configPath != "" {
			cf, err := config.LoadConfigFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
			raws = cf.Proxies
		}
	}
	if len(raws) == 0 {
		return fmt.Errorf("no proxies to check: pass proxy URLs or configure them in %s", config.DefaultConfigFile)
	}

	pool, err := proxy.ParseAll(raws)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	fmt.Printf("Checking %d proxies against %s...\n\n", len(pool), target)

	start := time.Now()
	results := checkAll(ctx, pool, target, timeout)

	var reachable int
	for _, res := range results {
		if res.Reachable {
			reachable++
			fmt.Printf("  ✅ %s\n", res.Proxy)
		} else {
			fmt.Printf("  ✖️ %s: %s\n", res.Proxy, res.Detail)
		}
	}

	fmt.Printf("\n%d/%d reachable in %s\n", reachable, len(pool), time.Since(start).Round(time.Millisecond))
	if reachable == 0 {
		return fmt.Errorf("no reachable proxies")
	}
	return nil
}

// checkAll runs the health check for each proxy concurrently and returns
// results in pool order.
func checkAll(ctx context.Context, pool []*proxy.Proxy, target string, timeout time.Duration) []proxy.HealthResult {
	results := make([]proxy.HealthResult, len(pool))

	g := new(errgroup.Group)
	g.SetLimit(len(pool))
	for i, p := range pool {
		g.Go(func() error {
			results[i] = proxy.Check(ctx, p, target, timeout)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Checks never return errors

	return results
}
