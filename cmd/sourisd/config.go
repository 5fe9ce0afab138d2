package main

import "github.com/spf13/pflag"

// config holds the daemon's startup flags, bound with pflag the way pebble's
// and erigon's command trees bind theirs rather than the bare flag package.
type config struct {
	listenAddr   string
	logLevel     string
	baseLocation string
}

func parseConfig(args []string) (*config, error) {
	fs := pflag.NewFlagSet("sourisd", pflag.ContinueOnError)

	cfg := &config{}
	fs.StringVar(&cfg.listenAddr, "listen", "127.0.0.1:2256", "address to listen on")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.baseLocation, "base-location", "", "override the resolved on-disk base location")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}
