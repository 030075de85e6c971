// Package config handles configuration for the CLI client.
package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/banksim/internal/flagx"
)

type Config struct {
	ServerEndpointAddr string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"
}

// parseFlags populates the client Config from command-line flags.
//
//	-e string   server endpoint address (e.g., "http://localhost:8080")
func parseFlags(c *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&c.ServerEndpointAddr, "e", c.ServerEndpointAddr, "server endpoint address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}
