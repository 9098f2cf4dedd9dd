// Package main provides a minimal static file server over raw TCP.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/f4ah6o/webserver-go/internal/config"
	"github.com/f4ah6o/webserver-go/internal/linkcheck"
	"github.com/f4ah6o/webserver-go/internal/server"
)

const version = "0.1.0"

func main() {
	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		runServe(args)
	case "check":
		os.Exit(runCheck(args))
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("")
	fmt.Println("  webserver [serve] [-config file] [-env file]")
	fmt.Println("  \tServe files from the root directory.")
	fmt.Println("  webserver check [-config file] [-env file]")
	fmt.Println("  \tReport links in served pages that would return 404.")
	fmt.Println("  webserver version")
	fmt.Println("  \tPrint version info.")
}

// loadConfig parses the shared flags and builds the configuration:
// defaults, then the config file, then dotenv and the environment.
func loadConfig(name string, args []string) (config.Config, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := fs.String("config", "", "TOML or YAML config file")
	envPath := fs.String("env", ".env", "dotenv file (ignored when missing)")
	fs.Parse(args)

	cfg := config.Default()
	if *configPath != "" {
		if err := cfg.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.LoadEnv(*envPath); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runServe(args []string) {
	cfg, err := loadConfig("serve", args)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	s := server.New(cfg, log.Default())
	ln, err := s.Listen()
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}

	color.New(color.FgCyan, color.Bold).Printf("Server listening on %s:%d...\n", cfg.Address, cfg.Port)
	fmt.Printf("Serving %s\n", cfg.Root)

	if err := s.Serve(ln); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func runCheck(args []string) int {
	cfg, err := loadConfig("check", args)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	report, err := linkcheck.New(cfg.Root).Run()
	if err != nil {
		log.Printf("Link check failed: %v", err)
		return 1
	}

	report.Print(os.Stdout)
	if !report.OK() {
		return 1
	}
	return 0
}
