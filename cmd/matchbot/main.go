// Command matchbot is a REPL front end for the match tree engine: it loads
// a YAML rule file and answers queries typed at stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/ff/v3"

	"github.com/helix90/matchtree/engine"
	"github.com/helix90/matchtree/rules"
)

type config struct {
	rulesPath string
	debug     bool
}

func setupConfig() (config, error) {
	fs := flag.NewFlagSet("matchbot", flag.ExitOnError)

	var cfg config
	fs.StringVar(&cfg.rulesPath, "rules", os.Getenv("MATCHBOT_RULES"), "path to a YAML rule file")
	fs.BoolVar(&cfg.debug, "debug", false, "enable debug logging")

	var configFile string
	fs.StringVar(&configFile, "config", "", "config file path")

	err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("MATCHBOT"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
	)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if cfg.rulesPath == "" {
		return cfg, fmt.Errorf("no rule file given: set -rules or MATCHBOT_RULES")
	}
	return cfg, nil
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	cfg, err := setupConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(cfg.debug)

	loaded, err := rules.LoadFile(cfg.rulesPath)
	if err != nil {
		log.Error("loading rules", "error", err, "path", cfg.rulesPath)
		os.Exit(1)
	}

	tree := engine.NewTree(engine.NewDefaultLemmatizer(), engine.WithLogger(log))
	for _, r := range loaded {
		tree.Add(r)
	}
	log.Info("rules loaded", "count", len(loaded), "path", cfg.rulesPath)

	fmt.Println("matchbot")
	fmt.Println("Type 'quit' or 'exit' to exit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			fmt.Println("goodbye")
			break
		}

		queryID := uuid.New().String()
		response, trail := tree.GetResponse(input)
		if response == "" {
			log.Debug("no match", "query_id", queryID, "input", input)
			fmt.Println("(no match)")
			fmt.Println()
			continue
		}

		log.Debug("matched", "query_id", queryID, "input", input, "trail", trail)
		fmt.Println(response)
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		log.Error("reading input", "error", err)
		os.Exit(1)
	}
}
