// bloomsearch builds and queries Bloom filter search corpora.
//
// Usage:
//
//	bloomsearch build   [--pages DIR] [--corpus FILE]
//	bloomsearch search  [--corpus FILE] [--min-score N] QUERY...
//	bloomsearch watch   [--pages DIR] [--corpus FILE]
//	bloomsearch inspect [--corpus FILE]
//
// Every command accepts --config FILE; see package config for the file
// format and the environment variables that override it. search and inspect
// read the corpus from a blob container instead when the config selects
// source: blob.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-bloomsearch/config"
	"github.com/forestrie/go-bloomsearch/store"
	"github.com/spf13/pflag"
)

const serviceName = "bloomsearch"

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

var commands = []command{
	{"build", "index a pages directory into a corpus file", runBuild},
	{"search", "rank the documents of a corpus against a query", runSearch},
	{"watch", "rebuild the corpus whenever the pages change", runWatch},
	{"inspect", "describe the documents and filters of a corpus", runInspect},
}

// environment is what every command gets once common flags are parsed.
type environment struct {
	cfg    *config.Config
	log    logger.Logger
	stdout io.Writer

	// source overrides the corpus source cfg selects.
	source store.Source
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stdout)
		return nil
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}

		flagSet := pflag.NewFlagSet(c.name, pflag.ContinueOnError)
		flags := addCommonFlags(flagSet)
		if err := flagSet.Parse(args[1:]); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return nil
			}
			return err
		}

		cfg, err := flags.load()
		if err != nil {
			return err
		}

		logger.New(cfg.LogLevel)
		defer logger.OnExit()

		env := &environment{
			cfg:    cfg,
			log:    logger.Sugar.WithServiceName(serviceName),
			stdout: stdout,
		}
		return c.run(ctx, env, flagSet.Args())
	}
	return fmt.Errorf("unknown command %q, run with --help for a list", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [flags]\n\nCommands:\n", serviceName)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nRun '%s <command> --help' for the flags of a command.\n", serviceName)
}
