package main

import (
	"github.com/forestrie/go-bloomsearch/config"
	"github.com/spf13/pflag"
)

// commonFlags override the loaded configuration when set.
type commonFlags struct {
	set *pflag.FlagSet

	configPath string
	pagesDir   string
	corpus     string
	minScore   float64
	workers    int
	stemming   bool
	logLevel   string
}

func addCommonFlags(flagSet *pflag.FlagSet) *commonFlags {
	f := &commonFlags{set: flagSet}
	flagSet.StringVar(&f.configPath, "config", "", "configuration file (default $"+config.EnvConfig+")")
	flagSet.StringVar(&f.pagesDir, "pages", "", "pages directory (default $"+config.EnvPagesDir+")")
	flagSet.StringVar(&f.corpus, "corpus", "", "corpus file, a .zst suffix compresses it")
	flagSet.Float64Var(&f.minScore, "min-score", 0, "only report results scoring above this")
	flagSet.IntVarP(&f.workers, "workers", "j", 0, "goroutines used to build and score")
	flagSet.BoolVar(&f.stemming, "stem", false, "stem terms when building and searching")
	flagSet.StringVar(&f.logLevel, "log-level", "", "NOOP, DEBUG, INFO, WARN or ERROR")
	return f
}

func (f *commonFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.set.Changed("pages") {
		cfg.PagesDir = f.pagesDir
	}
	if f.set.Changed("corpus") {
		cfg.Corpus = f.corpus
	}
	if f.set.Changed("min-score") {
		cfg.MinScore = f.minScore
	}
	if f.set.Changed("workers") {
		cfg.Workers = f.workers
	}
	if f.set.Changed("stem") {
		cfg.Index.Stemming = f.stemming
	}
	if f.set.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
