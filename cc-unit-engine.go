package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	ccconf "github.com/ClusterCockpit/cc-lib/ccConfig"

	cclog "github.com/ClusterCockpit/cc-unit-engine/internal/ccLogger"
	cw "github.com/ClusterCockpit/cc-unit-engine/internal/configWatcher"
	qe "github.com/ClusterCockpit/cc-unit-engine/internal/quantityEncoder"
	ua "github.com/ClusterCockpit/cc-unit-engine/internal/unitApi"
	us "github.com/ClusterCockpit/cc-unit-engine/internal/unitStats"
	ccunits "github.com/ClusterCockpit/cc-unit-engine/pkg/ccUnits"
	ue "github.com/ClusterCockpit/cc-unit-engine/pkg/unitExpr"
)

type CentralConfigFile struct {
	Region    string            `json:"region"`
	Output    string            `json:"output"`
	Precision int               `json:"precision"`
	Civilize  *bool             `json:"civilize"`
	Tags      map[string]string `json:"default_tags"`
	CacheSize int               `json:"eval_cache_size"`
}

type RuntimeConfig struct {
	CliArgs    map[string]string
	ConfigFile CentralConfigFile

	Catalog   *ccunits.Catalog
	Evaluator *ue.Evaluator
	Stats     *us.Stats
	Api       *ua.UnitApi
	Watcher   *cw.ConfigWatcher

	Sync sync.WaitGroup
}

func ReadCli() map[string]string {
	var m map[string]string
	cfg := flag.String("config", "./config.json", "Path to configuration file")
	logfile := flag.String("log", "stderr", "Path for logfile")
	loglevel := flag.String("loglevel", "info", "Set log level")
	region := flag.String("region", "", "Regional unit convention (UK or US), overrides the configuration")
	output := flag.String("output", "", "Output format: text, html, xml or lineprotocol")
	serve := flag.Bool("serve", false, "Serve the HTTP API instead of evaluating the arguments")
	precision := flag.String("precision", "s", "Timestamp precision for line protocol output")
	flag.Parse()
	m = make(map[string]string)
	m["configfile"] = *cfg
	m["logfile"] = *logfile
	m["loglevel"] = *loglevel
	m["region"] = *region
	m["output"] = *output
	if *serve {
		m["serve"] = "true"
	} else {
		m["serve"] = "false"
	}
	m["precision"] = *precision
	return m
}

// readMainConfig loads the "main" section, command line values take precedence
func readMainConfig(rcfg *RuntimeConfig) error {
	rcfg.ConfigFile = CentralConfigFile{
		Region:    "UK",
		Output:    "text",
		Precision: ue.DefaultPrecision,
	}
	if main := ccconf.GetPackageConfig("main"); len(main) > 0 {
		if err := json.Unmarshal(main, &rcfg.ConfigFile); err != nil {
			return fmt.Errorf("error reading configuration file %s: %w", rcfg.CliArgs["configfile"], err)
		}
	}
	if r := rcfg.CliArgs["region"]; len(r) > 0 {
		rcfg.ConfigFile.Region = r
	}
	if o := rcfg.CliArgs["output"]; len(o) > 0 {
		rcfg.ConfigFile.Output = o
	}
	if rcfg.ConfigFile.Precision < 0 {
		return fmt.Errorf("configuration value 'precision' must not be negative")
	}
	if rcfg.ConfigFile.CacheSize < 0 {
		return fmt.Errorf("configuration value 'eval_cache_size' must not be negative")
	}
	return nil
}

// reloadConfig reads the configuration file again. A file that is not valid
// JSON, for example while it is being edited, keeps the current settings.
func reloadConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("configuration file %s is not valid JSON", filename)
	}
	ccconf.Init(filename)
	return nil
}

// reloadRegion applies the region of a changed configuration file
func reloadRegion(rcfg *RuntimeConfig) {
	if err := reloadConfig(rcfg.CliArgs["configfile"]); err != nil {
		cclog.Error("Cannot reload configuration:", err.Error())
		return
	}
	main := ccconf.GetPackageConfig("main")
	if len(main) == 0 {
		return
	}
	var conf CentralConfigFile
	if err := json.Unmarshal(main, &conf); err != nil {
		cclog.Error("Error reading reloaded configuration:", err.Error())
		return
	}
	if len(conf.Region) == 0 || len(rcfg.CliArgs["region"]) > 0 {
		return
	}
	region, err := ccunits.ParseRegion(conf.Region)
	if err != nil {
		cclog.Error(err.Error())
		return
	}
	if region != rcfg.Catalog.Region() {
		rcfg.Api.SetRegion(region)
		cclog.Info("Region set to", region.String())
	}
}

// evaluate prints every expression given on the command line
func evaluate(rcfg *RuntimeConfig, exprs []string) int {
	ctx := context.Background()
	if rcfg.ConfigFile.Output == "lineprotocol" {
		precision, err := qe.ParsePrecision(rcfg.CliArgs["precision"])
		if err != nil {
			cclog.Error(err.Error())
			return 1
		}
		enc := qe.New("quantity", rcfg.ConfigFile.Tags, precision)
		now := time.Now()
		exitCode := 0
		for _, expr := range exprs {
			q, err := rcfg.Evaluator.Eval(ctx, expr)
			if err == nil {
				err = enc.Add(expr, q, now)
			}
			if err != nil {
				cclog.Error(expr+":", err.Error())
				exitCode = 1
			}
		}
		os.Stdout.Write(enc.Bytes())
		return exitCode
	}

	kind, err := ccunits.ParseOutputKind(rcfg.ConfigFile.Output)
	if err != nil {
		cclog.Error(err.Error())
		return 1
	}
	exitCode := 0
	for _, expr := range exprs {
		q, err := rcfg.Evaluator.Eval(ctx, expr)
		if err != nil {
			cclog.Error(expr+":", err.Error())
			exitCode = 1
			continue
		}
		cclog.Print(q.FormatPrecision(kind, rcfg.ConfigFile.Precision))
	}
	return exitCode
}

// General shutdownHandler function that gets executed in case of interrupt or graceful shutdownHandler
func shutdownHandler(config *RuntimeConfig, shutdownSignal chan os.Signal) {
	defer config.Sync.Done()

	<-shutdownSignal
	// Remove shutdown handler
	// every additional interrupt signal will stop without cleaning up
	signal.Stop(shutdownSignal)

	cclog.Info("Shutdown...")

	if config.Watcher != nil {
		cclog.Debug("Shutdown ConfigWatcher...")
		config.Watcher.Close()
	}
	if config.Api != nil {
		cclog.Debug("Shutdown UnitApi...")
		config.Api.Close()
	}
}

func serve(rcfg *RuntimeConfig) int {
	var err error

	rcfg.Api, err = ua.New(ccconf.GetPackageConfig("api"), rcfg.Evaluator, rcfg.Stats)
	if err != nil {
		cclog.Error(err.Error())
		return 1
	}

	if _, err := os.Stat(rcfg.CliArgs["configfile"]); err == nil {
		rcfg.Watcher, err = cw.New(rcfg.CliArgs["configfile"], func(string) { reloadRegion(rcfg) })
		if err != nil {
			cclog.Warn(err.Error())
		}
	}

	// Create shutdown handler
	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt)
	signal.Notify(shutdownSignal, syscall.SIGTERM)
	rcfg.Sync.Add(1)
	go shutdownHandler(rcfg, shutdownSignal)

	rcfg.Api.Start()
	if rcfg.Watcher != nil {
		rcfg.Watcher.Start()
	}

	// Wait that all goroutines finish
	rcfg.Sync.Wait()

	return 0
}

func mainFunc() int {
	// Initialize runtime configuration
	rcfg := RuntimeConfig{
		CliArgs: ReadCli(),
	}

	// Set loglevel based on command line input.
	cclog.Init(rcfg.CliArgs["loglevel"], false)

	// Set log file
	if logfile := rcfg.CliArgs["logfile"]; logfile != "stderr" {
		cclog.SetOutput(logfile)
	}

	// Init ccConfig with configuration file
	ccconf.Init(rcfg.CliArgs["configfile"])

	if err := readMainConfig(&rcfg); err != nil {
		cclog.Error(err.Error())
		return 1
	}

	region, err := ccunits.ParseRegion(rcfg.ConfigFile.Region)
	if err != nil {
		cclog.Error(err.Error())
		return 1
	}

	rcfg.Stats = us.New()
	rcfg.Catalog = ccunits.Default()
	rcfg.Catalog.SetObserver(rcfg.Stats)
	rcfg.Catalog.SetRegion(region)

	rcfg.Evaluator = ue.NewEvaluator(rcfg.Catalog)
	rcfg.Evaluator.SetObserver(rcfg.Stats)
	if rcfg.ConfigFile.Civilize != nil {
		rcfg.Evaluator.SetCivilize(*rcfg.ConfigFile.Civilize)
	}
	if rcfg.ConfigFile.CacheSize > 0 {
		if err := rcfg.Evaluator.SetCacheSize(rcfg.ConfigFile.CacheSize); err != nil {
			cclog.Error(err.Error())
			return 1
		}
	}

	if rcfg.CliArgs["serve"] == "true" {
		return serve(&rcfg)
	}
	if flag.NArg() == 0 {
		cclog.Error("No expression given, use -serve to start the HTTP API")
		return 1
	}
	return evaluate(&rcfg, flag.Args())
}

func main() {
	exitCode := mainFunc()
	os.Exit(exitCode)
}
