package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/francisrstokes/split2040-fw/internal/cmd"
	"github.com/francisrstokes/split2040-fw/internal/configpaths"
	"github.com/francisrstokes/split2040-fw/internal/log"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("split2040"),
		kong.Description("split2040 keyboard firmware core"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags and
		// env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var reportLog log.ReportLogger
	if cli.Log.ReportFile != "" {
		f, err := os.OpenFile(cli.Log.ReportFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open report log file", "file", cli.Log.ReportFile, "error", err)
			reportLog = log.NewReport(nil)
		} else {
			reportLog = log.NewReport(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		reportLog = log.NewReport(os.Stdout)
	} else {
		reportLog = log.NewReport(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(reportLog, (*log.ReportLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("SPLIT2040_CONFIG"); v != "" {
		return v
	}
	return ""
}
