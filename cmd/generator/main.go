package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"firewall-rule-generator/internal/engine"
	"firewall-rule-generator/internal/intent"
	"firewall-rule-generator/internal/model"
	"firewall-rule-generator/internal/parser"
	"firewall-rule-generator/internal/render"
	"firewall-rule-generator/internal/utils"
)

var (
	description string
	role        string
	protocols   []string
	sourceType  string
	sourceValue string
	inputFile   string
	preset      string
	format      string
	outFile     string
	colorMode   string
	logLevel    string
	logFile     string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "firewall-rule-generator",
		Short: "Explainable least-privilege iptables rules for a single server",
		Long: `firewall-rule-generator turns a short description of a server (role,
protocols, allowed source) into an ordered, annotated iptables rule set with a
least-privilege score, warnings and a secure/insecure comparison.

Rules are printed for review only; nothing is applied to the host.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&description, "description", "d", "", "Free-text description of the server")
	rootCmd.Flags().StringVar(&role, "role", "custom", "Server role: web, db, bastion or custom")
	rootCmd.Flags().StringSliceVarP(&protocols, "protocol", "p", nil, "Protocol to allow (repeatable, e.g. -p HTTPS -p SSH)")
	rootCmd.Flags().StringVar(&sourceType, "source-type", "any", "Allowed source: any, single or cidr")
	rootCmd.Flags().StringVar(&sourceValue, "source", "", "Source address or CIDR (for 'single' and 'cidr')")
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "YAML request file")
	rootCmd.Flags().StringVar(&preset, "preset", "", "Start from an example request: "+strings.Join(parser.PresetNames(), ", "))
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml, script or diff")
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVar(&colorMode, "color", "auto", "Colorize text output: auto, always or never")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")

	rootCmd.MarkFlagsMutuallyExclusive("input", "preset")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := setupLogger(logLevel, logFile)
	slog.SetDefault(logger)
	startTime := time.Now()

	outFormat, err := render.ParseFormat(format)
	if err != nil {
		return err
	}

	req, err := loadRequest(cmd)
	if err != nil {
		slog.Error("Failed to load request", "error", err)
		return err
	}
	logSource(req)

	gen, err := engine.NewGenerator()
	if err != nil {
		slog.Error("Failed to create generator", "error", err)
		return err
	}

	in := gen.Intent(req)
	slog.Info("Intent extracted", "protocols", in.Protocols, "restricted", in.Source.Restricted, "source", in.Source.Display)

	result := engine.Assemble(in)
	slog.Info("Rules generated", "rules", len(result.Rules), "score", result.Score, "warnings", len(result.Warnings))
	for _, w := range result.Warnings {
		slog.Debug("Warning raised", "severity", w.Severity, "message", w.Message)
	}

	w, closeOut, err := openOutput(cmd, outFile)
	if err != nil {
		slog.Error("Failed to open output", "path", outFile, "error", err)
		return err
	}
	defer closeOut()

	color, err := useColor(colorMode, w)
	if err != nil {
		return err
	}
	if err := render.Write(w, outFormat, result, render.Options{Color: color}); err != nil {
		slog.Error("Failed to write output", "format", outFormat, "error", err)
		return err
	}

	slog.Info("Generation complete", "format", outFormat, "duration", time.Since(startTime))
	return nil
}

// loadRequest starts from a preset or request file when given, then applies
// every flag the user set explicitly, then validates the merged request.
func loadRequest(cmd *cobra.Command) (model.Request, error) {
	base := model.Request{Role: model.RoleCustom, SourceType: model.SourceAny}
	origin := "flags"

	switch {
	case preset != "":
		req, err := parser.Preset(preset)
		if err != nil {
			return model.Request{}, err
		}
		base, origin = req, "preset:"+preset
	case inputFile != "":
		f, err := os.Open(inputFile)
		if err != nil {
			return model.Request{}, err
		}
		defer f.Close()
		req, err := parser.ParseRequest(f)
		if err != nil {
			return model.Request{}, fmt.Errorf("error parsing request file %s: %w", inputFile, err)
		}
		base, origin = req, "file:"+inputFile
	}

	desc, r, protos := base.Description, string(base.Role), base.Protocols
	st, sv := string(base.SourceType), base.SourceValue
	flags := cmd.Flags()
	if flags.Changed("description") {
		desc = description
	}
	if flags.Changed("role") {
		r = role
	}
	if flags.Changed("protocol") {
		protos = protocols
	}
	if flags.Changed("source-type") {
		st = sourceType
	}
	if flags.Changed("source") {
		sv = sourceValue
	}

	req, err := parser.BuildRequest(desc, r, protos, st, sv)
	if err != nil {
		return model.Request{}, err
	}
	slog.Info("Request loaded", "origin", origin, "role", req.Role, "protocols", req.Protocols, "source_type", req.SourceType)
	return req, nil
}

func logSource(req model.Request) {
	if intent.MissingSourceValue(req) {
		slog.Warn("Source restriction requested without a value; treating source as unrestricted", "source_type", req.SourceType)
		return
	}
	if req.SourceType == model.SourceAny || req.SourceValue == "" {
		return
	}
	if n, err := utils.ParseNetwork(req.SourceValue); err == nil {
		slog.Debug("Source restriction", "network", n.String(), "addresses", utils.CIDRSize(n))
	}
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func useColor(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
	}
}

func setupLogger(level, logFilePath string) *slog.Logger {
	var logWriter io.Writer = os.Stderr
	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logWriter = f
		}
		// The logger is not set up yet, so a failed open silently falls back to stderr.
	}

	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "INFO":
		lvl = slog.LevelInfo
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: lvl}))
}
