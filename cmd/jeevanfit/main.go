package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeevanfit/jeevanfit-engine/internal/engine"
	"github.com/jeevanfit/jeevanfit-engine/internal/models"
	"github.com/jeevanfit/jeevanfit-engine/internal/trends"
	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
	"github.com/jeevanfit/jeevanfit-engine/internal/validation"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type options struct {
	tablesPath string
	rulesPath  string
	logLevel   string
	output     string
	bodyType   string
	traits     []string
	workers    int
}

// app holds the analyzers built from the command-line options.
type app struct {
	opts      *options
	logger    *slog.Logger
	tables    engine.Tables
	pipeline  *engine.Pipeline
	validator *validation.Validator
	analyzer  *trends.Analyzer
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "jeevanfit",
		Short:         "Analyze daily lifestyle logs",
		Long:          `Classify foods, predict water retention, profile body types, rate sleep and detect trends from JSON lifestyle logs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.tablesPath, "tables", "", "YAML scoring tables overlaying the defaults")
	flags.StringVar(&opts.rulesPath, "rules", "", "YAML recommendation rule pack")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVarP(&opts.output, "output", "o", outputText, "Output format (text or json)")
	flags.StringVar(&opts.bodyType, "body-type", "", "Declared body type (ectomorph, mesomorph, endomorph, mixed)")
	flags.StringSliceVar(&opts.traits, "traits", nil, "Comma-separated body characteristics")
	flags.IntVar(&opts.workers, "workers", 4, "Parallel workers for trend analysis")

	root.AddCommand(
		newValidateCmd(opts),
		newFoodCmd(opts),
		newRetentionCmd(opts),
		newBodyCmd(opts),
		newSleepCmd(opts),
		newAssessCmd(opts),
		newTrendsCmd(opts),
	)

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch opts.output {
		case outputText, outputJSON:
			return nil
		default:
			return fmt.Errorf("unknown output format %q", opts.output)
		}
	}
	return root
}

func newApp(cmd *cobra.Command, opts *options) (*app, error) {
	logger := utils.NewLoggerTo(cmd.ErrOrStderr(), opts.logLevel, false)

	tables, err := engine.LoadTables(opts.tablesPath)
	if err != nil {
		return nil, err
	}
	rules, err := engine.NewRuleEngine(opts.rulesPath, logger)
	if err != nil {
		return nil, err
	}
	pipeline, err := engine.NewPipeline(logger, tables, rules)
	if err != nil {
		return nil, err
	}
	validator, err := validation.NewValidator()
	if err != nil {
		return nil, err
	}
	return &app{
		opts:      opts,
		logger:    logger,
		tables:    tables,
		pipeline:  pipeline,
		validator: validator,
		analyzer:  trends.NewAnalyzer(tables.Trends, opts.workers, logger),
	}, nil
}

// declaredBodyType builds the body type from --body-type and --traits.
func (a *app) declaredBodyType(userID string) (models.BodyType, error) {
	bodyType := models.BodyType{
		Classification:  models.BodyTypeClassification(strings.ToLower(strings.TrimSpace(a.opts.bodyType))),
		Characteristics: a.opts.traits,
		UserID:          userID,
	}
	if bodyType.Classification == "" {
		return bodyType, nil
	}
	for _, c := range models.BodyTypeClassifications() {
		if c == bodyType.Classification {
			return bodyType, nil
		}
	}
	return models.BodyType{}, utils.NewAppError("cli.bodyType", fmt.Sprintf("unknown body type %q", a.opts.bodyType), utils.ErrInvalidInput)
}

// readInput reads the named file, or stdin when name is "-" or absent.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}

// loadLifestyle reads and validates a lifestyle document.
func (a *app) loadLifestyle(cmd *cobra.Command, args []string) (models.LifestyleInput, error) {
	data, err := readInput(cmd, args)
	if err != nil {
		return models.LifestyleInput{}, err
	}
	res := a.validator.Validate(data)
	if !res.Valid {
		printIssues(cmd.ErrOrStderr(), res.Issues)
		return models.LifestyleInput{}, res.Err()
	}
	return *res.Input, nil
}
