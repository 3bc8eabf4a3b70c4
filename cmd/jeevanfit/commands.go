package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
	"github.com/jeevanfit/jeevanfit-engine/internal/trends"
	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
)

// errInvalidDocument is returned by validate after the issues are printed.
var errInvalidDocument = errors.New("document is invalid")

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate and sanitize a lifestyle document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			res := a.validator.Validate(data)
			if opts.output == outputJSON {
				if err := printJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else if res.Valid {
				printValid(cmd.OutOrStdout(), *res.Input)
			} else {
				printIssues(cmd.OutOrStdout(), res.Issues)
			}
			if !res.Valid {
				return errInvalidDocument
			}
			return nil
		},
	}
}

func newFoodCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "food [file]",
		Short: "Classify every food item in a lifestyle document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			input, err := a.loadLifestyle(cmd, args)
			if err != nil {
				return err
			}
			food := a.pipeline.Food()
			out := make([]models.FoodClassification, 0, len(input.FoodItems))
			for _, item := range input.FoodItems {
				out = append(out, food.Classify(item))
			}
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			printFoods(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newRetentionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "retention [file]",
		Short: "Predict water retention for a lifestyle document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			input, err := a.loadLifestyle(cmd, args)
			if err != nil {
				return err
			}
			bodyType, err := a.declaredBodyType(input.UserID)
			if err != nil {
				return err
			}
			resolved := models.BodyTypeClassification(a.pipeline.BodyType().Resolve(bodyType).Category)
			pred := a.pipeline.Retention().Predict(input, resolved)
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), pred)
			}
			printRetention(cmd.OutOrStdout(), pred)
			return nil
		},
	}
}

func newBodyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "body [file]",
		Short: "Profile the declared body type against a lifestyle document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			input, err := a.loadLifestyle(cmd, args)
			if err != nil {
				return err
			}
			bodyType, err := a.declaredBodyType(input.UserID)
			if err != nil {
				return err
			}
			insight := a.pipeline.BodyType().Analyze(bodyType, input)
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), insight)
			}
			printBodyType(cmd.OutOrStdout(), insight)
			return nil
		},
	}
}

func newSleepCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sleep [file]",
		Short: "Rate the night's sleep and link it to the day's habits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			input, err := a.loadLifestyle(cmd, args)
			if err != nil {
				return err
			}
			if input.SleepData == nil {
				return utils.NewAppError("cli.sleep", "document has no sleep_data", utils.ErrInvalidInput)
			}
			analysis := a.pipeline.Sleep().Analyze(*input.SleepData, input)
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), analysis)
			}
			printSleep(cmd.OutOrStdout(), analysis)
			return nil
		},
	}
}

func newAssessCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "assess [file]",
		Short: "Run every analyzer and print prioritised insights",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			input, err := a.loadLifestyle(cmd, args)
			if err != nil {
				return err
			}
			bodyType, err := a.declaredBodyType(input.UserID)
			if err != nil {
				return err
			}
			assessment, err := a.pipeline.Assess(cmd.Context(), input, bodyType)
			if err != nil {
				return err
			}
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), assessment)
			}
			printAssessment(cmd.OutOrStdout(), assessment)
			return nil
		},
	}
}

func newTrendsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "trends [file]",
		Short: "Detect trends, correlations and changes across metric series",
		Long: `Reads a JSON document of the form
{"user_id": "...", "data": {"metric": [{"timestamp": "...", "value": 1.0}, ...]}}`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var req trends.Request
			if err := json.Unmarshal(data, &req); err != nil {
				return utils.NewAppError("cli.trends", fmt.Sprintf("decode request: %v", err), utils.ErrInvalidInput)
			}
			analysis, err := a.analyzer.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), analysis)
			}
			printTrends(cmd.OutOrStdout(), analysis)
			return nil
		},
	}
}
