package main

import (
	"fmt"
	"sort"

	"github.com/itsatony/go-coriander"
	"github.com/spf13/cobra"
)

type matchConfig struct {
	templateFile string
	format       string
	budget       int
	quiet        bool
}

func newMatchCommand(flags *globalFlags) *cobra.Command {
	cfg := &matchConfig{}

	cmd := &cobra.Command{
		Use:     CmdNameMatch + " [template] <message>",
		Short:   "Match a message against a template and print its captures",
		Long:    "Match a message against a template. Exits 0 on a match and 3 otherwise.",
		Example: HelpMatchExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args, cfg, flags)
		},
	}
	cmd.Flags().StringVarP(&cfg.templateFile, FlagTemplateFile, FlagTemplateFileShort, "", `Template file (use "-" for stdin)`)
	cmd.Flags().StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "Output format: text, json or yaml")
	cmd.Flags().IntVar(&cfg.budget, FlagBudget, 0, "Maximum search steps (0 = unlimited)")
	cmd.Flags().BoolVarP(&cfg.quiet, FlagQuiet, FlagQuietShort, false, "Print nothing; report through the exit code only")
	return cmd
}

func runMatch(cmd *cobra.Command, args []string, cfg *matchConfig, flags *globalFlags) error {
	if err := validateFormat(cfg.format); err != nil {
		return err
	}
	template, rest, err := resolveTemplate(cmd, args, cfg.templateFile)
	if err != nil {
		return err
	}
	message, err := resolveMessage(cmd, rest)
	if err != nil {
		return err
	}

	engine := coriander.MustNew(
		coriander.WithLogger(newLogger(cmd, flags)),
		coriander.WithMatchBudget(cfg.budget),
		coriander.WithoutPatternCache(),
	)
	result, err := engine.Match(cmd.Context(), template, message)
	if err != nil {
		return runtimeError(ErrMsgMatchFailed, err)
	}

	if !cfg.quiet {
		if err := writeMatchResult(cmd, cfg.format, result); err != nil {
			return err
		}
	}
	if !result.Success {
		return &exitError{code: ExitCodeNoMatch}
	}
	return nil
}

func writeMatchResult(cmd *cobra.Command, format string, result *coriander.MatchResult) error {
	w := cmd.OutOrStdout()
	if format != OutputFormatText {
		return writeStructured(w, format, result)
	}

	if !result.Success {
		fmt.Fprintln(w, TextMatchFailure)
		return nil
	}
	fmt.Fprintln(w, TextMatchSuccess)
	writeCaptures(cmd, result.Context)
	return nil
}

// writeCaptures prints captures sorted by name.
func writeCaptures(cmd *cobra.Command, captures map[string]any) {
	if len(captures) == 0 {
		return
	}
	names := make([]string, 0, len(captures))
	for name := range captures {
		names = append(names, name)
	}
	sort.Strings(names)

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, TextCaptureHeader)
	for _, name := range names {
		fmt.Fprintf(w, TextCaptureFormat, name, captures[name])
	}
}
