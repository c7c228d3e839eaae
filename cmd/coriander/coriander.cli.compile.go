package main

import (
	"fmt"
	"strings"

	"github.com/itsatony/go-coriander"
	"github.com/spf13/cobra"
)

// compileOutput is the structured form of the compile command.
type compileOutput struct {
	Template string   `json:"template" yaml:"template"`
	Tree     string   `json:"tree" yaml:"tree"`
	Captures []string `json:"captures" yaml:"captures"`
}

type compileConfig struct {
	templateFile string
	format       string
}

func newCompileCommand(flags *globalFlags) *cobra.Command {
	cfg := &compileConfig{}

	cmd := &cobra.Command{
		Use:     CmdNameCompile + " [template]",
		Short:   "Print the token tree of a template",
		Example: HelpCompileExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, cfg, flags)
		},
	}
	cmd.Flags().StringVarP(&cfg.templateFile, FlagTemplateFile, FlagTemplateFileShort, "", `Template file (use "-" for stdin)`)
	cmd.Flags().StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "Output format: text, json or yaml")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string, cfg *compileConfig, flags *globalFlags) error {
	if err := validateFormat(cfg.format); err != nil {
		return err
	}
	if cfg.templateFile != "" && len(args) > 0 {
		return usageError(ErrMsgTemplateFromTwoSrc, nil)
	}
	template, _, err := resolveTemplate(cmd, args, cfg.templateFile)
	if err != nil {
		return err
	}

	engine := coriander.MustNew(coriander.WithLogger(newLogger(cmd, flags)))
	pattern := engine.Compile(template)

	captures := pattern.CaptureNames()
	if captures == nil {
		captures = []string{}
	}
	out := compileOutput{
		Template: pattern.Template(),
		Tree:     pattern.String(),
		Captures: captures,
	}

	w := cmd.OutOrStdout()
	if cfg.format != OutputFormatText {
		return writeStructured(w, cfg.format, out)
	}
	fmt.Fprintf(w, TextTemplateLabel, out.Template)
	fmt.Fprintf(w, TextTreeLabel, out.Tree)
	fmt.Fprintf(w, TextCapturesLabel, strings.Join(out.Captures, ", "))
	return nil
}
