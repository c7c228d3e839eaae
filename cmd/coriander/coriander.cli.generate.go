package main

import (
	"fmt"

	"github.com/itsatony/go-coriander"
	"github.com/spf13/cobra"
)

type generateConfig struct {
	templateFile string
	data         string
	dataFile     string
	seed         uint64
	count        int
	format       string
}

func newGenerateCommand(flags *globalFlags) *cobra.Command {
	cfg := &generateConfig{}

	cmd := &cobra.Command{
		Use:     CmdNameGenerate + " [template]",
		Short:   "Generate messages from a template",
		Example: HelpGenerateExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, cfg, flags)
		},
	}
	cmd.Flags().StringVarP(&cfg.templateFile, FlagTemplateFile, FlagTemplateFileShort, "", `Template file (use "-" for stdin)`)
	cmd.Flags().StringVarP(&cfg.data, FlagData, FlagDataShort, "", "Capture values as JSON")
	cmd.Flags().StringVarP(&cfg.dataFile, FlagDataFile, FlagDataFileShort, "", "Capture values from a JSON or YAML file")
	cmd.Flags().Uint64VarP(&cfg.seed, FlagSeed, FlagSeedShort, 0, "Seed for reproducible output")
	cmd.Flags().IntVarP(&cfg.count, FlagCount, FlagCountShort, FlagDefaultCount, "Number of messages to generate")
	cmd.Flags().StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "Output format: text, json or yaml")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, cfg *generateConfig, flags *globalFlags) error {
	if err := validateFormat(cfg.format); err != nil {
		return err
	}
	if cfg.count < 1 {
		return usageError(ErrMsgInvalidCount, nil)
	}
	if cfg.templateFile != "" && len(args) > 0 {
		return usageError(ErrMsgTemplateFromTwoSrc, nil)
	}
	template, _, err := resolveTemplate(cmd, args, cfg.templateFile)
	if err != nil {
		return err
	}
	data, err := loadData(cfg.data, cfg.dataFile)
	if err != nil {
		return inputError(ErrMsgInvalidData, err)
	}

	opts := []coriander.Option{coriander.WithLogger(newLogger(cmd, flags))}
	if cmd.Flags().Changed(FlagSeed) {
		opts = append(opts, coriander.WithSeed(cfg.seed))
	}
	engine := coriander.MustNew(opts...)
	pattern := engine.Compile(template)

	messages := make([]string, 0, cfg.count)
	for i := 0; i < cfg.count; i++ {
		messages = append(messages, pattern.Generate(data))
	}

	w := cmd.OutOrStdout()
	if cfg.format != OutputFormatText {
		return writeStructured(w, cfg.format, messages)
	}
	for _, msg := range messages {
		fmt.Fprintln(w, msg)
	}
	return nil
}
