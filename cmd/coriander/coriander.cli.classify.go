package main

import (
	"fmt"
	"os"

	"github.com/itsatony/go-coriander"
	"github.com/spf13/cobra"
)

type classifyConfig struct {
	catalog string
	format  string
	budget  int
}

func newClassifyCommand(flags *globalFlags) *cobra.Command {
	cfg := &classifyConfig{}

	cmd := &cobra.Command{
		Use:     CmdNameClassify + " <message>",
		Short:   "List the catalog templates a message matches",
		Long:    "List the catalog templates a message matches. Exits 0 if any matched and 3 otherwise.",
		Example: HelpClassifyExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, cfg, flags)
		},
	}
	cmd.Flags().StringVarP(&cfg.catalog, FlagCatalog, FlagCatalogShort, "", "Catalog file or directory of catalogs")
	cmd.Flags().StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "Output format: text, json or yaml")
	cmd.Flags().IntVar(&cfg.budget, FlagBudget, 0, "Maximum search steps per template (0 = unlimited)")
	return cmd
}

func runClassify(cmd *cobra.Command, args []string, cfg *classifyConfig, flags *globalFlags) error {
	if err := validateFormat(cfg.format); err != nil {
		return err
	}
	if cfg.catalog == "" {
		return usageError(ErrMsgMissingCatalog, nil)
	}
	message, err := resolveMessage(cmd, args)
	if err != nil {
		return err
	}

	engine := coriander.MustNew(
		coriander.WithLogger(newLogger(cmd, flags)),
		coriander.WithMatchBudget(cfg.budget),
	)
	if err := loadCatalog(cmd, engine, cfg.catalog); err != nil {
		return err
	}

	matches, err := engine.Classify(cmd.Context(), message)
	if err != nil {
		return runtimeError(ErrMsgMatchFailed, err)
	}

	w := cmd.OutOrStdout()
	if cfg.format != OutputFormatText {
		if matches == nil {
			matches = []coriander.Classification{}
		}
		if err := writeStructured(w, cfg.format, matches); err != nil {
			return err
		}
	} else if len(matches) == 0 {
		fmt.Fprintln(w, TextNoClassifier)
	} else {
		for _, m := range matches {
			fmt.Fprintf(w, TextClassifyLine, m.Name)
		}
	}

	if len(matches) == 0 {
		return &exitError{code: ExitCodeNoMatch}
	}
	return nil
}

// loadCatalog registers a catalog file, or every catalog in a directory.
func loadCatalog(cmd *cobra.Command, engine *coriander.Engine, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return inputError(ErrMsgLoadCatalogFailed, err)
	}

	if !info.IsDir() {
		if _, err := engine.LoadCatalogFile(path); err != nil {
			return inputError(ErrMsgLoadCatalogFailed, err)
		}
		return nil
	}

	store, err := coriander.NewFilesystemStore(path)
	if err != nil {
		return inputError(ErrMsgLoadCatalogFailed, err)
	}
	defer store.Close()

	if _, err := engine.LoadStore(cmd.Context(), store); err != nil {
		return inputError(ErrMsgLoadCatalogFailed, err)
	}
	return nil
}
