package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time:
//
//	go build -ldflags "-X main.version=v1.2.0 -X main.commit=abc123" ./cmd/coriander
var (
	version = VersionUnknown
	commit  = VersionUnknown
)

// versionOutput is the structured form of the version command.
type versionOutput struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func newVersionCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   CmdNameVersion,
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			info := getVersionInfo()
			w := cmd.OutOrStdout()
			if format != OutputFormatText {
				return writeStructured(w, format, info)
			}
			fmt.Fprintf(w, VersionTextFormat, info.Version, info.Commit, info.GoVersion)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "Output format: text, json or yaml")
	return cmd
}

// getVersionInfo prefers linker-provided values and falls back to the
// module build info embedded by go install.
func getVersionInfo() versionOutput {
	info := versionOutput{
		Version:   version,
		Commit:    commit,
		GoVersion: runtime.Version(),
	}

	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == VersionUnknown && build.Main.Version != "" && build.Main.Version != "(devel)" {
		info.Version = build.Main.Version
	}
	if info.Commit == VersionUnknown {
		for _, setting := range build.Settings {
			if setting.Key == "vcs.revision" {
				info.Commit = setting.Value
			}
		}
	}
	return info
}
