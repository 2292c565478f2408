package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/projmerge/config"
	"github.com/viant/projmerge/merger"
	"github.com/viant/projmerge/repository"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const description = `Merges an MSBuild project (.csproj, .vbproj) and every project it references
into a single project file. Compiled items and library references of referenced
projects are inlined with absolute paths, and project references are removed.`

const example = `  projmerge c:\myproj1\myproject1.csproj c:\myproj2\myproject2.csproj

    Merges myproject1 and its references into myproject2.`

type usageError struct {
	error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	cmd := newCommand(out, errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(errOut, "projmerge: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	return 0
}

func newCommand(out io.Writer, errOut io.Writer) *cobra.Command {
	var (
		configPath       string
		verbose          bool
		removeStrongName bool
	)
	cmd := &cobra.Command{
		Use:           "projmerge <input project> <output project>",
		Short:         "Merge a project and its referenced projects into a single project",
		Long:          description,
		Example:       example,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 2 {
				return usageError{fmt.Errorf("expected 2 arguments, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 || args[0] == "" || args[1] == "" {
				return cmd.Help()
			}
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
			ctx := context.Background()
			fs := afs.New()
			cfg, err := config.Load(ctx, fs, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("remove-strong-name") {
				cfg.RemoveStrongName = removeStrongName
			}
			repo, err := repository.New(fs).Detect(ctx, args[0])
			if err != nil {
				return err
			}
			input := repo.ProjectFile
			output, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Input       : %s\n", input)
			fmt.Fprintf(out, "Output      : %s\n", output)
			fmt.Fprintln(out)

			m := merger.New(cfg, merger.WithProgress(out), merger.WithLogger(logger))
			report, err := m.Run(ctx, fs, input, output)
			if err != nil {
				return err
			}
			printReport(out, report)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "settings file (.yaml, .yml or .toml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log skipped items and references")
	cmd.Flags().BoolVar(&removeStrongName, "remove-strong-name", false, "remove assembly signing from the merged project")
	return cmd
}

func printReport(w io.Writer, report *merger.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Dialect     : %s\n", report.Kind)
	fmt.Fprintf(w, "Projects    : %d\n", len(report.Projects))
	for _, p := range report.Projects {
		fmt.Fprintf(w, "              %s\n", p)
	}
	fmt.Fprintf(w, "Items       : %d\n", report.Items)
	fmt.Fprintf(w, "References  : %d\n", report.References)
	fmt.Fprintf(w, "Skipped     : %d\n", len(report.Skipped))
	for _, conflict := range report.Conflicts {
		fmt.Fprintf(w, "Conflict    : %s kept %s, discarded %s (%s)\n", conflict.Include, conflict.Kept, conflict.Discarded, conflict.Project)
	}
	fmt.Fprintf(w, "Digest      : %016x\n", report.Digest)
}
