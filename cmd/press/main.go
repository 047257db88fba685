package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	press "github.com/goliatone/go-press"
	"github.com/goliatone/go-press/internal/commands"
	sitecmd "github.com/goliatone/go-press/internal/commands/site"
)

var errMissingCommand = errors.New("missing command")

type globalFlags struct {
	root     string
	config   string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, root.UsageString())
		return 1
	}
	return 0
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "press [command]",
		Short:         "Draft and publish posts through layout templates",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errMissingCommand
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.root, "root", ".", "Site directory")
	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Path to an HCL config file (default <root>/"+press.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(
		newDraftCommand(flags, stdout),
		newPublishCommand(flags, stdout),
		newRenderCommand(flags, stdout),
	)
	return rootCmd
}

func newDraftCommand(flags *globalFlags, stdout io.Writer) *cobra.Command {
	var (
		title  string
		noEdit bool
	)
	cmd := &cobra.Command{
		Use:   "draft [title words...]",
		Short: "Create a new draft post",
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := openSite(flags)
			if err != nil {
				return err
			}
			if title == "" {
				title = strings.Join(args, " ")
			}
			handler := sitecmd.NewDraftHandler(site, commands.VerbLogger(site.LoggerProvider(), "draft"))
			return handler.Execute(cmd.Context(), sitecmd.DraftCommand{
				Title: title,
				Edit:  !noEdit,
				Out:   stdout,
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Post title")
	cmd.Flags().BoolVar(&noEdit, "no-edit", false, "Do not open the draft in $EDITOR")
	return cmd
}

func newPublishCommand(flags *globalFlags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Render every non-draft post into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := openSite(flags)
			if err != nil {
				return err
			}
			handler := sitecmd.NewPublishHandler(site, commands.VerbLogger(site.LoggerProvider(), "publish"))
			return handler.Execute(cmd.Context(), sitecmd.PublishCommand{Out: stdout})
		},
	}
}

func newRenderCommand(flags *globalFlags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "render <document>",
		Short: "Render one document through its layouts to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := openSite(flags)
			if err != nil {
				return err
			}
			handler := sitecmd.NewRenderHandler(site, commands.VerbLogger(site.LoggerProvider(), "render"))
			return handler.Execute(cmd.Context(), sitecmd.RenderCommand{Document: args[0], Out: stdout})
		},
	}
}

func openSite(flags *globalFlags) (*press.Site, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	return press.New(cfg, press.WithRoot(flags.root))
}

// loadConfig reads --config, or the default file in the site root when it
// exists, and falls back to the defaults.
func loadConfig(flags *globalFlags) (press.Config, error) {
	if flags.config != "" {
		return press.LoadConfig(flags.config)
	}
	candidate := filepath.Join(flags.root, press.DefaultConfigFile)
	if _, err := os.Stat(candidate); err == nil {
		return press.LoadConfig(candidate)
	}
	return press.DefaultConfig(), nil
}
