package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"finpro/internal/bootstrap"
	progressdto "finpro/internal/modules/progress/dto"
	"finpro/internal/platform/config"
)

const closeTimeout = 45 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	config.Options
	telegramID int64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "finpro",
		Short:         "Finansist PRO course viewer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.EnvFile, "env-file", "", "dotenv file (default .env if present)")
	flags.StringVar(&opts.Endpoint, "endpoint", "", "progress endpoint url (FINPRO_PROGRESS_ENDPOINT)")
	flags.StringVar(&opts.CatalogPath, "catalog", "", "catalog YAML file or markdown directory (FINPRO_CATALOG)")
	flags.StringVar(&opts.LogPath, "log-file", "", "log output path (FINPRO_LOG_FILE)")
	flags.Int64Var(&opts.telegramID, "telegram-id", 0, "telegram user id (FINPRO_TELEGRAM_ID)")
	flags.StringVar(&opts.Identity.FirstName, "first-name", "", "telegram first name")
	flags.StringVar(&opts.Identity.LastName, "last-name", "", "telegram last name")
	flags.StringVar(&opts.Identity.Username, "username", "", "telegram username")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newModulesCmd(opts))
	root.AddCommand(newProgressCmd(opts))
	root.AddCommand(newLessonCmd(opts))
	root.AddCommand(newToggleCmd(opts))
	return root
}

func loadApp(ctx context.Context, opts *rootOptions) (*bootstrap.App, error) {
	cfgOpts := opts.Options
	cfgOpts.Identity.TelegramID = opts.telegramID
	cfg, err := config.New(cfgOpts)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

// withLoadedApp wires the app, runs the initial progress load and always
// drains pending submissions before returning.
func withLoadedApp(cmd *cobra.Command, opts *rootOptions, run func(ctx context.Context, app *bootstrap.App, load progressdto.LoadOutput) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := loadApp(ctx, opts)
	if err != nil {
		return err
	}
	load, err := app.ProgressCLI.Load(ctx)
	if err != nil {
		return err
	}
	if load.Degraded {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "warning: progress server unreachable, showing defaults")
	}
	runErr := run(ctx, app, load)

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()
	if err := app.Close(closeCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal course viewer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.LogPath) == "" && os.Getenv("FINPRO_LOG_FILE") == "" {
				opts.LogPath = filepath.Join(os.TempDir(), "finpro.log")
			}
			ctx := context.Background()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			runErr := bootstrap.RunTUI(app)
			closeCtx, cancel := context.WithTimeout(ctx, closeTimeout)
			defer cancel()
			if err := app.Close(closeCtx); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}
}

func newModulesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List modules and lessons with completion flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLoadedApp(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ progressdto.LoadOutput) error {
				modules, err := app.CatalogCLI.ListModules(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, m := range modules {
					_, _ = fmt.Fprintf(out, "%s\t%s\t%d/%d\t%d%%\n", m.ID, m.Title, m.Progress.Completed, m.Progress.Total, m.Progress.Percent)
					for _, l := range m.Lessons {
						_, _ = fmt.Fprintf(out, "  [%s] %s\t%s\t%s\n", mark(l.Completed), l.ID, l.Title, l.Duration)
					}
				}
				return nil
			})
		},
	}
}

func newProgressCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show overall and per-module progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLoadedApp(cmd, opts, func(ctx context.Context, app *bootstrap.App, load progressdto.LoadOutput) error {
				overview, err := app.CatalogCLI.Overview(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printLoad(out, load)
				_, _ = fmt.Fprintf(out, "overall: %d/%d lessons (%d%%)\n", overview.Overall.Completed, overview.Overall.Total, overview.Overall.Percent)
				for _, m := range overview.Modules {
					_, _ = fmt.Fprintf(out, "%s\t%s\t%d/%d\t%d%%\n", m.ID, m.Title, m.Progress.Completed, m.Progress.Total, m.Progress.Percent)
				}
				return nil
			})
		},
	}
}

func newLessonCmd(opts *rootOptions) *cobra.Command {
	var lessonID string
	var open bool
	cmd := &cobra.Command{
		Use:   "lesson --id <lesson>",
		Short: "Show lesson details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(lessonID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withLoadedApp(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ progressdto.LoadOutput) error {
				l, err := app.CatalogCLI.GetLesson(ctx, lessonID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nmodule: %s\ntitle: %s\nduration: %s\nvideo: %s\ncompleted: %t\n\n%s\n",
					l.ID, l.ModuleID, l.Title, l.Duration, l.VideoURL, l.Completed, l.Description)
				if open {
					if _, err := app.CatalogCLI.OpenVideo(ctx, lessonID); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&lessonID, "id", "", "lesson id")
	cmd.Flags().BoolVar(&open, "open", false, "open the lesson video in the browser")
	return cmd
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	var moduleID, lessonID string
	cmd := &cobra.Command{
		Use:   "toggle --module <module> --lesson <lesson>",
		Short: "Flip a lesson's completion and sync it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(moduleID) == "" || strings.TrimSpace(lessonID) == "" {
				return fmt.Errorf("--module and --lesson are required")
			}
			return withLoadedApp(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ progressdto.LoadOutput) error {
				out, err := app.ProgressCLI.Toggle(ctx, moduleID, lessonID)
				if err != nil {
					return err
				}
				if out.Skipped {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no telegram identity: nothing changed")
					return nil
				}
				if err := app.ProgressCLI.Wait(ctx); err != nil {
					return err
				}
				status, err := app.ProgressCLI.Status(ctx)
				if err != nil {
					return err
				}
				synced := "synced"
				if status.Failed > 0 {
					synced = "not synced: " + status.LastError
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s/%s completed=%t (%s)\n", out.ModuleID, out.LessonID, out.Completed, synced)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&moduleID, "module", "", "module id")
	cmd.Flags().StringVar(&lessonID, "lesson", "", "lesson id")
	return cmd
}

func printLoad(out io.Writer, load progressdto.LoadOutput) {
	switch {
	case load.LocalOnly:
		_, _ = fmt.Fprintln(out, "identity: none (local mode)")
	case load.Degraded:
		_, _ = fmt.Fprintf(out, "identity: %d (remote unavailable)\n", load.UserID)
	default:
		_, _ = fmt.Fprintf(out, "identity: %d (%d records applied, %d ignored)\n", load.UserID, load.Applied, load.Ignored)
	}
}

func mark(done bool) string {
	if done {
		return "x"
	}
	return " "
}
