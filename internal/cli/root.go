package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nvup/nvup/internal/branding"
	"github.com/nvup/nvup/internal/config"
	"github.com/nvup/nvup/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagDest    string
	flagCheck   bool
	flagAtomic  bool
	flagBinary  string
	flagQuiet   bool
	flagTimeout time.Duration
)

// Replaced by tests.
var (
	httpClient                = http.DefaultClient
	runner     updater.Runner = updater.ExecRunner{}
	stdout     io.Writer      = os.Stdout
	stderr     io.Writer      = os.Stderr
)

func init() {
	rootCmd.Flags().StringVarP(&flagDest, "dest", "d", "", "Install path for the downloaded binary (default from config, then ~/"+branding.DefaultDest()+")")
	rootCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "Only check whether a new version is available")
	rootCmd.Flags().BoolVar(&flagAtomic, "atomic", false, "Download to a temporary file and replace the destination only after the size check")
	rootCmd.Flags().StringVar(&flagBinary, "binary", "", "Executable queried for the installed version (default from config)")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress status and progress output")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Abort the whole run after this long (0 means no limit)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` compares the commit announced on the nightly release page with the one
printed by the installed binary and downloads the new build when they differ.

  nvup                         # update ~/.local/bin/nvim if behind
  nvup --check                 # report only
  nvup --dest /opt/bin/nvim    # install somewhere else`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		settings := config.Current()
		if cmd.Flags().Changed("dest") {
			settings.Dest = flagDest
		}
		if cmd.Flags().Changed("binary") {
			settings.Binary = flagBinary
		}
		if cmd.Flags().Changed("atomic") {
			settings.Atomic = flagAtomic
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if flagTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, flagTimeout)
			defer cancel()
		}

		res, err := runUpdate(ctx, settings, flagCheck, flagQuiet)
		if err != nil {
			return &runError{err: err, binary: settings.Binary}
		}

		switch res.State {
		case updater.StateUpToDate:
			fmt.Fprintf(stdout, "You are on the latest version (%s)\n", res.Local)
		case updater.StateCheckOnly:
			fmt.Fprintf(stdout, "Update available: %s -> %s\n", res.Local, res.Remote)
		case updater.StateDone:
			fmt.Fprintf(stdout, "Successfully updated %s to %s\n", res.Dest, res.Remote)
		}
		return nil
	},
}

func runUpdate(ctx context.Context, s config.Settings, checkOnly, quiet bool) (*updater.Result, error) {
	var log io.Writer = io.Discard
	var progress updater.ProgressFunc
	if !quiet {
		bar := updater.NewProgressBar(stderr)
		log, progress = bar, bar.Report
	}

	extractor, err := updater.NewExtractor(s.Product)
	if err != nil {
		return nil, err
	}

	remote := updater.NewHTTPSource(s.ReleaseURL,
		updater.WithSourceClient(httpClient),
		updater.WithSourceUserAgent(s.UserAgent),
	)
	local := updater.NewCommandSource(s.Binary, s.VersionFlag, runner)

	dlOpts := []updater.DownloadOption{
		updater.WithDownloadClient(httpClient),
		updater.WithUserAgent(s.UserAgent),
		updater.WithAtomicReplace(s.Atomic),
		updater.WithProgress(progress),
	}
	dl := updater.NewDownloader(s.DownloadURL, dlOpts...)

	u, err := updater.New(remote, local, dl, updater.WithExtractor(extractor), updater.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return u.Run(ctx, updater.RunOptions{Dest: s.Dest, CheckOnly: checkOnly})
}

// Execute runs the root command with build info injected via ldflags and
// prints any error in a form that names its kind.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, formatError(err))
	}
	return err
}

// runError remembers which binary a failed run queried, since flags may
// override the configured one.
type runError struct {
	err    error
	binary string
}

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

func formatError(err error) string {
	kind := updater.KindOf(err)
	if kind == updater.KindUnknown {
		return "Error: " + err.Error()
	}
	msg := fmt.Sprintf("Error (%s): %v", kind, err)
	switch kind {
	case updater.KindProcessInvocation:
		binary := config.Get(config.KeyBinary)
		var re *runError
		if errors.As(err, &re) && re.binary != "" {
			binary = re.binary
		}
		msg += fmt.Sprintf("\nIs %s installed and on your PATH? Use --binary to point at it.", binary)
	case updater.KindIncompleteDownload:
		msg += "\nThe partially written file was left in place; run again to retry."
	}
	if errors.Is(err, context.DeadlineExceeded) {
		msg += "\nThe run exceeded --timeout."
	}
	return msg
}
