package updater

import (
	"context"
	"fmt"
	"io"
)

const defaultUserAgent = "nvup-updater"

// State is a step of an update run.
type State int

const (
	StateResolvingRemote State = iota
	StateResolvingLocal
	StateComparing
	StateUpToDate
	StateCheckOnly
	StateDownloading
	StateDone
	StateFailed
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateResolvingRemote:
		return "resolving-remote"
	case StateResolvingLocal:
		return "resolving-local"
	case StateComparing:
		return "comparing"
	case StateUpToDate:
		return "up-to-date"
	case StateCheckOnly:
		return "check-only"
	case StateDownloading:
		return "downloading"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	switch s {
	case StateUpToDate, StateCheckOnly, StateDone, StateFailed:
		return true
	}
	return false
}

// RunOptions are the per-invocation choices of the caller.
type RunOptions struct {
	Dest      string
	CheckOnly bool
}

// Result describes how a run ended. Remote and Local are the identifiers
// resolved before the run stopped; the Release fields hold the display
// version when one could be parsed.
type Result struct {
	State         State
	Remote        string
	Local         string
	RemoteRelease string
	LocalRelease  string
	Dest          string
}

// UpdateAvailable reports whether the run saw differing identifiers.
func (r *Result) UpdateAvailable() bool {
	return r.Remote != "" && r.Local != "" && r.Remote != r.Local
}

// Updater decides whether the local install is behind the nightly channel
// and downloads the new build when it is.
type Updater struct {
	remote    VersionSource
	local     VersionSource
	fetcher   Fetcher
	extractor *Extractor
	log       io.Writer
}

// Option configures an Updater.
type Option func(*Updater)

// WithLogger sets where status lines are written. Defaults to io.Discard.
func WithLogger(w io.Writer) Option {
	return func(u *Updater) {
		u.log = w
	}
}

// WithExtractor replaces the default "NVIM" extractor.
func WithExtractor(e *Extractor) Option {
	return func(u *Updater) {
		u.extractor = e
	}
}

// New creates an Updater from its collaborators.
func New(remote, local VersionSource, fetcher Fetcher, opts ...Option) (*Updater, error) {
	if remote == nil || local == nil || fetcher == nil {
		return nil, fmt.Errorf("updater needs a remote source, a local source and a fetcher")
	}
	u := &Updater{
		remote:  remote,
		local:   local,
		fetcher: fetcher,
		log:     io.Discard,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.extractor == nil {
		e, err := NewExtractor("NVIM")
		if err != nil {
			return nil, err
		}
		u.extractor = e
	}
	return u, nil
}

// Run walks the update state machine once. The returned Result is never nil
// and its State is always terminal; err is non-nil exactly when the State is
// StateFailed.
func (u *Updater) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	res := &Result{State: StateResolvingRemote, Dest: opts.Dest}

	fmt.Fprintln(u.log, "Fetching latest nightly version...")
	remote, release, err := u.resolve(ctx, u.remote, "remote")
	if err != nil {
		return u.fail(res, err)
	}
	res.Remote, res.RemoteRelease = remote, release
	fmt.Fprintf(u.log, "Latest nightly version is %s\n", describe(remote, release))

	res.State = StateResolvingLocal
	fmt.Fprintln(u.log, "Checking installed version...")
	local, release, err := u.resolve(ctx, u.local, "local")
	if err != nil {
		return u.fail(res, err)
	}
	res.Local, res.LocalRelease = local, release
	fmt.Fprintf(u.log, "Installed version is %s\n", describe(local, release))

	res.State = StateComparing
	switch {
	case res.Remote == res.Local:
		res.State = StateUpToDate
		fmt.Fprintf(u.log, "Already at the latest version: latest=%s current=%s\n", res.Remote, res.Local)
		return res, nil
	case opts.CheckOnly:
		res.State = StateCheckOnly
		fmt.Fprintf(u.log, "A new version is available: latest=%s current=%s\n", res.Remote, res.Local)
		return res, nil
	}

	res.State = StateDownloading
	fmt.Fprintf(u.log, "A new version is available: latest=%s current=%s\n", res.Remote, res.Local)
	fmt.Fprintf(u.log, "Installing to %s\n", opts.Dest)
	if err := u.fetcher.Download(ctx, opts.Dest); err != nil {
		return u.fail(res, err)
	}

	res.State = StateDone
	fmt.Fprintf(u.log, "Successfully updated to %s\n", res.Remote)
	return res, nil
}

func (u *Updater) resolve(ctx context.Context, src VersionSource, side string) (string, string, error) {
	text, err := src.RawVersion(ctx)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s version: %w", side, err)
	}
	id, ok := u.extractor.Extract(text)
	if !ok {
		return "", "", fmt.Errorf("resolving %s version: %w", side, ErrPatternNotFound)
	}
	release := ""
	if v, ok := u.extractor.Release(text); ok {
		release = "v" + v.String()
	}
	return id, release, nil
}

func (u *Updater) fail(res *Result, err error) (*Result, error) {
	fmt.Fprintf(u.log, "Update stopped while %s: %v\n", res.State, err)
	res.State = StateFailed
	return res, err
}

func describe(id, release string) string {
	if release == "" {
		return id
	}
	return fmt.Sprintf("%s (%s)", id, release)
}
