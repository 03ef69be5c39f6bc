package updater

import "errors"

// Each error returned by this package wraps exactly one of these.
var (
	ErrTransport          = errors.New("fetch failed")
	ErrProcessInvocation  = errors.New("could not run executable")
	ErrTextDecoding       = errors.New("output is not valid text")
	ErrPatternNotFound    = errors.New("version pattern not found")
	ErrSizeUnknown        = errors.New("download size unknown")
	ErrIncompleteDownload = errors.New("incomplete download")
	ErrFilesystem         = errors.New("filesystem error")
)

// Kind classifies an error by the sentinel it wraps.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindProcessInvocation
	KindTextDecoding
	KindPatternNotFound
	KindSizeUnknown
	KindIncompleteDownload
	KindFilesystem
)

var kinds = []struct {
	kind Kind
	err  error
}{
	{KindTransport, ErrTransport},
	{KindProcessInvocation, ErrProcessInvocation},
	{KindTextDecoding, ErrTextDecoding},
	{KindPatternNotFound, ErrPatternNotFound},
	{KindSizeUnknown, ErrSizeUnknown},
	{KindIncompleteDownload, ErrIncompleteDownload},
	{KindFilesystem, ErrFilesystem},
}

// KindOf returns the Kind of err, or KindUnknown if it wraps no sentinel.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

// String returns a short label suitable for user-facing messages.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "network error"
	case KindProcessInvocation:
		return "local binary error"
	case KindTextDecoding:
		return "decoding error"
	case KindPatternNotFound:
		return "version not found"
	case KindSizeUnknown:
		return "unknown download size"
	case KindIncompleteDownload:
		return "incomplete download"
	case KindFilesystem:
		return "filesystem error"
	default:
		return "error"
	}
}
