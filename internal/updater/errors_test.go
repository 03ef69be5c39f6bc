package updater

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection reset")
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", cause, KindUnknown},
		{"transport", fmt.Errorf("%w: %w", ErrTransport, cause), KindTransport},
		{"wrapped twice", fmt.Errorf("resolving remote version: %w", fmt.Errorf("%w: x", ErrTransport)), KindTransport},
		{"process", fmt.Errorf("%w: nvim", ErrProcessInvocation), KindProcessInvocation},
		{"decoding", ErrTextDecoding, KindTextDecoding},
		{"pattern", fmt.Errorf("resolving local version: %w", ErrPatternNotFound), KindPatternNotFound},
		{"size", ErrSizeUnknown, KindSizeUnknown},
		{"incomplete", fmt.Errorf("%w: wrote 1 of 2 bytes: %w", ErrIncompleteDownload, cause), KindIncompleteDownload},
		{"filesystem", ErrFilesystem, KindFilesystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindIncompleteDownload.String() != "incomplete download" {
		t.Errorf("unexpected label %q", KindIncompleteDownload.String())
	}
	if KindUnknown.String() != "error" {
		t.Errorf("unexpected label %q", KindUnknown.String())
	}
}
