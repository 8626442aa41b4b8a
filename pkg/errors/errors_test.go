package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-drift/snapshot/pkg/errors"
)

func TestRenderError_Message(t *testing.T) {
	err := errors.InvalidArgumentf("render.Rasterize", "logical size %gx%g is not positive", 0.0, 100.0)
	msg := err.Error()
	if !strings.Contains(msg, "render.Rasterize") {
		t.Errorf("message %q missing op", msg)
	}
	if !strings.Contains(msg, "invalid_argument") {
		t.Errorf("message %q missing kind", msg)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want errors.Kind
	}{
		{errors.InvalidArgumentf("op", "bad"), errors.KindInvalidArgument},
		{errors.InvalidStatef("op", "bad"), errors.KindInvalidState},
		{errors.Unavailablef("op", "bad"), errors.KindUnavailable},
		{errors.Renderf("op", "bad"), errors.KindRender},
		{stderrors.New("plain"), errors.KindUnknown},
		{nil, errors.KindUnknown},
	}
	for _, tt := range tests {
		if got := errors.KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := errors.Unavailablef("render.Rasterize", "no surface")
	wrapped := fmt.Errorf("request failed: %w", inner)
	if got := errors.KindOf(wrapped); got != errors.KindUnavailable {
		t.Errorf("KindOf(wrapped) = %v, want KindUnavailable", got)
	}
	if !errors.IsKind(wrapped, errors.KindUnavailable) {
		t.Error("IsKind should see through wrapping")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.New("op", errors.KindRender, cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}
