package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "entry not found")

	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Equal(t, "entry not found", err.Message())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
	require.Equal(t, "[NOT_FOUND] entry not found", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "invalid name %q", "a/b")
	require.Equal(t, `[INVALID_INPUT] invalid name "a/b"`, err.Error())
}

func TestDefaultClassification(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want ErrorClassification
	}{
		{CodeTimeout, ClassificationRetryable},
		{CodeNetwork, ClassificationRetryable},
		{CodeUnavailable, ClassificationRetryable},
		{CodeFilesystem, ClassificationPermanent},
		{CodeAlreadyExists, ClassificationPermanent},
		{ErrorCode("CUSTOM"), ClassificationPermanent},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "x").Classification())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		require.Nil(t, Wrap(nil, CodeInternal, "ignored"))
		require.Nil(t, Wrapf(nil, CodeInternal, "ignored %d", 1))
		require.Nil(t, WrapWithContext(nil, CodeInternal, "ignored", nil))
	})

	t.Run("keeps cause in chain", func(t *testing.T) {
		err := Wrap(fs.ErrPermission, CodeForbidden, "remove entry")

		require.True(t, stderrors.Is(err, fs.ErrPermission))
		require.Equal(t, CodeForbidden, err.Code())
		require.Equal(t, "[FORBIDDEN] remove entry: permission denied", err.Error())
	})

	t.Run("preserves classification of platform cause", func(t *testing.T) {
		inner := New(CodeTimeout, "backend timed out")
		err := Wrap(inner, CodeFilesystem, "mkdir")

		require.Equal(t, CodeFilesystem, err.Code())
		require.True(t, err.Classification().IsRetryable())
		require.True(t, Is(err, inner))
	})
}

func TestWrapWithContext_CopiesMap(t *testing.T) {
	ctx := map[string]interface{}{"path": "out/a"}
	err := WrapWithContext(fs.ErrExist, CodeAlreadyExists, "mkdir", ctx)

	ctx["path"] = "mutated"
	require.Equal(t, "out/a", err.Context()["path"])

	got := err.Context()
	got["path"] = "mutated again"
	require.Equal(t, "out/a", err.Context()["path"])
}

func TestWithContext(t *testing.T) {
	t.Run("platform error", func(t *testing.T) {
		base := WrapWithContext(fs.ErrNotExist, CodeNotFound, "readdir", map[string]interface{}{"path": "out"})
		err := WithContext(base, "op", "empty")

		require.Equal(t, CodeNotFound, err.Code())
		require.Equal(t, "out", err.Context()["path"])
		require.Equal(t, "empty", err.Context()["op"])
		require.True(t, stderrors.Is(err, fs.ErrNotExist))
		require.Nil(t, base.Context()["op"])
	})

	t.Run("standard error", func(t *testing.T) {
		std := stderrors.New("boom")
		err := WithContext(std, "name", "x")

		require.Equal(t, CodeUnknown, err.Code())
		require.Equal(t, "x", err.Context()["name"])
		require.True(t, stderrors.Is(err, std))
	})

	t.Run("nil", func(t *testing.T) {
		require.Nil(t, WithContext(nil, "k", "v"))
	})
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: CodeUnknown},
		{name: "standard", err: stderrors.New("plain"), want: CodeUnknown},
		{name: "platform", err: New(CodeConflict, "conflict"), want: CodeConflict},
		{name: "outermost wins", err: Wrap(New(CodeTimeout, "t"), CodeFilesystem, "f"), want: CodeFilesystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestGetClassification(t *testing.T) {
	assert.Equal(t, ClassificationPermanent, GetClassification(nil))
	assert.Equal(t, ClassificationPermanent, GetClassification(stderrors.New("plain")))
	assert.Equal(t, ClassificationRetryable, GetClassification(New(CodeTimeout, "slow")))
	assert.Equal(t, ClassificationPermanent, GetClassification(New(CodeAlreadyExists, "taken")))
}

func TestIsRetryable(t *testing.T) {
	require.False(t, IsRetryable(nil))
	require.False(t, IsRetryable(stderrors.New("plain")))
	require.False(t, IsRetryable(New(CodeFilesystem, "disk")))
	require.True(t, IsRetryable(New(CodeNetwork, "reset")))
	require.True(t, IsRetryable(Wrap(New(CodeUnavailable, "busy"), CodeFilesystem, "remove")))
}

func TestAs(t *testing.T) {
	var err error = Wrap(fs.ErrExist, CodeAlreadyExists, "mkdir")

	var platformErr PlatformError
	require.True(t, As(err, &platformErr))
	require.Equal(t, CodeAlreadyExists, platformErr.Code())
}
