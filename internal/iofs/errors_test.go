package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
	}{
		{"CreateDirError", CreateDirError("/dir", originalErr),
			errcode.CreateDirError, "/dir"},
		{"CopyFileError", CopyFileError("/file", originalErr),
			errcode.CopyFileError, "/file"},
		{"ReadFileError", ReadFileError("/path", originalErr),
			errcode.ReadFileError, "/path"},
		{"HeuristicsError", HeuristicsError("/h.yaml", originalErr),
			errcode.HeuristicsReadError, "/h.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])

			assert.ErrorIs(t, gnErr.Err, originalErr)
			assert.Contains(t, gnErr.Err.Error(), "from")
			assert.Contains(t, gnErr.Err.Error(), "iofs.Test")
		})
	}
}
