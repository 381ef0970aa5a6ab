package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/user-directory/engine/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{appErr.New(appErr.CodeInvalid, "bad"), http.StatusBadRequest},
		{appErr.New(appErr.CodeNotFound, "missing"), http.StatusNotFound},
		{appErr.New(appErr.CodeUnavailable, "down"), http.StatusServiceUnavailable},
		{appErr.New(appErr.CodeDeadline, "slow"), http.StatusGatewayTimeout},
		{appErr.New(appErr.CodeRateLimited, "slow down"), http.StatusTooManyRequests},
		{appErr.New(appErr.CodeInternal, "boom"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestFromAppErrorHidesPlainMessages(t *testing.T) {
	require.Nil(t, FromAppError(nil))

	e := FromAppError(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	require.Equal(t, "internal", e.Code)
	require.Equal(t, "internal error", e.Message)

	wrapped := fmt.Errorf("handler: %w", appErr.New(appErr.CodeNotFound, "user not found"))
	e = FromAppError(wrapped)
	require.Equal(t, "not_found", e.Code)
	require.Equal(t, "user not found", e.Message)
}
