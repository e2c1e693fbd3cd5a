package net_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "biasdb/internal/platform/errors"
	pnet "biasdb/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	status, w := pnet.Success(http.StatusCreated, map[string]string{"hash": "abc"}, "req-1")
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, http.StatusCreated, w.StatusCode)
	require.Equal(t, "Created", w.Status)
	require.Equal(t, "req-1", w.RequestID)
	require.Equal(t, map[string]string{"hash": "abc"}, w.Data)
	require.Zero(t, w.Code)

	status, w = pnet.Success(0, nil, "req-2")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "OK", w.Status)
}

func TestError_ProjectErrorMapped(t *testing.T) {
	err := perr.HashCollisionf("digest taken")

	status, w := pnet.Error(err, "req-5")
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, http.StatusConflict, w.StatusCode)
	require.Equal(t, http.StatusText(http.StatusConflict), w.Status)
	require.Equal(t, "req-5", w.RequestID)
	require.Equal(t, perr.ErrorCodeHashCollision, w.Code)
	require.Equal(t, "digest taken", w.Error)
	require.Nil(t, w.Data)
}

func TestError_ForeignErrorIsInternal(t *testing.T) {
	status, w := pnet.Error(http.ErrBodyNotAllowed, "req-6")
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, perr.ErrorCodeUnknown, w.Code)
	require.Equal(t, http.ErrBodyNotAllowed.Error(), w.Error)
}

func TestError_NilIsOK(t *testing.T) {
	status, w := pnet.Error(nil, "req-7")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, w.Error)
}

func TestRequestID_FromChi(t *testing.T) {
	var got string
	h := chimw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = pnet.RequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "rid-9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "rid-9", got)

	require.Empty(t, pnet.RequestID(context.Background()))
}
