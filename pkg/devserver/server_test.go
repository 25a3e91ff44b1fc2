package devserver_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailkit/pkg/devserver"
)

func TestServer_RunAndShutdown(t *testing.T) {
	t.Parallel()

	started := make(chan string, 1)
	srv := devserver.NewServer(
		devserver.WithAddr("127.0.0.1:0"),
		devserver.WithShutdownTimeout(100*time.Millisecond),
		devserver.WithStartHook(func(addr string) { started <- addr }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, devserver.HealthCheckHandler()) }()

	var addr string
	select {
	case addr = <-started:
	case <-time.After(2 * time.Second):
		require.Fail(t, "server did not start")
	}

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestServer_RunTwice(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	srv := devserver.NewServer(
		devserver.WithAddr("127.0.0.1:0"),
		devserver.WithStartHook(func(string) { close(started) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, nil) }()
	<-started

	err := srv.Run(ctx, nil)
	assert.ErrorIs(t, err, devserver.ErrStart)

	cancel()
	require.NoError(t, <-done)
}

func TestServer_AddressInUse(t *testing.T) {
	t.Parallel()

	started := make(chan string, 1)
	first := devserver.NewServer(
		devserver.WithAddr("127.0.0.1:0"),
		devserver.WithStartHook(func(addr string) { started <- addr }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- first.Run(ctx, nil) }()
	addr := <-started

	err := devserver.NewServer(devserver.WithAddr(addr)).Run(context.Background(), nil)
	assert.ErrorIs(t, err, devserver.ErrStart)

	cancel()
	require.NoError(t, <-done)
}

func TestWithPort_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { devserver.WithPort(0) })
	assert.Panics(t, func() { devserver.WithPort(70000) })
	assert.NotPanics(t, func() { devserver.WithPort(devserver.DefaultPort) })
}

func TestServer_ShutdownEndsLiveStreams(t *testing.T) {
	t.Parallel()

	reloader := devserver.NewReloader()
	started := make(chan string, 1)
	srv := devserver.NewServer(
		devserver.WithAddr("127.0.0.1:0"),
		devserver.WithShutdownTimeout(5*time.Second),
		devserver.WithStartHook(func(addr string) { started <- addr }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, reloader.Handler()) }()
	addr := <-started

	resp, err := http.Get("http://" + addr + devserver.LivePath + "?page=/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Eventually(t, func() bool { return reloader.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	stopped := time.Now()
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Less(t, time.Since(stopped), 2*time.Second)
	case <-time.After(3 * time.Second):
		require.Fail(t, "open stream held the shutdown")
	}
	assert.Zero(t, reloader.Subscribers())
}
