//go:build unix

package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devserve/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("hello"), 0o644))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	cfg := config.Default()
	cfg.Root = dir
	cfg.Port = port
	return cfg
}

func TestRunStopsOnInterrupt(t *testing.T) {
	cfg := testConfig(t)

	ctx, stop := interruptContext(context.Background())
	defer stop()

	var out bytes.Buffer
	done := make(chan int, 1)
	go func() { done <- run(ctx, cfg, &out) }()

	require.Eventually(t, func() bool {
		res, err := http.Get(cfg.URL() + "/index.html")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after SIGINT")
	}

	want := "Starting server at " + cfg.URL() + "\n" +
		"Press Ctrl+C to stop\n" +
		"\n" +
		"Server stopped.\n"
	assert.Equal(t, want, out.String())
}

func TestRunBindFailure(t *testing.T) {
	cfg := testConfig(t)
	ln, err := net.Listen("tcp", cfg.Addr())
	require.NoError(t, err)
	defer ln.Close()

	var out bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), cfg, &out))
	assert.Empty(t, out.String())
}

// The child catches the first SIGINT through interruptContext and must be
// killed by the second one.
func TestSecondInterruptKills(t *testing.T) {
	if os.Getenv("DEVSERVE_INTERRUPT_CHILD") == "1" {
		ctx, stop := interruptContext(context.Background())
		defer stop()

		syscall.Kill(os.Getpid(), syscall.SIGINT)
		<-ctx.Done()
		// let the signal handler be restored
		time.Sleep(100 * time.Millisecond)
		syscall.Kill(os.Getpid(), syscall.SIGINT)
		time.Sleep(5 * time.Second)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestSecondInterruptKills$")
	cmd.Env = append(os.Environ(), "DEVSERVE_INTERRUPT_CHILD=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	require.True(t, ok)
	assert.True(t, status.Signaled())
	assert.Equal(t, syscall.SIGINT, status.Signal())
}
