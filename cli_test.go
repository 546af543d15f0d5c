package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

func saveTestProject(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "badge.epd")
	s := NewSession(250, 122)
	s.AddRectangle()
	require.NoError(t, s.Save(path))
	return path
}

func TestNewExportJob(t *testing.T) {
	c := defaultConfig()

	job, err := newExportJob(c, "dir/badge.epd", "", "")
	require.NoError(t, err)
	assert.Equal(t, FormatPython, job.format)
	assert.Equal(t, filepath.Join("dir", "badge.py"), job.out)

	job, err = newExportJob(c, "badge.epd", "", "proof.pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, job.format)

	job, err = newExportJob(c, "badge.epd", FormatC, "")
	require.NoError(t, err)
	assert.Equal(t, "badge.h", job.out)

	_, err = newExportJob(c, "badge.epd", "gif", "")
	assert.Error(t, err)
	_, err = newExportJob(c, "badge.epd", "", "out.gif")
	assert.Error(t, err)
}

func TestRunCLIExport(t *testing.T) {
	project := saveTestProject(t)
	out := filepath.Join(filepath.Dir(project), "badge.png")

	var stdout, stderr bytes.Buffer
	code := runCLI(context.Background(), []string{"export", "-o", out, project}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), out)
	assert.FileExists(t, out)
}

func TestRunCLIUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, runCLI(context.Background(), nil, &stdout, &stderr))
	assert.Equal(t, 2, runCLI(context.Background(), []string{"frobnicate"}, &stdout, &stderr))
	assert.Equal(t, 2, runCLI(context.Background(), []string{"export"}, &stdout, &stderr))
	assert.Equal(t, 0, runCLI(context.Background(), []string{"help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "usage:")

	stderr.Reset()
	missing := filepath.Join(t.TempDir(), "missing.epd")
	assert.Equal(t, 1, runCLI(context.Background(), []string{"export", missing}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "missing.epd")
}

func TestWatchReexportsOnChange(t *testing.T) {
	project := saveTestProject(t)
	out := filepath.Join(filepath.Dir(project), "badge.txt")
	job, err := newExportJob(defaultConfig(), project, "", out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stdout, stderr syncBuffer
	done := make(chan error, 1)
	go func() { done <- job.watch(ctx, &stdout, &stderr) }()

	require.Eventually(t, func() bool {
		return bytes.Contains(stdout.Bytes(), []byte("watching"))
	}, 5*time.Second, 10*time.Millisecond)

	s := NewSession(250, 122)
	s.AddCircle()
	require.NoError(t, s.Save(project))

	require.Eventually(t, func() bool {
		_, err := os.Stat(out)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchReportsBadSaveAndKeepsGoing(t *testing.T) {
	project := saveTestProject(t)
	out := filepath.Join(filepath.Dir(project), "badge.txt")
	job, err := newExportJob(defaultConfig(), project, "", out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stdout, stderr syncBuffer
	done := make(chan error, 1)
	go func() { done <- job.watch(ctx, &stdout, &stderr) }()

	require.Eventually(t, func() bool {
		return bytes.Contains(stdout.Bytes(), []byte("watching"))
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(project, []byte(`{"version": "1.0"}`), 0o644))
	require.Eventually(t, func() bool {
		return bytes.Contains(stderr.Bytes(), []byte("invalid project"))
	}, 5*time.Second, 20*time.Millisecond)

	s := NewSession(250, 122)
	s.AddLine()
	require.NoError(t, s.Save(project))
	require.Eventually(t, func() bool {
		return bytes.Contains(stdout.Bytes(), []byte("wrote"))
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
