package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Akashdeep-Patra/lazylist/internal/config"
	"github.com/Akashdeep-Patra/lazylist/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFromFlags(t *testing.T) {
	cfg := config.Default()

	cmd := buildCountCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--generate", "12"}))
	svc, err := sourceFromFlags(cmd, nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, "generated(12)", svc.Name())
	assert.IsType(t, &feed.CachedService{}, svc)

	path := filepath.Join(t.TempDir(), "feed.txt")
	require.NoError(t, os.WriteFile(path, []byte("a: one\n"), 0o644))
	cmd = buildCountCmd()
	svc, err = sourceFromFlags(cmd, []string{path}, cfg)
	require.NoError(t, err)
	assert.Equal(t, path, svc.Path())

	cmd = buildCountCmd()
	_, err = sourceFromFlags(cmd, nil, cfg)
	assert.ErrorContains(t, err, "no source")

	cmd = buildCountCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--command", "echo hi"}))
	_, err = sourceFromFlags(cmd, []string{path}, cfg)
	assert.ErrorContains(t, err, "pick one source")
}

func TestPrintCounts(t *testing.T) {
	records, err := feed.LoadAll(feed.NewGeneratedService(10), 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printCounts(&buf, "gen", records, true))
	var got struct {
		Source     string          `json:"source"`
		Total      int             `json:"total"`
		Categories []categoryCount `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "gen", got.Source)
	assert.Equal(t, 10, got.Total)
	assert.Equal(t, []categoryCount{{"alpha", 7}, {"beta", 3}}, got.Categories)

	buf.Reset()
	require.NoError(t, printCounts(&buf, "gen", records, false))
	assert.Contains(t, buf.String(), "alpha")
	assert.Contains(t, buf.String(), "10")
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	logger, closeLog, err := newLogger(cfg)
	require.NoError(t, err)
	logger.Info("discarded")
	closeLog()

	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "lzl.log")
	cfg.LogLevel = "debug"
	logger, closeLog, err = newLogger(cfg)
	require.NoError(t, err)
	logger.Debug("hello", "n", 1)
	closeLog()
	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")

	cfg.LogLevel = "loud"
	_, _, err = newLogger(cfg)
	assert.Error(t, err)
}
