package glog

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	reqid "github.com/seaweedfs/md5stream/weed/util/request_id"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return buf
}

func TestHeader(t *testing.T) {
	buf := captureOutput(t)
	Infof("hello %d", 42)
	assert.Regexp(t, `^I\d{4} \d{2}:\d{2}:\d{2}\.\d{6} glog_test\.go:\d+\] hello 42\n$`, buf.String())
}

func TestSeverityChars(t *testing.T) {
	buf := captureOutput(t)
	Warning("w")
	Errorf("e")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasPrefix(lines[0], "W"))
		assert.True(t, strings.HasPrefix(lines[1], "E"))
	}
}

func TestVerbosity(t *testing.T) {
	buf := captureOutput(t)
	defer SetVerbosity(0)

	SetVerbosity(1)
	V(2).Infof("hidden")
	V(1).Infof("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.True(t, bool(V(0)))
	assert.False(t, bool(V(2)))
}

func TestLevelFlag(t *testing.T) {
	var l Level
	assert.NoError(t, l.Set("3"))
	assert.Equal(t, "3", l.String())
	assert.Error(t, l.Set("x"))
}

func TestCtxRequestID(t *testing.T) {
	buf := captureOutput(t)
	ctx := reqid.Set(context.Background(), "abc123")
	WarningfCtx(ctx, "slow %s", "read")
	assert.Contains(t, buf.String(), "] request_id:abc123 slow read")

	buf.Reset()
	InfofCtx(context.Background(), "untagged")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestFatalExits(t *testing.T) {
	buf := captureOutput(t)
	var code int
	logging.exit = func(c int) { code = c }
	defer func() { logging.exit = os.Exit }()

	Fatalf("fatal %s", "thing")
	assert.Equal(t, 255, code)
	assert.Contains(t, buf.String(), "fatal thing")
	assert.Contains(t, buf.String(), "goroutine")
}
