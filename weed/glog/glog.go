// Package glog is a trimmed fork of github.com/golang/glog: leveled, verbosity-gated
// logging with the classic "Lmmdd hh:mm:ss.uuuuuu file:line] msg" header.
//
// Unlike upstream it writes to a single io.Writer (stderr by default) instead of
// per-severity log files.
package glog

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

type severity int32

const (
	infoLog severity = iota
	warningLog
	errorLog
	fatalLog
)

const severityChar = "IWEF"

// Level is the verbosity threshold, set with -v.
type Level int32

func (l *Level) get() Level {
	return Level(atomic.LoadInt32((*int32)(l)))
}

func (l *Level) set(val Level) {
	atomic.StoreInt32((*int32)(l), int32(val))
}

// String is part of the flag.Value interface.
func (l *Level) String() string {
	return strconv.FormatInt(int64(l.get()), 10)
}

// Set is part of the flag.Value interface.
func (l *Level) Set(value string) error {
	v, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return err
	}
	l.set(Level(v))
	return nil
}

// fatalNoStacks is set by the Exit* family to skip the goroutine dump.
var fatalNoStacks uint32

type loggingT struct {
	mu        sync.Mutex
	out       io.Writer
	verbosity Level
	exit      func(code int)
}

var logging = loggingT{
	out:  os.Stderr,
	exit: os.Exit,
}

func init() {
	flag.Var(&logging.verbosity, "v", "log level for V logs")
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.out = w
}

// SetVerbosity changes the -v threshold at runtime.
func SetVerbosity(level Level) {
	logging.verbosity.set(level)
}

// Verbose is a boolean type returned by V. Its methods only log when it is true.
type Verbose bool

// V reports whether verbosity at the call site is at least the requested level.
//
//	if glog.V(2) { glog.Info("log this") }
//	glog.V(2).Infof("or this %d", n)
func V(level Level) Verbose {
	return Verbose(logging.verbosity.get() >= level)
}

func (v Verbose) Info(args ...interface{}) {
	if v {
		logging.print(infoLog, args...)
	}
}

func (v Verbose) Infoln(args ...interface{}) {
	if v {
		logging.println(infoLog, args...)
	}
}

func (v Verbose) Infof(format string, args ...interface{}) {
	if v {
		logging.printf(infoLog, format, args...)
	}
}

func Info(args ...interface{}) {
	logging.print(infoLog, args...)
}

func Infoln(args ...interface{}) {
	logging.println(infoLog, args...)
}

func Infof(format string, args ...interface{}) {
	logging.printf(infoLog, format, args...)
}

func Warning(args ...interface{}) {
	logging.print(warningLog, args...)
}

func Warningf(format string, args ...interface{}) {
	logging.printf(warningLog, format, args...)
}

func Error(args ...interface{}) {
	logging.print(errorLog, args...)
}

func Errorf(format string, args ...interface{}) {
	logging.printf(errorLog, format, args...)
}

// Fatalf logs, dumps all goroutine stacks, then exits with status 255.
func Fatalf(format string, args ...interface{}) {
	logging.printf(fatalLog, format, args...)
}

// Exitf logs, then exits with status 1 without a stack dump.
func Exitf(format string, args ...interface{}) {
	atomic.StoreUint32(&fatalNoStacks, 1)
	logging.printf(fatalLog, format, args...)
}

func (l *loggingT) print(s severity, args ...interface{}) {
	l.printDepth(s, 1, args...)
}

func (l *loggingT) printDepth(s severity, depth int, args ...interface{}) {
	buf := l.header(s, depth)
	fmt.Fprint(buf, args...)
	l.output(s, buf)
}

func (l *loggingT) println(s severity, args ...interface{}) {
	buf := l.header(s, 0)
	fmt.Fprintln(buf, args...)
	l.output(s, buf)
}

func (l *loggingT) printf(s severity, format string, args ...interface{}) {
	buf := l.header(s, 0)
	fmt.Fprintf(buf, format, args...)
	l.output(s, buf)
}

// header formats "Lmmdd hh:mm:ss.uuuuuu file:line] ".
func (l *loggingT) header(s severity, depth int) *bytes.Buffer {
	_, file, line, ok := runtime.Caller(3 + depth)
	if !ok {
		file = "???"
		line = 1
	} else {
		file = filepath.Base(file)
	}
	now := time.Now()
	_, month, day := now.Date()
	hour, minute, second := now.Clock()

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%c%02d%02d %02d:%02d:%02d.%06d %s:%d] ",
		severityChar[s], int(month), day, hour, minute, second, now.Nanosecond()/1000, file, line)
	return buf
}

func (l *loggingT) output(s severity, buf *bytes.Buffer) {
	if b := buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		buf.WriteByte('\n')
	}
	l.mu.Lock()
	l.out.Write(buf.Bytes())
	if s == fatalLog {
		if atomic.LoadUint32(&fatalNoStacks) > 0 {
			l.mu.Unlock()
			l.exit(1)
			return
		}
		trace := make([]byte, 1<<20)
		n := runtime.Stack(trace, true)
		l.out.Write(trace[:n])
		l.mu.Unlock()
		l.exit(255)
		return
	}
	l.mu.Unlock()
}
