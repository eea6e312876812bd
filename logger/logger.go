// logger
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// Output modes shared by the binaries
const (
	Verbose = "verbose" // progress and tables on stdout, log records also on stderr
	Quiet   = "quiet"   // nothing but errors
	Model   = "model"   // one machine readable result line
	Table   = "table"   // the sensitivity table as csv
	Web     = "web"     // the sensitivity table as a file only
)

var OutputMode *string // one of the modes above
var Seed *uint64       // Random number generator seed, names the log file

var std *Logger

// exit is replaced in tests
var exit = os.Exit

// Logger writes the run log of one program and seed to log.<program>.<seed>.
type Logger struct {
	Program string
	Mode    string

	path string
	file *os.File
	log  *slog.Logger
}

// New opens (appending) the log file for a program and seed in dir.
func New(program, dir string, seed uint64, mode string) (*Logger, error) {
	path := filepath.Join(dir, "log."+program+"."+strconv.FormatUint(seed, 10))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var w io.Writer = f
	level := slog.LevelInfo
	if mode == Verbose {
		w = io.MultiWriter(f, os.Stderr)
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{
		Program: program,
		Mode:    mode,
		path:    path,
		file:    f,
		log:     slog.New(h).With(slog.String("program", program), slog.Uint64("seed", seed)),
	}, nil
}

// Path of the log file.
func (l *Logger) Path() string { return l.path }

// Slog is the structured logger handed to the simulation packages.
func (l *Logger) Slog() *slog.Logger { return l.log }

func (l *Logger) Verbose() bool { return l.Mode == Verbose }

func (l *Logger) LogWriter(message string) {
	l.log.Info(message)
}

// LogWriterFatal logs the message, echoes it when verbose and exits.
func (l *Logger) LogWriterFatal(message string) {
	l.log.Error(message)
	if l.Mode == Verbose {
		fmt.Println(message)
	}
	l.Close()
	exit(1)
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Init opens the package logger from the OutputMode and Seed flags.
func Init(program, dir string) error {
	mode, seed := Verbose, uint64(0)
	if OutputMode != nil {
		mode = *OutputMode
	}
	if Seed != nil {
		seed = *Seed
	}
	l, err := New(program, dir, seed, mode)
	if err != nil {
		return err
	}
	std = l
	return nil
}

// Slog returns the package logger's slog, or a discarding one before Init.
func Slog() *slog.Logger {
	if std == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return std.Slog()
}

func LogWriter(message string) {
	if std == nil {
		fmt.Fprintln(os.Stderr, message)
		return
	}
	std.LogWriter(message)
}

func LogWriterFatal(message string) {
	if std == nil {
		fmt.Fprintln(os.Stderr, message)
		exit(1)
		return
	}
	std.LogWriterFatal(message)
}

// Close flushes the package logger.
func Close() {
	if std != nil {
		std.Close()
	}
}
