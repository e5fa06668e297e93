package framework

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used throughout the harness. It is satisfied by
// *log.Logger and by the loggers returned from ldlog.Loggers.ForLevel.
type Logger interface {
	Println(args ...interface{})
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Println(args ...interface{})                {}
func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger records all output from a test scope. See ldtest.(*T).DebugLogger() for how
// output moves between parent and child scopes.
type CapturingLogger struct {
	output   []CapturedMessage
	children []*CapturingLogger
	lock     sync.Mutex
}

func (l *CapturingLogger) Println(args ...interface{}) {
	m := strings.TrimRight(fmt.Sprintln(args...), "\r\n")
	l.append(CapturedMessage{Time: time.Now(), Message: m})
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.append(CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
}

// While a child scope is active, its parent's messages go to the child.
func (l *CapturingLogger) append(m CapturedMessage) {
	l.lock.Lock()
	children := append([]*CapturingLogger(nil), l.children...)
	if len(children) == 0 {
		l.output = append(l.output, m)
	}
	l.lock.Unlock()
	for _, c := range children {
		c.append(m)
	}
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append(CapturedOutput(nil), l.output...)
}

// AddChildLogger starts redirecting output to a child; the child starts with a copy of
// everything captured here so far.
func (l *CapturingLogger) AddChildLogger(child *CapturingLogger) {
	l.lock.Lock()
	l.children = append(l.children, child)
	inherited := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()

	child.lock.Lock()
	child.output = append(inherited, child.output...)
	child.lock.Unlock()
}

func (l *CapturingLogger) RemoveChildLogger(child *CapturingLogger) {
	l.lock.Lock()
	defer l.lock.Unlock()
	for i, c := range l.children {
		if c == child {
			l.children = append(l.children[:i], l.children[i+1:]...)
			return
		}
	}
}

func (output CapturedOutput) ToString(prefix string) string {
	lines := make([]string, 0, len(output))
	for _, m := range output {
		lines = append(lines, fmt.Sprintf("%s[%s] %s", prefix, m.Time.Format(timestampFormat), m.Message))
	}
	return strings.Join(lines, "\n")
}

type prefixedLogger struct {
	base   Logger
	prefix string
}

// LoggerWithPrefix returns a Logger that adds a prefix to every message.
func LoggerWithPrefix(baseLogger Logger, prefix string) Logger {
	return prefixedLogger{baseLogger, prefix}
}

func (p prefixedLogger) Println(args ...interface{}) {
	p.base.Println(append([]interface{}{p.prefix}, args...)...)
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}
