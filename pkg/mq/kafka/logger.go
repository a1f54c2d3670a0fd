package kafka

import (
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"github.com/ninja0404/pump-signal/pkg/logger"
)

var _ sarama.StdLogger = (*saramaLogger)(nil)

type saramaLevel int

const (
	levelDebug saramaLevel = iota + 1
	levelInfo
)

// saramaLogger 把sarama的StdLogger输出转到zap
type saramaLogger struct {
	l     *logger.Logger
	level saramaLevel
}

func newSaramaLogger(l *logger.Logger, level saramaLevel) *saramaLogger {
	return &saramaLogger{l: l, level: level}
}

func (s *saramaLogger) emit(msg string) {
	msg = strings.TrimRight(msg, "\n")
	if s.level == levelDebug {
		s.l.Debug(msg)
		return
	}
	s.l.Info(msg)
}

func (s *saramaLogger) Print(v ...interface{}) {
	s.emit(fmt.Sprintln(v...))
}

func (s *saramaLogger) Printf(format string, v ...interface{}) {
	s.emit(fmt.Sprintf(format, v...))
}

func (s *saramaLogger) Println(v ...interface{}) {
	s.emit(fmt.Sprintln(v...))
}
