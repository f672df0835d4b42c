package cartstate

import "go.uber.org/zap"

// Notifier surfaces user-facing outcomes of cart mutations.
type Notifier interface {
	Success(message string)
	Error(message string, err error)
}

// LogNotifier reports notifications through zap.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) logger() *zap.Logger {
	if n.Logger == nil {
		return zap.NewNop()
	}
	return n.Logger
}

func (n LogNotifier) Success(message string) {
	n.logger().Info(message)
}

func (n LogNotifier) Error(message string, err error) {
	n.logger().Error(message, zap.Error(err))
}
