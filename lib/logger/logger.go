package logger

import "fmt"

type Logger interface {
	Debug(log ...any)
	Error(log ...any)
}

// PrefixedLogger tags every line with the owning subsystem.
type PrefixedLogger struct {
	Prefix string
}

func (pl PrefixedLogger) Debug(log ...any) {
	fmt.Println("["+pl.Prefix+"] Debug:", log)
}

func (pl PrefixedLogger) Error(log ...any) {
	fmt.Println("["+pl.Prefix+"] Error:", log)
}

var _ Logger = &PrefixedLogger{}
