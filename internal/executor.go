package internal

import (
	"github.com/typedrest/go-rest-client/interfaces"
)

type goroutineExecutor struct{}

// NewDefaultExecutor returns the executor used when a builder has none configured.
// It runs each task on its own goroutine.
func NewDefaultExecutor() interfaces.Executor {
	return goroutineExecutor{}
}

func (goroutineExecutor) Execute(task func()) {
	go task()
}
