package internal

import (
	"testing"
	"time"
)

func TestDefaultExecutorRunsTasks(t *testing.T) {
	done := make(chan struct{})
	NewDefaultExecutor().Execute(func() { close(done) })
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed")
	}
}
