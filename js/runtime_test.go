package js

import (
	"testing"
)

func TestExecuteReturnsResult(t *testing.T) {
	runtime := NewRuntime()

	result, err := runtime.Execute(`1 + 2`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 3 {
		t.Errorf("Expected 3, got %v", result)
	}
}

func TestExecuteRecordsErrors(t *testing.T) {
	runtime := NewRuntime()

	var handled []error
	runtime.SetOnError(func(err error) { handled = append(handled, err) })

	if _, err := runtime.Execute(`throw new Error('boom')`); err == nil {
		t.Fatal("Expected an error from a throwing script")
	}
	if len(runtime.Errors()) != 1 {
		t.Fatalf("Expected 1 recorded error, got %d", len(runtime.Errors()))
	}
	if len(handled) != 1 {
		t.Errorf("Expected the handler to receive the error, got %d", len(handled))
	}

	runtime.ClearErrors()
	if len(runtime.Errors()) != 0 {
		t.Error("Expected ClearErrors to empty the list")
	}
}

func TestMicrotasksRunBeforeMacrotasks(t *testing.T) {
	runtime := NewRuntime()

	var order []string
	runtime.eventLoop.queueMacrotask(func() { order = append(order, "macro") })
	runtime.eventLoop.queueMicrotask(func() { order = append(order, "micro") })

	runtime.RunEventLoop()

	if len(order) != 2 || order[0] != "micro" || order[1] != "macro" {
		t.Errorf("Expected [micro macro], got %v", order)
	}
}

func TestQueueMicrotaskFromScript(t *testing.T) {
	runtime := NewRuntime()

	if _, err := runtime.Execute(`
		var ran = false;
		queueMicrotask(function() { ran = true; });
	`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !runtime.HasPendingWork() {
		t.Fatal("Expected pending work after queueMicrotask")
	}
	for runtime.RunEventLoop() {
	}

	v, err := runtime.Execute(`ran`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !v.ToBoolean() {
		t.Error("Expected the queued microtask to have run")
	}
}
