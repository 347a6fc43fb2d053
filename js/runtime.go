// Package js provides the JavaScript-facing surface of the intersection
// observation engine. It uses the goja JavaScript engine (pure Go ES5.1+
// implementation).
package js

import (
	"fmt"
	"sync"

	"github.com/dop251/goja"
)

// Runtime wraps a goja JavaScript runtime with the browser-side plumbing the
// observation engine needs: an event loop for deferred notification tasks and
// an error sink for unhandled callback failures.
type Runtime struct {
	vm        *goja.Runtime
	eventLoop *eventLoop
	mu        sync.Mutex
	errors    []error
	onError   func(error)
}

// NewRuntime creates a new JavaScript runtime.
func NewRuntime() *Runtime {
	vm := goja.New()

	r := &Runtime{
		vm:        vm,
		eventLoop: newEventLoop(),
		errors:    make([]error, 0),
	}

	r.setupConsole()
	r.setupMicrotasks()

	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// SetOnError sets a callback for JavaScript errors, including unhandled
// errors thrown by intersection observer callbacks.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	// Recover from panics in the goja parser/runtime
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.reportError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.reportError(err)
	}
	return result, err
}

// RunEventLoop processes pending event loop tasks, including any queued
// intersection observer notification tasks.
// Returns true if there are more events to process.
func (r *Runtime) RunEventLoop() bool {
	return r.eventLoop.runOnce()
}

// HasPendingWork returns true if there are callbacks waiting.
func (r *Runtime) HasPendingWork() bool {
	return r.eventLoop.hasPending()
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// reportError records an error and forwards it to the onError handler.
func (r *Runtime) reportError(err error) {
	r.mu.Lock()
	handler := r.onError
	r.errors = append(r.errors, err)
	r.mu.Unlock()
	if handler != nil {
		handler(err)
	}
}

// setupConsole creates the console object with log, warn, error, info.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()

	console.Set("log", func(call goja.FunctionCall) goja.Value {
		fmt.Println(formatArgs(call.Arguments))
		return goja.Undefined()
	})

	console.Set("warn", func(call goja.FunctionCall) goja.Value {
		fmt.Println("[WARN]", formatArgs(call.Arguments))
		return goja.Undefined()
	})

	console.Set("error", func(call goja.FunctionCall) goja.Value {
		fmt.Println("[ERROR]", formatArgs(call.Arguments))
		return goja.Undefined()
	})

	console.Set("info", func(call goja.FunctionCall) goja.Value {
		fmt.Println("[INFO]", formatArgs(call.Arguments))
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// setupMicrotasks exposes queueMicrotask to scripts.
func (r *Runtime) setupMicrotasks() {
	r.vm.Set("queueMicrotask", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		callback, ok := goja.AssertFunction(call.Arguments[0])
		if !ok {
			return goja.Undefined()
		}
		r.eventLoop.queueMicrotask(func() {
			_, _ = callback(goja.Undefined())
		})
		return goja.Undefined()
	})
}

// formatArgs formats function call arguments for console output.
func formatArgs(args []goja.Value) string {
	result := ""
	for i, arg := range args {
		if i > 0 {
			result += " "
		}
		result += formatValue(arg)
	}
	return result
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
