package js

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/sightline/dom"
)

// scriptCallback bridges an IntersectionObserver callback from script. It is
// the single production implementation of dom.IntersectionObserverCallback;
// the observer core never learns how the callback is bound.
type scriptCallback struct {
	setup      *intersectionObserverSetup
	callback   goja.Callable
	jsObserver *goja.Object
}

// HandleIntersections converts the drained entries into script objects and
// invokes the callback with (entries, observer). An exception thrown by the
// callback is returned to the caller; delivery is never retried.
func (cb *scriptCallback) HandleIntersections(entries []*dom.IntersectionObserverEntry, observer *dom.IntersectionObserver) error {
	vm := cb.setup.runtime.vm

	jsEntries := vm.NewArray()
	for i, entry := range entries {
		jsEntries.Set(fmt.Sprintf("%d", i), cb.setup.bindEntry(entry))
	}
	jsEntries.Set("length", len(entries))

	_, err := cb.callback(cb.jsObserver, jsEntries, cb.jsObserver)
	return err
}

// intersectionObserverSetup holds the per-runtime state the bindings share.
type intersectionObserverSetup struct {
	runtime    *Runtime
	binder     *DOMBinder
	document   *dom.Document
	entryProto *goja.Object
}

// SetupIntersectionObserver installs the IntersectionObserver constructor on
// the runtime and wires the document's task manager into the runtime's event
// loop and error sink.
func SetupIntersectionObserver(runtime *Runtime, binder *DOMBinder, document *dom.Document) {
	vm := runtime.vm

	s := &intersectionObserverSetup{
		runtime:  runtime,
		binder:   binder,
		document: document,
	}

	// Notification tasks run as macrotasks; callback failures surface
	// through the runtime's error handler, as for any unhandled exception.
	taskManager := document.IntersectionObserverTaskManager()
	taskManager.SetTaskPoster(runtime.eventLoop.queueMacrotask)
	taskManager.SetUnhandledErrorHandler(runtime.reportError)

	// IntersectionObserverEntry has no script-callable constructor.
	s.entryProto = newIllegalConstructor(vm, "IntersectionObserverEntry")

	vm.Set("IntersectionObserver", func(call goja.ConstructorCall) *goja.Object {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to construct 'IntersectionObserver': 1 argument required, but only 0 present."))
		}

		callback, ok := goja.AssertFunction(call.Arguments[0])
		if !ok {
			panic(vm.NewTypeError("Failed to construct 'IntersectionObserver': parameter 1 is not a function."))
		}

		jsObserver := call.This
		init := s.parseInit(call.Arguments[1:])

		cb := &scriptCallback{
			setup:      s,
			callback:   callback,
			jsObserver: jsObserver,
		}

		observer, err := dom.NewIntersectionObserver(s.document, cb, init)
		if err != nil {
			s.throwConstructionError(err)
		}

		s.bindObserverMethods(jsObserver, observer)
		return jsObserver
	})
}

// parseInit converts the script options argument into an init struct.
func (s *intersectionObserverSetup) parseInit(args []goja.Value) dom.IntersectionObserverInit {
	vm := s.runtime.vm
	init := dom.IntersectionObserverInit{}

	if len(args) == 0 || goja.IsNull(args[0]) || goja.IsUndefined(args[0]) {
		return init
	}
	options := args[0].ToObject(vm)
	if options == nil {
		return init
	}

	if v := options.Get("root"); v != nil && !goja.IsNull(v) && !goja.IsUndefined(v) {
		root := s.binder.getGoElement(v.ToObject(vm))
		if root == nil {
			panic(vm.NewTypeError("Failed to construct 'IntersectionObserver': member root is not of type 'Element'."))
		}
		init.Root = root
	}

	if v := options.Get("rootMargin"); v != nil && !goja.IsUndefined(v) {
		init.RootMargin = v.String()
	}

	if v := options.Get("threshold"); v != nil && !goja.IsUndefined(v) {
		init.Thresholds = s.parseThresholdValue(v)
	}

	return init
}

// parseThresholdValue accepts the IDL (double or sequence<double>) union.
func (s *intersectionObserverSetup) parseThresholdValue(v goja.Value) []float64 {
	vm := s.runtime.vm

	obj := v.ToObject(vm)
	length := obj.Get("length")
	if length == nil || goja.IsUndefined(length) {
		// Scalar form.
		return []float64{v.ToFloat()}
	}

	n := int(length.ToInteger())
	thresholds := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		item := obj.Get(fmt.Sprintf("%d", i))
		if item == nil || goja.IsUndefined(item) {
			thresholds = append(thresholds, 0)
			continue
		}
		thresholds = append(thresholds, item.ToFloat())
	}
	return thresholds
}

// throwConstructionError rethrows a construction failure as the matching
// script error type.
func (s *intersectionObserverSetup) throwConstructionError(err error) {
	vm := s.runtime.vm

	var domErr *dom.DOMError
	if errors.As(err, &domErr) {
		if ctor, ok := vm.Get(domErr.Name).(*goja.Object); ok && ctor != nil {
			if errObj, newErr := vm.New(ctor, vm.ToValue(domErr.Message)); newErr == nil {
				panic(errObj)
			}
		}
		panic(vm.NewTypeError(domErr.Message))
	}
	panic(vm.NewTypeError(err.Error()))
}

// bindObserverMethods adds the IntersectionObserver methods and read-only
// attributes to a JavaScript object.
func (s *intersectionObserverSetup) bindObserverMethods(jsObserver *goja.Object, observer *dom.IntersectionObserver) {
	vm := s.runtime.vm

	// Read-only attributes, fixed at construction time.
	if root := observer.Root(); root != nil {
		jsObserver.Set("root", s.binder.BindElement(root))
	} else {
		jsObserver.Set("root", goja.Null())
	}
	jsObserver.Set("rootMargin", observer.RootMargin())

	thresholds := vm.NewArray()
	for i, t := range observer.Thresholds() {
		thresholds.Set(fmt.Sprintf("%d", i), t)
	}
	thresholds.Set("length", len(observer.Thresholds()))
	jsObserver.Set("thresholds", thresholds)

	// observe(target)
	jsObserver.Set("observe", func(call goja.FunctionCall) goja.Value {
		target := s.requireElementArgument(call, "observe")
		observer.Observe(target)
		return goja.Undefined()
	})

	// unobserve(target)
	jsObserver.Set("unobserve", func(call goja.FunctionCall) goja.Value {
		target := s.requireElementArgument(call, "unobserve")
		observer.Unobserve(target)
		return goja.Undefined()
	})

	// disconnect()
	jsObserver.Set("disconnect", func(call goja.FunctionCall) goja.Value {
		observer.Disconnect()
		return goja.Undefined()
	})

	// takeRecords()
	jsObserver.Set("takeRecords", func(call goja.FunctionCall) goja.Value {
		entries := observer.TakeRecords()
		jsEntries := vm.NewArray()
		for i, entry := range entries {
			jsEntries.Set(fmt.Sprintf("%d", i), s.bindEntry(entry))
		}
		jsEntries.Set("length", len(entries))
		return jsEntries
	})
}

// requireElementArgument validates the single Element parameter the observe
// and unobserve methods take. The core treats nil as a bindings bug, so the
// guard lives here.
func (s *intersectionObserverSetup) requireElementArgument(call goja.FunctionCall, method string) *dom.Element {
	vm := s.runtime.vm

	if len(call.Arguments) < 1 {
		panic(vm.NewTypeError(fmt.Sprintf(
			"Failed to execute '%s' on 'IntersectionObserver': 1 argument required, but only 0 present.", method)))
	}
	arg := call.Arguments[0]
	if goja.IsNull(arg) || goja.IsUndefined(arg) {
		panic(vm.NewTypeError(fmt.Sprintf(
			"Failed to execute '%s' on 'IntersectionObserver': parameter 1 is not of type 'Element'.", method)))
	}
	target := s.binder.getGoElement(arg.ToObject(vm))
	if target == nil {
		panic(vm.NewTypeError(fmt.Sprintf(
			"Failed to execute '%s' on 'IntersectionObserver': parameter 1 is not of type 'Element'.", method)))
	}
	return target
}

// bindEntry creates a JavaScript IntersectionObserverEntry object.
func (s *intersectionObserverSetup) bindEntry(entry *dom.IntersectionObserverEntry) *goja.Object {
	vm := s.runtime.vm

	jsEntry := vm.NewObject()
	jsEntry.SetPrototype(s.entryProto)

	jsEntry.Set("time", entry.Time)
	jsEntry.Set("rootBounds", s.binder.bindRect(entry.RootBounds))
	jsEntry.Set("boundingClientRect", s.binder.bindRect(entry.BoundingClientRect))
	jsEntry.Set("intersectionRect", s.binder.bindRect(entry.IntersectionRect))
	jsEntry.Set("isIntersecting", entry.IsIntersecting)
	jsEntry.Set("intersectionRatio", entry.IntersectionRatio)

	if entry.Target != nil {
		jsEntry.Set("target", s.binder.BindElement(entry.Target))
	} else {
		jsEntry.Set("target", goja.Null())
	}

	return jsEntry
}
