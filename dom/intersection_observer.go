package dom

import (
	"sort"
	"weak"

	"github.com/chrisuehlinger/sightline/css"
)

// IntersectionObserverCallback receives batched intersection entries. The
// returned error reports an unhandled failure inside the client callback; the
// task manager, not the observer, decides how to surface it.
//
// There is exactly one production implementation, bridging to the scripting
// layer; the observer itself stays ignorant of how the callback is bound.
type IntersectionObserverCallback interface {
	HandleIntersections(entries []*IntersectionObserverEntry, observer *IntersectionObserver) error
}

// IntersectionObserverCallbackFunc adapts a plain function to the callback
// interface.
type IntersectionObserverCallbackFunc func(entries []*IntersectionObserverEntry, observer *IntersectionObserver) error

// HandleIntersections calls f.
func (f IntersectionObserverCallbackFunc) HandleIntersections(entries []*IntersectionObserverEntry, observer *IntersectionObserver) error {
	return f(entries, observer)
}

// IntersectionObserverInit holds the options for constructing an observer.
// Zero values mean the defaults: the document's root element, a zero margin,
// and a single 0.0 threshold.
type IntersectionObserverInit struct {
	Root       *Element
	RootMargin string
	Thresholds []float64
}

// IntersectionObserver watches a set of target elements for changes in how
// much of each target is visible within a root element, and delivers batched
// entries through a deferred notification task.
// https://www.w3.org/TR/intersection-observer/#intersection-observer-interface
//
// All observer state is confined to the document's scripting context; no
// method may be called concurrently with another on the same observer.
type IntersectionObserver struct {
	callback        IntersectionObserverCallback
	root            *Element
	rootMargin      string
	rootMarginValue *css.MarginValue
	thresholds      []float64
	taskManager     *IntersectionObserverTaskManager

	// Ordered set of tracked targets, in first-Observe order. Targets are
	// held weakly and pruned lazily on traversal.
	observationTargets []weak.Pointer[Element]

	// FIFO of entries awaiting delivery.
	queuedEntries []*IntersectionObserverEntry

	released bool
}

// NewIntersectionObserver constructs an observer for the given document.
// The callback must be non-nil: a nil callback is a contract violation in the
// binding layer, not a user-facing error, and panics.
//
// A malformed root margin fails with a SyntaxError and an out-of-range
// threshold fails with a RangeError; either failure aborts construction
// before the observer is registered with the task manager, so a failed
// construction leaves no trace in any collaborator.
func NewIntersectionObserver(doc *Document, callback IntersectionObserverCallback, options IntersectionObserverInit) (*IntersectionObserver, error) {
	if callback == nil {
		panic("dom: IntersectionObserver callback must not be nil")
	}
	if doc == nil {
		panic("dom: IntersectionObserver document must not be nil")
	}

	o := &IntersectionObserver{callback: callback}

	// Resolve the root: the supplied element, or the root element of the
	// associated document.
	if options.Root != nil {
		o.root = options.Root
	} else {
		o.root = doc.DocumentElement()
	}

	// Parse the root margin. An unparsable margin is a SyntaxError.
	o.rootMargin = options.RootMargin
	if o.rootMargin == "" {
		o.rootMargin = "0px"
	}
	marginValue, err := css.ParsePropertyValue(
		css.PropertyRootMargin, o.rootMargin,
		css.SourceLocation{File: "[object IntersectionObserver]", Line: 1, Column: 1})
	if err != nil {
		return nil, ErrSyntax("Not able to parse IntersectionObserver root margin.")
	}
	o.rootMarginValue = marginValue

	// Validate and commit the thresholds. Every value is checked before any
	// is committed; an empty list commits the default [0].
	thresholds, err := parseThresholds(options.Thresholds)
	if err != nil {
		return nil, err
	}
	o.thresholds = thresholds

	o.taskManager = o.resolveTaskManager(doc)
	o.taskManager.OnIntersectionObserverCreated(o)
	return o, nil
}

// parseThresholds validates a threshold list and returns the committed
// sequence: every value in [0, 1], sorted ascending, never empty.
func parseThresholds(values []float64) ([]float64, error) {
	for _, v := range values {
		if v < 0 || v > 1 {
			return nil, ErrRange("IntersectionObserver threshold values must be between 0.0 and 1.0.")
		}
	}
	if len(values) == 0 {
		return []float64{0}, nil
	}
	committed := make([]float64, len(values))
	copy(committed, values)
	sort.Float64s(committed)
	return committed, nil
}

// resolveTaskManager finds the document-scoped task manager: the root's
// owning document when it has one, otherwise the constructing document.
func (o *IntersectionObserver) resolveTaskManager(doc *Document) *IntersectionObserverTaskManager {
	if o.root != nil {
		if owner := o.root.OwnerDocument(); owner != nil {
			return owner.IntersectionObserverTaskManager()
		}
	}
	return doc.IntersectionObserverTaskManager()
}

// Root returns the element intersection is measured against.
func (o *IntersectionObserver) Root() *Element {
	return o.root
}

// RootMargin returns the root margin string the observer was constructed
// with.
func (o *IntersectionObserver) RootMargin() string {
	return o.rootMargin
}

// Thresholds returns the committed threshold sequence, sorted ascending. The
// returned slice is a copy.
func (o *IntersectionObserver) Thresholds() []float64 {
	result := make([]float64, len(o.thresholds))
	copy(result, o.thresholds)
	return result
}

// Observe starts tracking the target. A nil target indicates a bug in the
// bindings layer and panics. Observing an already-tracked target leaves the
// registry unchanged.
func (o *IntersectionObserver) Observe(target *Element) {
	if target == nil {
		// target is not nullable in the IDL, so nil here is a bindings bug.
		panic("dom: IntersectionObserver.Observe called with nil target")
	}
	target.RegisterIntersectionObserverTarget(o)
	o.trackObservationTarget(target)
}

// Unobserve stops tracking the target. A nil target panics as in Observe;
// an untracked target is a silent no-op.
func (o *IntersectionObserver) Unobserve(target *Element) {
	if target == nil {
		panic("dom: IntersectionObserver.Unobserve called with nil target")
	}
	target.UnregisterIntersectionObserverTarget(o)
	o.untrackObservationTarget(target)
}

// Disconnect removes the registration pair for every tracked target, then
// clears the registry and the entry queue. The observer remains usable;
// Observe may be called again afterward.
func (o *IntersectionObserver) Disconnect() {
	for _, ref := range o.observationTargets {
		if target := ref.Value(); target != nil {
			target.UnregisterIntersectionObserverTarget(o)
		}
	}
	o.observationTargets = nil
	o.queuedEntries = nil
}

// TakeRecords atomically drains the entry queue and returns the drained
// entries in arrival order. It never invokes the callback.
func (o *IntersectionObserver) TakeRecords() []*IntersectionObserverEntry {
	entries := o.queuedEntries
	o.queuedEntries = nil
	return entries
}

// QueueIntersectionObserverEntry appends an entry to the queue and signals
// the task manager that this observer has pending work. The signal is
// idempotent: signals before the next delivery coalesce into one task.
func (o *IntersectionObserver) QueueIntersectionObserverEntry(entry *IntersectionObserverEntry) {
	o.queuedEntries = append(o.queuedEntries, entry)
	o.taskManager.QueueIntersectionObserverTask()
}

// UpdateObservationTargets asks every tracked target to recompute its
// intersection against this observer's root, margin, and thresholds, and to
// queue an entry if a threshold was crossed. Targets are visited in the order
// Observe was first called on each, which downstream entry ordering relies
// on; stale targets are pruned in place.
// https://www.w3.org/TR/intersection-observer/#update-intersection-observations-algo
func (o *IntersectionObserver) UpdateObservationTargets() {
	live := o.observationTargets[:0]
	for _, ref := range o.observationTargets {
		target := ref.Value()
		if target == nil {
			continue
		}
		live = append(live, ref)
		target.UpdateIntersectionObservationsForTarget(o)
	}
	o.observationTargets = live
}

// Notify delivers the queued entries to the callback. With an empty queue it
// returns nil without invoking the callback. Otherwise the queue is drained
// before the callback runs, so entries queued during callback execution wait
// for the next delivery; a drained batch is delivered at most once. A non-nil
// return is the callback's unhandled failure, surfaced by the task manager.
// https://www.w3.org/TR/intersection-observer/#notify-intersection-observers-algo
func (o *IntersectionObserver) Notify() error {
	if len(o.queuedEntries) == 0 {
		return nil
	}
	queue := o.TakeRecords()
	return o.callback.HandleIntersections(queue, o)
}

// Release tears the observer down: every tracked target loses its
// registration for this observer and the observer unregisters from the task
// manager. The bindings layer calls this when the client's last reference is
// dropped; afterwards the observer must not be used.
func (o *IntersectionObserver) Release() {
	if o.released {
		return
	}
	o.released = true
	o.Disconnect()
	o.taskManager.OnIntersectionObserverDestroyed(o)
}

// rootIntersectionRect returns the root's bounding rect expanded by the root
// margin. Percentage margins resolve against the root rect's own dimensions.
func (o *IntersectionObserver) rootIntersectionRect() *DOMRect {
	if o.root == nil {
		return NewDOMRect(0, 0, 0, 0)
	}
	rect := o.root.BoundingClientRect()
	m := o.rootMarginValue
	width := rect.Right() - rect.Left()
	height := rect.Bottom() - rect.Top()
	return rect.ExpandedBy(
		m.Top.Resolve(height),
		m.Right.Resolve(width),
		m.Bottom.Resolve(height),
		m.Left.Resolve(width),
	)
}

// thresholdIndexForRatio returns the index of the first committed threshold
// greater than ratio, or the threshold count if none is.
func (o *IntersectionObserver) thresholdIndexForRatio(ratio float64) int {
	for i, t := range o.thresholds {
		if t > ratio {
			return i
		}
	}
	return len(o.thresholds)
}

// trackObservationTarget inserts the target into the registry unless already
// present, pruning stale entries encountered during the scan.
func (o *IntersectionObserver) trackObservationTarget(target *Element) {
	live := o.observationTargets[:0]
	found := false
	for _, ref := range o.observationTargets {
		existing := ref.Value()
		if existing == nil {
			continue
		}
		if existing == target {
			found = true
		}
		live = append(live, ref)
	}
	if !found {
		live = append(live, weak.Make(target))
	}
	o.observationTargets = live
}

// untrackObservationTarget removes the target from the registry if present,
// pruning stale entries encountered during the scan.
func (o *IntersectionObserver) untrackObservationTarget(target *Element) {
	live := o.observationTargets[:0]
	for _, ref := range o.observationTargets {
		existing := ref.Value()
		if existing == nil || existing == target {
			continue
		}
		live = append(live, ref)
	}
	o.observationTargets = live
}
