package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/sightline/dom"
)

// DOMBinder provides methods to bind DOM objects to JavaScript. It keeps one
// JS object per DOM node so identity checks (a === b) hold across bindings.
type DOMBinder struct {
	runtime  *Runtime
	nodeMap  map[*dom.Node]*goja.Object // Cache to return same JS object for same DOM node
	document *dom.Document

	// Prototype objects for instanceof checks
	elementProto  *goja.Object
	documentProto *goja.Object
}

// NewDOMBinder creates a new DOM binder for the given runtime and document.
func NewDOMBinder(runtime *Runtime, document *dom.Document) *DOMBinder {
	b := &DOMBinder{
		runtime:  runtime,
		nodeMap:  make(map[*dom.Node]*goja.Object),
		document: document,
	}
	b.setupPrototypes()
	return b
}

// setupPrototypes creates the prototype objects for DOM interfaces so that
// instanceof checks work correctly.
func (b *DOMBinder) setupPrototypes() {
	vm := b.runtime.vm

	b.elementProto = newIllegalConstructor(vm, "Element")
	b.documentProto = newIllegalConstructor(vm, "Document")
}

// newIllegalConstructor installs a global constructor that cannot be invoked
// directly and returns its prototype object.
func newIllegalConstructor(vm *goja.Runtime, name string) *goja.Object {
	proto := vm.NewObject()
	constructor := vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		panic(vm.NewTypeError("Illegal constructor"))
	})
	constructorObj := constructor.ToObject(vm)
	constructorObj.Set("prototype", proto)
	proto.Set("constructor", constructorObj)
	vm.Set(name, constructorObj)
	return proto
}

// BindDocument creates (or returns the cached) JavaScript object for the
// bound document and installs it as the global document.
func (b *DOMBinder) BindDocument() *goja.Object {
	node := b.document.AsNode()
	if jsObj, ok := b.nodeMap[node]; ok {
		return jsObj
	}

	vm := b.runtime.vm
	jsDoc := vm.NewObject()
	jsDoc.SetPrototype(b.documentProto)
	jsDoc.Set("_goNode", node)
	jsDoc.Set("nodeType", int(dom.DocumentNode))
	jsDoc.Set("nodeName", "#document")

	jsDoc.DefineAccessorProperty("documentElement", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		root := b.document.DocumentElement()
		if root == nil {
			return goja.Null()
		}
		return vm.ToValue(b.BindElement(root))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		el := b.document.GetElementById(call.Arguments[0].String())
		if el == nil {
			return goja.Null()
		}
		return b.BindElement(el)
	})

	jsDoc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		el := b.document.CreateElement(call.Arguments[0].String())
		return b.BindElement(el)
	})

	b.nodeMap[node] = jsDoc
	vm.Set("document", jsDoc)
	return jsDoc
}

// BindElement creates (or returns the cached) JavaScript object for a DOM
// element.
func (b *DOMBinder) BindElement(el *dom.Element) *goja.Object {
	if el == nil {
		return nil
	}
	node := el.AsNode()
	if jsObj, ok := b.nodeMap[node]; ok {
		return jsObj
	}

	vm := b.runtime.vm
	jsEl := vm.NewObject()
	jsEl.SetPrototype(b.elementProto)
	jsEl.Set("_goNode", node)
	jsEl.Set("nodeType", int(dom.ElementNode))
	jsEl.Set("nodeName", el.TagName())
	jsEl.Set("tagName", el.TagName())

	jsEl.DefineAccessorProperty("id", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Id())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			el.SetId(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		name := call.Arguments[0].String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})

	jsEl.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("Failed to execute 'setAttribute' on 'Element': 2 arguments required"))
		}
		el.SetAttribute(call.Arguments[0].String(), call.Arguments[1].String())
		return goja.Undefined()
	})

	jsEl.Set("getBoundingClientRect", func(call goja.FunctionCall) goja.Value {
		return b.bindRect(el.BoundingClientRect())
	})

	b.nodeMap[node] = jsEl
	return jsEl
}

// bindRect creates a DOMRectReadOnly-shaped JavaScript object.
func (b *DOMBinder) bindRect(rect *dom.DOMRect) *goja.Object {
	vm := b.runtime.vm
	jsRect := vm.NewObject()
	jsRect.Set("x", rect.X)
	jsRect.Set("y", rect.Y)
	jsRect.Set("width", rect.Width)
	jsRect.Set("height", rect.Height)
	jsRect.Set("top", rect.Top())
	jsRect.Set("right", rect.Right())
	jsRect.Set("bottom", rect.Bottom())
	jsRect.Set("left", rect.Left())
	return jsRect
}

// getGoNode extracts the Go DOM node backing a JavaScript object, or nil if
// the object is not a binding.
func (b *DOMBinder) getGoNode(obj *goja.Object) *dom.Node {
	if obj == nil {
		return nil
	}
	v := obj.Get("_goNode")
	if v == nil || goja.IsUndefined(v) {
		return nil
	}
	node, _ := v.Export().(*dom.Node)
	return node
}

// getGoElement extracts the Go element backing a JavaScript object, or nil.
func (b *DOMBinder) getGoElement(obj *goja.Object) *dom.Element {
	return b.getGoNode(obj).AsElement()
}
