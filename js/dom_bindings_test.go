package js

import (
	"testing"
)

func TestBindingsShareIdentity(t *testing.T) {
	runtime, binder, doc := newTestPage(t)

	mustExecute(t, runtime, `
		var same = document.getElementById('target') === document.getElementById('target');
	`)
	if v, _ := runtime.Execute(`same`); !v.ToBoolean() {
		t.Error("Expected repeated lookups to return the same JS object")
	}

	// The Go-side binding for the same element is the same object too.
	target := doc.GetElementById("target")
	if binder.BindElement(target) != binder.BindElement(target) {
		t.Error("Expected BindElement to cache per element")
	}
}

func TestElementBindingAttributes(t *testing.T) {
	runtime, _, doc := newTestPage(t)

	mustExecute(t, runtime, `
		var el = document.getElementById('target');
		el.setAttribute('data-state', 'visible');
		var tagName = el.tagName;
		var missing = el.getAttribute('nope');
	`)

	if v, _ := runtime.Execute(`tagName`); v.String() != "DIV" {
		t.Errorf("Expected tag name DIV, got %q", v.String())
	}
	if v, _ := runtime.Execute(`missing === null`); !v.ToBoolean() {
		t.Error("Expected a missing attribute to read as null")
	}
	if got := doc.GetElementById("target").GetAttribute("data-state"); got != "visible" {
		t.Errorf("Expected the attribute write to reach the Go element, got %q", got)
	}
}

func TestGetBoundingClientRectBinding(t *testing.T) {
	runtime, _, _ := newTestPage(t)

	mustExecute(t, runtime, `
		var rect = document.getElementById('other').getBoundingClientRect();
	`)

	if v, _ := runtime.Execute(`rect.y`); v.ToFloat() != 200 {
		t.Errorf("Expected y 200, got %v", v)
	}
	if v, _ := runtime.Execute(`rect.bottom`); v.ToFloat() != 300 {
		t.Errorf("Expected bottom 300, got %v", v)
	}
}

func TestIllegalConstructors(t *testing.T) {
	runtime, _, _ := newTestPage(t)

	mustExecute(t, runtime, `
		var caught = null;
		try { new Element(); } catch (e) { caught = e; }
		var elementIllegal = caught instanceof TypeError;
		var elementInstance = document.getElementById('target') instanceof Element;
		var documentInstance = document instanceof Document;
	`)

	if v, _ := runtime.Execute(`elementIllegal`); !v.ToBoolean() {
		t.Error("Expected new Element() to throw a TypeError")
	}
	if v, _ := runtime.Execute(`elementInstance`); !v.ToBoolean() {
		t.Error("Expected element bindings to be instanceof Element")
	}
	if v, _ := runtime.Execute(`documentInstance`); !v.ToBoolean() {
		t.Error("Expected the document binding to be instanceof Document")
	}
}
