package dom

import (
	"testing"
)

func TestParseDocumentString(t *testing.T) {
	doc, err := ParseDocumentString(`<html><body><div id="sentinel" class="marker">Hello</div></body></html>`)
	if err != nil {
		t.Fatalf("ParseDocumentString failed: %v", err)
	}

	root := doc.DocumentElement()
	if root == nil {
		t.Fatal("Expected a document element")
	}
	if root.TagName() != "HTML" {
		t.Errorf("Expected tag name HTML, got %q", root.TagName())
	}

	sentinel := doc.GetElementById("sentinel")
	if sentinel == nil {
		t.Fatal("Expected to find #sentinel")
	}
	if sentinel.GetAttribute("class") != "marker" {
		t.Errorf("Expected class attribute 'marker', got %q", sentinel.GetAttribute("class"))
	}
	if sentinel.AsNode().TextContent() != "Hello" {
		t.Errorf("Expected text content 'Hello', got %q", sentinel.AsNode().TextContent())
	}
}

func TestParsedElementsAreObservable(t *testing.T) {
	doc, err := ParseDocumentString(`<html><body><div id="target"></div></body></html>`)
	if err != nil {
		t.Fatalf("ParseDocumentString failed: %v", err)
	}
	doc.DocumentElement().SetGeometry(&ElementGeometry{X: 0, Y: 0, Width: 800, Height: 600})

	target := doc.GetElementById("target")
	if target == nil {
		t.Fatal("Expected to find #target")
	}
	target.SetGeometry(&ElementGeometry{X: 0, Y: 0, Width: 100, Height: 100})

	cb := &recordingCallback{}
	observer, err := NewIntersectionObserver(doc, cb, IntersectionObserverInit{})
	if err != nil {
		t.Fatalf("NewIntersectionObserver failed: %v", err)
	}
	observer.Observe(target)

	doc.UpdateIntersectionObservations()
	doc.IntersectionObserverTaskManager().NotifyObservers()

	if len(cb.batches) != 1 || len(cb.batches[0]) != 1 {
		t.Fatalf("Expected one delivered batch of one entry, got %v", cb.batches)
	}
	if cb.batches[0][0].Target != target {
		t.Error("Expected the entry to reference the parsed target")
	}
}
