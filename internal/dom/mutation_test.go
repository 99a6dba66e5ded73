package dom_test

import (
	"testing"

	"seekbar/internal/dom"
)

func TestObserverBatchesRecords(t *testing.T) {
	doc := dom.NewDocument()
	var batches [][]dom.MutationRecord
	obs := doc.NewObserver(func(records []dom.MutationRecord) {
		batches = append(batches, records)
	})
	if err := obs.Observe(doc.Body(), dom.ObserveOptions{Subtree: true}); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	doc.Body().AppendChild(doc.CreateElement("div"))
	doc.Body().AppendChild(doc.CreateElement("div"))
	doc.Flush()

	if len(batches) != 1 {
		t.Fatalf("flush delivered %d batches, want 1", len(batches))
	}
	if len(batches[0]) != 2 {
		t.Fatalf("batch carried %d records, want 2", len(batches[0]))
	}
	if len(batches[0][0].Added) != 1 || len(batches[0][0].Removed) != 0 {
		t.Fatal("insertion record should carry one added node")
	}
}

func TestObserverSubtreeCoverage(t *testing.T) {
	doc := dom.NewDocument()
	wrapper := doc.CreateElement("div")
	doc.Body().AppendChild(wrapper)

	direct := 0
	obsDirect := doc.NewObserver(func(records []dom.MutationRecord) { direct += len(records) })
	if err := obsDirect.Observe(doc.Body(), dom.ObserveOptions{}); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	deep := 0
	obsDeep := doc.NewObserver(func(records []dom.MutationRecord) { deep += len(records) })
	if err := obsDeep.Observe(doc.Body(), dom.ObserveOptions{Subtree: true}); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	wrapper.AppendChild(doc.CreateElement("span"))
	doc.Flush()

	if direct != 0 {
		t.Fatalf("non-subtree observer saw %d records for a nested change, want 0", direct)
	}
	if deep != 1 {
		t.Fatalf("subtree observer saw %d records, want 1", deep)
	}
}

func TestRecordsSurviveLaterDetachment(t *testing.T) {
	doc := dom.NewDocument()
	var records []dom.MutationRecord
	obs := doc.NewObserver(func(batch []dom.MutationRecord) {
		records = append(records, batch...)
	})
	if err := obs.Observe(doc.Body(), dom.ObserveOptions{Subtree: true}); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	wrapper := doc.CreateElement("div")
	doc.Body().AppendChild(wrapper)
	wrapper.AppendChild(doc.CreateElement("span"))
	doc.Body().RemoveChild(wrapper)
	doc.Flush()

	// Insert under body, insert under wrapper, remove from body.
	if len(records) != 3 {
		t.Fatalf("flush delivered %d records, want 3", len(records))
	}
	if len(records[2].Removed) != 1 {
		t.Fatal("final record should carry the removed wrapper")
	}
}

func TestObserveNilTarget(t *testing.T) {
	var restricted dom.Document
	obs := restricted.NewObserver(func([]dom.MutationRecord) {})
	if err := obs.Observe(restricted.Body(), dom.ObserveOptions{Subtree: true}); err == nil {
		t.Fatal("Observe should fail when the document has no body")
	}
}

func TestDisconnectDropsPending(t *testing.T) {
	doc := dom.NewDocument()
	delivered := 0
	obs := doc.NewObserver(func(records []dom.MutationRecord) { delivered += len(records) })
	if err := obs.Observe(doc.Body(), dom.ObserveOptions{Subtree: true}); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	doc.Body().AppendChild(doc.CreateElement("div"))
	obs.Disconnect()
	doc.Flush()

	if delivered != 0 {
		t.Fatalf("disconnected observer received %d records, want 0", delivered)
	}

	doc.Body().AppendChild(doc.CreateElement("div"))
	doc.Flush()
	if delivered != 0 {
		t.Fatal("disconnected observer should not receive later changes")
	}
}

func TestFlushDeliversReentrantRecords(t *testing.T) {
	doc := dom.NewDocument()
	var batches int
	obs := doc.NewObserver(func(records []dom.MutationRecord) {
		batches++
		if batches == 1 {
			// A callback-driven insertion must reach the observer in the
			// same flush pass.
			doc.Body().AppendChild(doc.CreateElement("div"))
		}
	})
	if err := obs.Observe(doc.Body(), dom.ObserveOptions{Subtree: true}); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	doc.Body().AppendChild(doc.CreateElement("div"))
	doc.Flush()

	if batches != 2 {
		t.Fatalf("flush delivered %d batches, want 2", batches)
	}
}

func TestReparentingRecordsRemovalAndInsertion(t *testing.T) {
	doc := dom.NewDocument()
	first := doc.CreateElement("div")
	second := doc.CreateElement("div")
	child := doc.CreateElement("span")
	doc.Body().AppendChild(first)
	doc.Body().AppendChild(second)
	first.AppendChild(child)
	doc.Flush()

	var records []dom.MutationRecord
	obs := doc.NewObserver(func(batch []dom.MutationRecord) {
		records = append(records, batch...)
	})
	if err := obs.Observe(doc.Body(), dom.ObserveOptions{Subtree: true}); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	second.AppendChild(child)
	doc.Flush()

	if len(records) != 2 {
		t.Fatalf("reparenting produced %d records, want 2", len(records))
	}
	if len(records[0].Removed) != 1 || len(records[1].Added) != 1 {
		t.Fatal("reparenting should record removal from the old parent before insertion")
	}
}
