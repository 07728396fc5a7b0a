package store

import (
	"fmt"
	"reflect"
	"testing"

	"budgetbook/internal/core"
)

func seeded() *Store {
	s := New()
	s.Replace(core.KindBills, []core.Record{
		{"id": "1", "name": "Rent", "amount_due": 1200.0},
		{"id": "2", "name": "Internet", "amount_due": 60.0},
	})
	return s
}

func TestCollectionReturnsCopy(t *testing.T) {
	s := seeded()
	got := s.Collection(core.KindBills)
	got[0]["name"] = "Hacked"
	if s.Collection(core.KindBills)[0].Text("name") != "Rent" {
		t.Fatal("mutating a returned collection reached the store")
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	s := seeded()
	s.Upsert(core.KindBills, core.Record{"id": "1", "name": "Rent", "amount_due": 1250.0})
	coll := s.Collection(core.KindBills)
	if len(coll) != 2 {
		t.Fatalf("expected 2 records, got %d", len(coll))
	}
	if coll[0].ID() != "1" || coll[0]["amount_due"] != 1250.0 {
		t.Errorf("record not updated in place: %v", coll[0])
	}
}

func TestUpsertAppendsNew(t *testing.T) {
	s := seeded()
	s.Upsert(core.KindBills, core.Record{"id": "3", "name": "Water"})
	coll := s.Collection(core.KindBills)
	if len(coll) != 3 || coll[2].ID() != "3" {
		t.Errorf("new record should append at the end: %v", coll)
	}
}

func TestDeleteByID(t *testing.T) {
	s := seeded()
	if !s.DeleteByID(core.KindBills, "1") {
		t.Fatal("expected removal")
	}
	if s.Len(core.KindBills) != 1 {
		t.Errorf("expected 1 record left, got %d", s.Len(core.KindBills))
	}
	if s.DeleteByID(core.KindBills, "99") {
		t.Error("missing id must be a no-op, not a removal")
	}
	if s.UndoDepth() != 1 {
		t.Errorf("no-op delete must not push a snapshot, depth=%d", s.UndoDepth())
	}
}

func TestDeleteThenUndoRestoresExactState(t *testing.T) {
	s := seeded()
	before := s.Collection(core.KindBills)

	s.DeleteByID(core.KindBills, "2")
	kind, err := s.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if kind != core.KindBills {
		t.Errorf("undo restored kind %s", kind)
	}
	if !reflect.DeepEqual(before, s.Collection(core.KindBills)) {
		t.Errorf("undo did not restore pre-delete state:\n%v\nvs\n%v", before, s.Collection(core.KindBills))
	}

	// Second undo with nothing left signals, not crashes.
	if _, err := s.Undo(); err != ErrNothingToUndo {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestDeleteManySingleSnapshot(t *testing.T) {
	s := seeded()
	if removed := s.DeleteMany(core.KindBills, []string{"1", "2", "nope"}); removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if s.UndoDepth() != 1 {
		t.Errorf("bulk delete should push one snapshot, depth=%d", s.UndoDepth())
	}
	if _, err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.Len(core.KindBills) != 2 {
		t.Errorf("undo after bulk delete restored %d records", s.Len(core.KindBills))
	}
}

func TestReplaceIsNotUndoable(t *testing.T) {
	s := seeded()
	s.Replace(core.KindBills, nil)
	if _, err := s.Undo(); err != ErrNothingToUndo {
		t.Errorf("replace must not be undoable, got %v", err)
	}
}

func TestUndoStackCap(t *testing.T) {
	s := seeded()
	for i := 0; i < undoLimit+5; i++ {
		s.Upsert(core.KindBills, core.Record{"id": fmt.Sprintf("x%d", i)})
	}
	if s.UndoDepth() != undoLimit {
		t.Errorf("undo depth = %d, want %d", s.UndoDepth(), undoLimit)
	}
}

func TestFindByID(t *testing.T) {
	s := seeded()
	r, ok := s.FindByID(core.KindBills, "2")
	if !ok || r.Text("name") != "Internet" {
		t.Fatalf("FindByID = %v, %v", r, ok)
	}
	r["name"] = "changed"
	if got, _ := s.FindByID(core.KindBills, "2"); got.Text("name") != "Internet" {
		t.Error("FindByID must return a copy")
	}
	if _, ok := s.FindByID(core.KindBills, "404"); ok {
		t.Error("missing id found")
	}
}

func TestRevisionBumps(t *testing.T) {
	s := seeded()
	r0 := s.Revision(core.KindBills)
	s.Upsert(core.KindBills, core.Record{"id": "9"})
	if s.Revision(core.KindBills) != r0+1 {
		t.Error("upsert should bump the revision")
	}
}
