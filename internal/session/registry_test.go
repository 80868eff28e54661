package session

import "testing"

func TestConnRegistry_AddGetRemove(t *testing.T) {
	r := NewConnRegistry()

	if _, ok := r.Get("c1"); ok {
		t.Error("Get on empty registry reported a connection")
	}

	r.Add(&Conn{ID: "c1", UserID: "alice"})
	conn, ok := r.Get("c1")
	if !ok || conn.UserID != "alice" {
		t.Fatalf("Get(c1) = %+v, %v", conn, ok)
	}

	// Add with the same id overwrites
	r.Add(&Conn{ID: "c1", UserID: "alicia"})
	conn, _ = r.Get("c1")
	if conn.UserID != "alicia" {
		t.Errorf("overwrite failed, UserID = %q", conn.UserID)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d after overwrite, want 1", r.Len())
	}

	r.Remove("c1")
	if _, ok := r.Get("c1"); ok {
		t.Error("connection still present after Remove")
	}

	// Removing a nonexistent id is a no-op
	r.Remove("c1")
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestConnRegistry_ValuesAndForEach(t *testing.T) {
	r := NewConnRegistry()
	r.Add(&Conn{ID: "c1"})
	r.Add(&Conn{ID: "c2"})
	r.Add(&Conn{ID: "c3"})

	if got := len(r.Values()); got != 3 {
		t.Errorf("len(Values()) = %d, want 3", got)
	}

	seen := make(map[string]bool)
	r.ForEach(func(c *Conn) {
		seen[c.ID] = true
	})
	if len(seen) != 3 {
		t.Errorf("ForEach visited %d connections, want 3", len(seen))
	}
}

func TestRoomRegistry_CreateGetDelete(t *testing.T) {
	r := NewRoomRegistry()

	room := r.Create("r1", "caller-1", "callee-1")
	if room.Status != StatusPending {
		t.Errorf("new room status = %q, want %q", room.Status, StatusPending)
	}
	if room.Caller != "caller-1" || room.Callee != "callee-1" {
		t.Errorf("room parties = %q/%q", room.Caller, room.Callee)
	}

	got, ok := r.Get("r1")
	if !ok || got != room {
		t.Fatalf("Get(r1) = %+v, %v", got, ok)
	}

	r.Delete("r1")
	if _, ok := r.Get("r1"); ok {
		t.Error("room still present after Delete")
	}

	// Deleting a nonexistent id is a no-op
	r.Delete("r1")
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestRoomRegistry_FindByCallee(t *testing.T) {
	r := NewRoomRegistry()

	if _, ok := r.FindByCallee("callee-1"); ok {
		t.Error("FindByCallee on empty registry reported a room")
	}

	r.Create("r1", "caller-1", "callee-1")
	r.Create("r2", "caller-2", "callee-2")

	room, ok := r.FindByCallee("callee-2")
	if !ok || room.ID != "r2" {
		t.Fatalf("FindByCallee(callee-2) = %+v, %v", room, ok)
	}

	// Multiple rooms naming the same callee: any single match is returned.
	r.Create("r3", "caller-3", "callee-1")
	found, ok := r.FindByCallee("callee-1")
	if !ok {
		t.Fatal("FindByCallee found nothing")
	}
	if found.ID != "r1" && found.ID != "r3" {
		t.Errorf("FindByCallee returned %q, want r1 or r3", found.ID)
	}
}
