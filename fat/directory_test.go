package fat

import "testing"

func TestCreateFindDelete(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create("hello.txt"); err != nil {
		t.Fatal(err)
	}
	if idx := fs.findEntry("hello.txt"); idx < 0 {
		t.Fatal("expected hello.txt to be found")
	}

	if err := fs.Delete("hello.txt"); err != nil {
		t.Fatal(err)
	}
	if idx := fs.findEntry("hello.txt"); idx >= 0 {
		t.Fatal("expected hello.txt to be gone")
	}
}

func TestCreateDuplicateFails(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create("a"); err != nil {
		t.Fatal(err)
	}
	if err := fs.Create("a"); err != (ExistsError{Name: "a"}) {
		t.Fatalf("expected ExistsError, got %v", err)
	}
}

func TestCreateInvalidName(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create(""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := fs.Create("this_name_is_way_too_long_for_16"); err == nil {
		t.Fatal("expected error for over-long name")
	}
}

func TestCreateDirFull(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	for i := 0; i < FSFileMaxCount; i++ {
		name := string(rune('a'+(i%26))) + string(rune('A'+(i/26)))
		if err := fs.Create(name); err != nil {
			t.Fatalf("create %d (%s) failed: %v", i, name, err)
		}
	}

	if err := fs.Create("one_too_many"); err != (DirFullError{}) {
		t.Fatalf("expected DirFullError, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Delete("nope"); err != (NotFoundError{Name: "nope"}) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteWhileOpenFails(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create("a"); err != nil {
		t.Fatal(err)
	}
	fd, err := fs.Open("a")
	if err != nil {
		t.Fatal(err)
	}

	if err := fs.Delete("a"); err != (FileBusyError{Name: "a"}) {
		t.Fatalf("expected FileBusyError, got %v", err)
	}

	if err := fs.Close(fd); err != nil {
		t.Fatal(err)
	}
	if err := fs.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Open("a"); err != (NotFoundError{Name: "a"}) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}

func TestDeleteFreesChain(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create("a"); err != nil {
		t.Fatal(err)
	}
	fd, err := fs.Open("a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Write(fd, make([]byte, 4096*3)); err != nil {
		t.Fatal(err)
	}
	before := fs.freeCount()
	if err := fs.Close(fd); err != nil {
		t.Fatal(err)
	}
	if err := fs.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if fs.freeCount() != before+3 {
		t.Fatalf("freeCount = %d, want %d", fs.freeCount(), before+3)
	}
}

func TestListReturnsOccupiedEntries(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create("a"); err != nil {
		t.Fatal(err)
	}
	if err := fs.Create("b"); err != nil {
		t.Fatal(err)
	}

	entries, err := fs.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}
