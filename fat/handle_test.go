package fat

import "testing"

func TestOpenReturnsDistinctDescriptors(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create("a"); err != nil {
		t.Fatal(err)
	}

	fd1, err := fs.Open("a")
	if err != nil {
		t.Fatal(err)
	}
	fd2, err := fs.Open("a")
	if err != nil {
		t.Fatal(err)
	}

	if fd1 == fd2 {
		t.Fatalf("expected distinct descriptors, got %d and %d", fd1, fd2)
	}

	if _, err := fs.Write(fd1, []byte("hello")); err != nil {
		t.Fatal(err)
	}

	size1, _ := fs.Stat(fd1)
	size2, _ := fs.Stat(fd2)
	if size1 != size2 {
		t.Fatalf("both descriptors should see the same size: %d vs %d", size1, size2)
	}
}

func TestOpenNotFound(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if _, err := fs.Open("nope"); err != (NotFoundError{Name: "nope"}) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestOpenTooMany(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create("a"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < FSOpenMaxCount; i++ {
		if _, err := fs.Open("a"); err != nil {
			t.Fatalf("open %d failed: %v", i, err)
		}
	}

	if _, err := fs.Open("a"); err != (TooManyOpenError{}) {
		t.Fatalf("expected TooManyOpenError, got %v", err)
	}
}

func TestCloseBadFd(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Close(1); err != (BadFdError{Fd: 1}) {
		t.Fatalf("expected BadFdError, got %v", err)
	}
	if err := fs.Close(0); err != (BadFdError{Fd: 0}) {
		t.Fatalf("expected BadFdError, got %v", err)
	}
}

func TestLseekPastEOFFails(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create("a"); err != nil {
		t.Fatal(err)
	}
	fd, err := fs.Open("a")
	if err != nil {
		t.Fatal(err)
	}

	if err := fs.Lseek(fd, 1); err != (OffsetOutOfRangeError{Offset: 1, Size: 0}) {
		t.Fatalf("expected OffsetOutOfRangeError, got %v", err)
	}

	if err := fs.Lseek(fd, 0); err != nil {
		t.Fatalf("lseek to size_file (0) should be legal, got %v", err)
	}
}

func TestLseekThenReadReturnsZeroAtEOF(t *testing.T) {
	fs := mountFresh(t, 16)
	defer func() { _ = fs.Unmount() }()

	if err := fs.Create("a"); err != nil {
		t.Fatal(err)
	}
	fd, err := fs.Open("a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Write(fd, []byte("hello")); err != nil {
		t.Fatal(err)
	}

	size, err := fs.Stat(fd)
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Lseek(fd, size); err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 8)
	n, err := fs.Read(fd, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("read at EOF returned %d bytes, want 0", n)
	}
}
