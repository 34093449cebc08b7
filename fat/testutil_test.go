package fat

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

// tempFileName returns a random path under the OS temp directory, so
// tests never collide with each other or a real disk image.
func tempFileName(prefix, suffix string) string {
	randBytes := make([]byte, 16)
	_, _ = rand.Read(randBytes)
	return filepath.Join(os.TempDir(), prefix+hex.EncodeToString(randBytes)+suffix)
}

// mountFresh formats a new disk image with dataBlockCount data blocks
// (dataBlockCount-1 of them usable, since block 0 is reserved) and
// mounts it, cleaning up the backing file on test end.
func mountFresh(t *testing.T, dataBlockCount int) *Filesystem {
	t.Helper()

	path := tempFileName("ecs150fs", "")
	if err := Format(path, dataBlockCount); err != nil {
		t.Fatal(err)
	}

	fs, err := Mount(path)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = os.Remove(path)
	})

	return fs
}
