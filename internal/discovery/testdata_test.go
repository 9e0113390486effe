package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTree creates files (relative path → content) under a fresh temp dir
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		full := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", name, err)
		}
	}
	return dir
}

const opsTestPy = `import pytest


def helper():
    pass


def test_matmul():
    assert helper() is None


@pytest.mark.parametrize("n", [1, 2])
def test_dense(n):
    pass


class TestBatch:
    def setup_method(self):
        pass

    def test_small(self):
        pass

    async def test_async(self):
        pass


class Helper:
    def test_not_collected(self):
        pass


def test_after_class():
    pass
`
