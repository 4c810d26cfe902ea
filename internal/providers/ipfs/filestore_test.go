package ipfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreUploadWritesBlobUnderCID(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	data := []byte(`{"name":"Sunset"}`)
	id, err := s.Upload(context.Background(), data, "application/json")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if id != PlaceholderCID(data) {
		t.Fatalf("cid = %q, want content cid", id)
	}
	stored, err := os.ReadFile(filepath.Join(dir, id+".json"))
	if err != nil {
		t.Fatalf("blob not written: %v", err)
	}
	if string(stored) != string(data) {
		t.Fatal("stored blob differs from input")
	}
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatal("expected error for empty base path")
	}
}
