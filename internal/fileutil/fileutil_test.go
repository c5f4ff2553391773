package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestChecksumSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Checksum(path, AlgorithmSHA256)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	const want = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Fatalf("Checksum = %s, want %s", got, want)
	}
	if algo, ok := DetectAlgorithm(got); !ok || algo != AlgorithmSHA256 {
		t.Fatalf("DetectAlgorithm = %q %v", algo, ok)
	}
}

func TestChecksumXXHashRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("archival bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	digest, err := Checksum(path, AlgorithmXXHash)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	if len(digest) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", digest)
	}
	ok, err := VerifyChecksum(path, digest)
	if err != nil || !ok {
		t.Fatalf("VerifyChecksum = %v, %v", ok, err)
	}
	if err := os.WriteFile(path, []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}
	ok, err = VerifyChecksum(path, digest)
	if err != nil || ok {
		t.Fatalf("expected mismatch after tamper, got %v, %v", ok, err)
	}
}

func TestChecksumErrors(t *testing.T) {
	if _, err := Checksum(filepath.Join(t.TempDir(), "missing"), AlgorithmSHA256); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := Checksum("irrelevant", "md5"); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
	if _, err := VerifyChecksum("irrelevant", "abc"); err == nil {
		t.Fatal("expected error for unrecognized digest")
	}
}

func TestIsJunk(t *testing.T) {
	for _, name := range []string{".DS_Store", "Thumbs.db", "._IMG_1.jpg", "desktop.ini", "~$report.docx"} {
		if !IsJunk(name) {
			t.Errorf("expected %q to be junk", name)
		}
	}
	for _, name := range []string{"IMG_1.jpg", "notes.txt", "DS_Store.csv"} {
		if IsJunk(name) {
			t.Errorf("expected %q not to be junk", name)
		}
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{"b.jpg", "a.tif", ".DS_Store", "apmeta-x.csv", filepath.Join("sub", "c.jpg")} {
		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	skip := func(name string) bool { return name == "apmeta-x.csv" }

	flat, err := ListFiles(dir, false, skip)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	sort.Strings(flat)
	if len(flat) != 2 || filepath.Base(flat[0]) != "a.tif" || filepath.Base(flat[1]) != "b.jpg" {
		t.Fatalf("unexpected flat listing %v", flat)
	}

	deep, err := ListFiles(dir, true, skip)
	if err != nil {
		t.Fatalf("ListFiles recurse: %v", err)
	}
	if len(deep) != 3 {
		t.Fatalf("expected 3 files with recursion, got %v", deep)
	}

	if _, err := ListFiles(filepath.Join(dir, "a.tif"), false, nil); err == nil {
		t.Fatal("expected error for non-directory")
	}
}

func TestReadHead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	head, err := ReadHead(path, 2)
	if err != nil || string(head) != "ab" {
		t.Fatalf("ReadHead(2) = %q, %v", head, err)
	}
	head, err = ReadHead(path, 10)
	if err != nil || string(head) != "abc" {
		t.Fatalf("ReadHead(10) = %q, %v", head, err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "second" {
		t.Fatalf("read back %q, %v", data, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("expected temp files cleaned up, found %d entries", len(entries))
	}
}
