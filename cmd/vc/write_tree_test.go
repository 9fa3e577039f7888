package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-vc/vc/pkg/vc"
)

func TestWriteTree_FlatFiles(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()
	h.ChDir()

	if _, err := vc.Init(h.TmpDir()); err != nil {
		t.Fatalf("vc.Init() error = %v", err)
	}

	h.CreateFile("a.txt", "aaa")
	h.CreateFile("b.txt", "bbb")

	cmd := newWriteTreeCommand()
	result := h.RunCommand(cmd, []string{}, nil)
	result.AssertError(t, false)

	if !result.HasOutput() {
		t.Fatal("write-tree produced no output")
	}
}

func TestWriteTree_NestedDirectory(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()
	h.ChDir()

	if _, err := vc.Init(h.TmpDir()); err != nil {
		t.Fatalf("vc.Init() error = %v", err)
	}

	if err := os.MkdirAll(filepath.Join(h.TmpDir(), "src"), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	h.CreateFile(filepath.Join("src", "main.go"), "package main\n")

	cmd := newWriteTreeCommand()
	result := h.RunCommand(cmd, []string{}, nil)
	result.AssertError(t, false)
}

func TestWriteTree_EmptyDirectory(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()
	h.ChDir()

	if _, err := vc.Init(h.TmpDir()); err != nil {
		t.Fatalf("vc.Init() error = %v", err)
	}

	cmd := newWriteTreeCommand()
	result := h.RunCommand(cmd, []string{}, nil)
	result.AssertError(t, true)
}

func TestWriteTree_RespectsIgnoreFile(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()
	h.ChDir()

	if _, err := vc.Init(h.TmpDir()); err != nil {
		t.Fatalf("vc.Init() error = %v", err)
	}

	h.CreateFile("keep.txt", "keep")
	h.CreateFile("skip.log", "skip")
	h.CreateFile(".gitignore", "*.log\n")

	cmd := newWriteTreeCommand()
	result := h.RunCommand(cmd, []string{}, nil)
	result.AssertError(t, false)
}
