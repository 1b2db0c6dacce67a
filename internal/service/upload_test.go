package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/storage"
)

func TestStoredName(t *testing.T) {
	if got := StoredName("My Photo.PNG", "abc"); got != "abc-my-photo.png" {
		t.Errorf("StoredName() = %q", got)
	}
	if got := StoredName("!!!.jpg", "abc"); got != "abc.jpg" {
		t.Errorf("StoredName() = %q", got)
	}
}

func TestUploadImage(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFileSystem(dir)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewUploadService(fs, "uploads/", 16, logger.Discard())
	ctx := context.Background()

	url, err := svc.UploadImage(ctx, "avatar.png", 5, strings.NewReader("image"))
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, "-avatar.png") {
		t.Errorf("url = %q", url)
	}
	body, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil || string(body) != "image" {
		t.Errorf("stored file = %q, %v", body, err)
	}

	if _, err := svc.UploadImage(ctx, "notes.txt", 5, strings.NewReader("x")); !errors.Is(err, ErrBadInput) {
		t.Errorf("UploadImage(txt) error = %v, want ErrBadInput", err)
	}
	if _, err := svc.UploadImage(ctx, "big.png", 17, strings.NewReader("x")); !errors.Is(err, ErrBadInput) {
		t.Errorf("UploadImage(too large) error = %v, want ErrBadInput", err)
	}
}
