package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/model"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	if err := s.Set(KeyAccessToken, "tok-a"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok := s.Get(KeyAccessToken)
	if !ok || v != "tok-a" {
		t.Errorf("got %q ok=%v, want tok-a", v, ok)
	}
}

func TestGetAbsent(t *testing.T) {
	s := New(t.TempDir())
	if v, ok := s.Get(KeyRefreshToken); ok {
		t.Errorf("expected absent, got %q", v)
	}
}

func TestSaveTokensPersistsBoth(t *testing.T) {
	s := New(t.TempDir())
	if err := s.SaveTokens(model.TokenPair{Access: "a", Refresh: "r"}); err != nil {
		t.Fatalf("SaveTokens failed: %v", err)
	}
	if v, _ := s.Get(KeyAccessToken); v != "a" {
		t.Errorf("access = %q, want a", v)
	}
	if v, _ := s.Get(KeyRefreshToken); v != "r" {
		t.Errorf("refresh = %q, want r", v)
	}
}

func TestClearRemovesAllKeys(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	_ = s.SaveTokens(model.TokenPair{Access: "a", Refresh: "r"})
	_ = s.SaveUser(model.User{ID: 1, Username: "testuser"})

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUserData} {
		if _, ok := s.Get(key); ok {
			t.Errorf("key %s survived Clear", key)
		}
	}
}

func TestClearOnEmptyStore(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never-created"))
	if err := s.Clear(); err != nil {
		t.Errorf("Clear on empty store: %v", err)
	}
}

func TestUserSnapshotRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	in := model.User{ID: 7, Username: "writer", Email: "w@example.com"}
	if err := s.SaveUser(in); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	out, ok := s.LoadUser()
	if !ok {
		t.Fatal("LoadUser returned absent")
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestLoadUserCorrupt(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := os.WriteFile(filepath.Join(dir, KeyUserData), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.LoadUser(); ok {
		t.Error("expected corrupt snapshot to read as absent")
	}
}

func TestTokenFilePermissions(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Set(KeyAccessToken, "tok"); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(filepath.Join(dir, KeyAccessToken))
	if err != nil {
		t.Fatal(err)
	}
	if perm := fi.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}
}
