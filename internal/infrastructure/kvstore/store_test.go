package kvstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "notification_id"); err != nil || found {
		t.Fatalf("expected miss, found=%v err=%v", found, err)
	}
	if err := s.Set(ctx, "notification_id", "IPN1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, found, err := s.Get(ctx, "notification_id")
	if err != nil || !found || v != "IPN1" {
		t.Fatalf("unexpected get: v=%q found=%v err=%v", v, found, err)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is a miss", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "ipn.json"))
		_, found, err := s.Get(ctx, "notification_id")
		if err != nil || found {
			t.Fatalf("expected miss, found=%v err=%v", found, err)
		}
	})

	t.Run("reads existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ipn.json")
		if err := os.WriteFile(path, []byte(`{"notification_id":"IPN123"}`), 0o644); err != nil {
			t.Fatal(err)
		}
		v, found, err := NewFileStore(path).Get(ctx, "notification_id")
		if err != nil || !found || v != "IPN123" {
			t.Fatalf("unexpected get: v=%q found=%v err=%v", v, found, err)
		}
	})

	t.Run("file without key is a miss", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ipn.json")
		if err := os.WriteFile(path, []byte(`{"other":"x"}`), 0o644); err != nil {
			t.Fatal(err)
		}
		_, found, err := NewFileStore(path).Get(ctx, "notification_id")
		if err != nil || found {
			t.Fatalf("expected miss, found=%v err=%v", found, err)
		}
	})

	t.Run("corrupt file returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ipn.json")
		if err := os.WriteFile(path, []byte(`{`), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := NewFileStore(path).Get(ctx, "notification_id"); err == nil {
			t.Fatalf("expected parse error")
		}
	})

	t.Run("null file is a miss and can be overwritten", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ipn.json")
		if err := os.WriteFile(path, []byte(`null`), 0o644); err != nil {
			t.Fatal(err)
		}
		s := NewFileStore(path)
		if _, found, err := s.Get(ctx, "notification_id"); err != nil || found {
			t.Fatalf("expected miss, found=%v err=%v", found, err)
		}
		if err := s.Set(ctx, "notification_id", "IPN1"); err != nil {
			t.Fatalf("set: %v", err)
		}
		v, found, err := s.Get(ctx, "notification_id")
		if err != nil || !found || v != "IPN1" {
			t.Fatalf("unexpected get: v=%q found=%v err=%v", v, found, err)
		}
	})

	t.Run("set replaces prior content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ipn.json")
		if err := os.WriteFile(path, []byte(`{"stale":"x","notification_id":"OLD"}`), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := NewFileStore(path).Set(ctx, "notification_id", "IPN2"); err != nil {
			t.Fatalf("set: %v", err)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != `{"notification_id":"IPN2"}` {
			t.Fatalf("unexpected cache file: %s", b)
		}
	})

	t.Run("set writes json object", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ipn.json")
		if err := os.WriteFile(path, []byte(`{`), 0o644); err != nil {
			t.Fatal(err)
		}
		s := NewFileStore(path)
		if err := s.Set(ctx, "notification_id", "IPN999"); err != nil {
			t.Fatalf("set: %v", err)
		}

		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		var got map[string]string
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("cache file is not json: %s", b)
		}
		if len(got) != 1 || got["notification_id"] != "IPN999" {
			t.Fatalf("unexpected cache file: %s", b)
		}
	})
}
