package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFileTakesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte(" file-secret \n"), 0o600); err != nil {
		t.Fatalf("writing token file: %v", err)
	}

	t.Setenv("STAYSEEKER_TEST_SECRET", "env-secret")

	secret, err := Load(Source{
		Name:  "apify token",
		Value: "inline-secret",
		File:  path,
		Env:   "STAYSEEKER_TEST_SECRET",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "file-secret" {
		t.Fatalf("expected trimmed file secret, got %q", secret)
	}
}

func TestLoadFallsBackToEnv(t *testing.T) {
	t.Setenv("STAYSEEKER_TEST_SECRET", " env-secret ")

	secret, err := Load(Source{Name: "apify token", Env: "STAYSEEKER_TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "env-secret" {
		t.Fatalf("expected trimmed env secret, got %q", secret)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "apify token"}); err == nil {
		t.Fatal("expected error when nothing is configured")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}

	if _, err := Load(Source{Name: "apify token", File: empty}); err == nil {
		t.Fatal("expected error for empty token file")
	}

	if _, err := Load(Source{Name: "apify token", File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for missing token file")
	}
}
