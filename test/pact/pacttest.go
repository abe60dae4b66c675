//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "catalog-service"
	ConsumerName = "order-service"

	StateBookExists  = "book with ISBN 1234567890 exists"
	StateBookMissing = "no book with ISBN 0000000000"
)

const (
	ExistingISBN = "1234567890"
	MissingISBN  = "0000000000"
)

// ExampleBookPayload provides stable test data for pact interactions.
func ExampleBookPayload() map[string]any {
	return map[string]any{
		"isbn":   ExistingISBN,
		"title":  "Northern Lights",
		"author": "Lyra Silverstar",
		"price":  9.90,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
