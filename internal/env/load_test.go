package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line, key, value string
		ok               bool
	}{
		{"A=1", "A", "1", true},
		{"  B = two words ", "B", "two words", true},
		{`C="quoted"`, "C", "quoted", true},
		{"D='single'", "D", "single", true},
		{"export E=x", "E", "x", true},
		{"# comment", "", "", false},
		{"", "", "", false},
		{"=nokey", "", "", false},
		{"noequals", "", "", false},
	}
	for _, tt := range tests {
		k, v, ok := parseLine(tt.line)
		if k != tt.key || v != tt.value || ok != tt.ok {
			t.Errorf("parseLine(%q) = %q, %q, %t", tt.line, k, v, ok)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "SHAPEFIELD_TEST_A=from-file\nSHAPEFIELD_TEST_B=from-file\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHAPEFIELD_TEST_B", "from-env")
	t.Setenv("SHAPEFIELD_TEST_A", "")
	os.Unsetenv("SHAPEFIELD_TEST_A")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("SHAPEFIELD_TEST_A"); got != "from-file" {
		t.Errorf("A = %q", got)
	}
	if got := os.Getenv("SHAPEFIELD_TEST_B"); got != "from-env" {
		t.Errorf("B = %q, process environment should win", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Fatal(err)
	}
}

func TestGet(t *testing.T) {
	t.Setenv("SHAPEFIELD_TEST_GET", "")
	if Get("SHAPEFIELD_TEST_GET", "fallback") != "fallback" {
		t.Error("empty value should fall back")
	}
	t.Setenv("SHAPEFIELD_TEST_GET", "set")
	if Get("SHAPEFIELD_TEST_GET", "fallback") != "set" {
		t.Error("set value ignored")
	}
}
