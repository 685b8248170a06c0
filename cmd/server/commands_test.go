package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--profile", ""))
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute(%v) error = %v", args, err)
	}
	return out.String()
}

func TestRenderCommand_WritesProfilePage(t *testing.T) {
	// Act
	out := execute(t, "render", "--seed", "7")

	// Assert
	for _, want := range []string{
		"<!doctype html>",
		`data-view-id="preview"`,
		`>Follow</button>`,
		`>2000</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
	if strings.Count(out, "<article") != 20 {
		t.Errorf("expected 20 posts, got %d", strings.Count(out, "<article"))
	}
}

func TestRenderCommand_SameSeedSameFeed(t *testing.T) {
	first := execute(t, "render", "--seed", "11")
	second := execute(t, "render", "--seed", "11")

	if first != second {
		t.Error("render with the same seed should be deterministic")
	}
}

func TestDumpCommand_PrintsSnapshot(t *testing.T) {
	out := execute(t, "dump", "--seed", "3")

	for _, want := range []string{`ViewID: "preview"`, "Following: false", `Username: "PAUL"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dump output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommand_MissingProfileFile(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetOut(&bytes.Buffer{})
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"render", "--profile", "testdata/does-not-exist.yaml"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for a missing profile file")
	}
}
