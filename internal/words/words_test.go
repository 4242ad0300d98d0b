package words

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"quintle/internal/game"
)

func TestDefaultCorpus(t *testing.T) {
	list := Default()
	if len(list) == 0 {
		t.Fatal("embedded corpus is empty")
	}
	seen := make(map[string]bool)
	for _, w := range list {
		if _, err := game.Normalize(w); err != nil {
			t.Errorf("embedded word %q is not a valid word", w)
		}
		if seen[w] {
			t.Errorf("embedded word %q appears twice", w)
		}
		seen[w] = true
	}
}

func TestLoadSkipsInvalidLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "crane\n\n# starter words\nhello world\nto\nSTONE\nmouse\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []string{"CRANE", "STONE", "MOUSE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %v, want %v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Load succeeded on a missing file")
	}
}
