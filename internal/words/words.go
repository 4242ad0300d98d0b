// Package words supplies the seed corpus for the word bank.
//
// Two sources:
//   - the embedded starter list in default_words.txt, used when no
//     file is configured;
//   - an external file (one word per line) via WORDS_FILE.
//
// Lines that are not valid five-letter words are skipped, so list
// files may carry comments or blanks.
package words

import (
	"bufio"
	_ "embed"
	"os"
	"strings"

	"quintle/internal/game"
)

//go:embed default_words.txt
var embedded string

// Default returns the embedded starter corpus, normalized.
func Default() []string { return normalizeLines(embedded) }

// Load reads one word per line from path, keeping only valid
// five-letter alphabetic words, uppercased.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, err := game.Normalize(sc.Text()); err == nil {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, err := game.Normalize(line); err == nil {
			out = append(out, w)
		}
	}
	return out
}
