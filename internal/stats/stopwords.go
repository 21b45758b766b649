package stats

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed stopwords.txt
var defaultStopWords string

// StopWords is a set of lower-cased words left out of word statistics.
type StopWords map[string]struct{}

// DefaultStopWords returns the built-in list (English and romanised Hindi
// chat filler).
func DefaultStopWords() StopWords {
	s := StopWords{}
	s.add(strings.NewReader(defaultStopWords))
	return s
}

// LoadStopWords returns the built-in list extended with the words of path,
// one per line. An empty path returns the built-in list.
func LoadStopWords(path string) (StopWords, error) {
	s := DefaultStopWords()
	if path == "" {
		return s, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stopwords: %w", err)
	}
	defer f.Close()
	if err := s.add(f); err != nil {
		return nil, fmt.Errorf("read stopwords %s: %w", path, err)
	}
	return s, nil
}

func (s StopWords) add(r io.Reader) error {
	lower := cases.Lower(language.Und)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		s[lower.String(w)] = struct{}{}
	}
	return scanner.Err()
}

func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}
