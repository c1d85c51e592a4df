package oracle

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/iamwavecut/guessbot/resources"
)

const defaultVocabulary = "vocabulary/en.txt.gz"

// Vocabulary is the set of words the game accepts.
type Vocabulary struct {
	words map[string]struct{}
}

// LoadVocabulary reads a word list, one word per line, plain or gzipped.
// An empty path loads the embedded default list.
func LoadVocabulary(path string) (*Vocabulary, error) {
	var (
		r   io.ReadCloser
		err error
	)
	if path == "" {
		r, err = resources.FS.Open(defaultVocabulary)
		path = defaultVocabulary
	} else {
		r, err = os.Open(path)
	}
	if err != nil {
		return nil, errors.WithMessage(err, "open vocabulary")
	}
	defer r.Close()

	var src io.Reader = r
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.WithMessage(err, "open gzipped vocabulary")
		}
		defer gz.Close()
		src = gz
	}
	return ParseVocabulary(src)
}

// ParseVocabulary keeps lines that are single words made of ASCII letters.
func ParseVocabulary(r io.Reader) (*Vocabulary, error) {
	v := &Vocabulary{words: map[string]struct{}{}}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || !isLetters(word) {
			continue
		}
		v.words[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read vocabulary")
	}
	if len(v.words) == 0 {
		return nil, errors.New("vocabulary is empty")
	}
	return v, nil
}

func NewVocabulary(words ...string) *Vocabulary {
	v, _ := ParseVocabulary(strings.NewReader(strings.Join(words, "\n")))
	if v == nil {
		v = &Vocabulary{words: map[string]struct{}{}}
	}
	return v
}

func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.words[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

func (v *Vocabulary) Len() int {
	return len(v.words)
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
