package IO

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/Linux-Server/ML-Task/params"
)

type vocabFile struct {
	IDToToken []string `json:"IDToToken"`
}

// ExportVocabJSON writes the code→character table so a run's vocabulary can
// be inspected. Codes are the array indices.
func ExportVocabJSON(v params.Vocabulary, path string) error {
	data := vocabFile{IDToToken: make([]string, len(v.IDToToken))}
	for i, r := range v.IDToToken {
		data.IDToToken[i] = string(r)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ImportVocabJSON reads a file written by ExportVocabJSON.
func ImportVocabJSON(path string) (params.Vocabulary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return params.Vocabulary{}, err
	}
	var data vocabFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return params.Vocabulary{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(data.IDToToken) == 0 {
		return params.Vocabulary{}, fmt.Errorf("%s: %w", path, ErrEmptyCorpus)
	}
	v := params.Vocabulary{
		TokenToID: make(map[rune]int, len(data.IDToToken)),
		IDToToken: make([]rune, len(data.IDToToken)),
	}
	for i, s := range data.IDToToken {
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) {
			return params.Vocabulary{}, fmt.Errorf("%s: entry %d is not a single character: %q", path, i, s)
		}
		if _, dup := v.TokenToID[r]; dup {
			return params.Vocabulary{}, fmt.Errorf("%s: duplicate entry %q", path, s)
		}
		v.IDToToken[i] = r
		v.TokenToID[r] = i
	}
	return v, nil
}

// VocabFor returns the vocabulary stored at path when path is set, otherwise
// the one built from text. A stored vocabulary must cover every character of
// text so codes stay stable across runs on related corpora.
func VocabFor(text, path string) (params.Vocabulary, error) {
	if path == "" {
		return BuildVocab(text)
	}
	v, err := ImportVocabJSON(path)
	if err != nil {
		return params.Vocabulary{}, err
	}
	for _, r := range text {
		if _, err := VocabLookup(v, r); err != nil {
			return params.Vocabulary{}, fmt.Errorf("%s does not cover the corpus: %w", path, err)
		}
	}
	return v, nil
}
