package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"

	"senserve/internal/utils"
	"senserve/pkg/trie"
	"senserve/pkg/vocab"
)

const corpusExt = ".txt"

// Load walks root recursively, indexes every qualifying line of every .txt
// file into tr, and returns the built corpus. A line qualifies when it still
// contains at least one letter after trimming. Sentence ids start at 1 and
// increase by one per qualifying line, in file-walk order.
//
// A missing or unreadable root is fatal. A file that fails to read is logged
// and skipped; ingestion continues. When words is non-nil every indexed word
// is also counted there.
func Load(root string, tr *trie.Trie, words *vocab.Index) (*Corpus, error) {
	if !utils.DirExists(root) {
		return nil, fmt.Errorf("corpus directory not found: %s", root)
	}

	var sentences []Sentence
	sentenceID := 1

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warnf("Skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), corpusExt) {
			return nil
		}

		content, err := readFile(path)
		if err != nil {
			log.Errorf("Failed to read %s: %v", path, err)
			return nil
		}

		origin := filepath.Base(path)
		added := 0
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || !utils.HasAlpha(line) {
				continue
			}
			indexLine(tr, words, line, sentenceID)
			sentences = append(sentences, Sentence{ID: sentenceID, Text: line, Origin: origin})
			sentenceID++
			added++
		}
		log.Debugf("Indexed %d sentences from %s", added, origin)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking corpus directory %s: %w", root, err)
	}

	log.Debugf("Corpus loaded: %d sentences, %d trie nodes", len(sentences), tr.NodeCount())
	return New(sentences), nil
}

// indexLine inserts every whitespace-split word of line with its position.
func indexLine(tr *trie.Trie, words *vocab.Index, line string, sentenceID int) {
	for position, word := range strings.Fields(line) {
		tr.Insert(word, sentenceID, position)
		if words != nil {
			words.Add(word)
		}
	}
}

// readFile maps the file into memory for the parse and falls back to a
// plain read when mapping is not possible (empty files among others).
func readFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() == 0 {
		return "", nil
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		log.Debugf("mmap failed for %s, falling back to read: %v", path, err)
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return "", rerr
		}
		return string(data), nil
	}
	defer m.Unmap()

	// string() copies, so the mapping can be released before parsing ends
	return string(m), nil
}
