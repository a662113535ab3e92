package filewalker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// LangFile is a discovered .lang file with its size.
type LangFile struct {
	Path string
	Size int64
}

// otherEnglishPatterns identify English variants beyond en_US.
var otherEnglishPatterns = []string{"en_gb", "en_ca", "en_au", "en.lang", "english"}

// IsEnUS reports whether the filename looks like the primary US English file.
func IsEnUS(name string) bool {
	return strings.Contains(strings.ToLower(name), "en_us")
}

// IsEnglish reports whether the filename looks like any English language file.
func IsEnglish(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "en_us") {
		return true
	}
	for _, p := range otherEnglishPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// FindLangFiles discovers all .lang files under root, ordered for analysis:
// en_US files first, then other English variants, then everything else, each
// group largest first. The readability formulas are English-specific, so the
// first file is the best candidate.
func FindLangFiles(root string) ([]LangFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var enUS, otherEnglish, rest []LangFile

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(path)) != ".lang" {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error reading file info")
			return nil
		}

		lf := LangFile{Path: path, Size: fi.Size()}
		name := filepath.Base(path)
		switch {
		case IsEnUS(name):
			enUS = append(enUS, lf)
		case IsEnglish(name):
			otherEnglish = append(otherEnglish, lf)
		default:
			rest = append(rest, lf)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	bySizeDesc := func(files []LangFile) {
		sort.Slice(files, func(i, j int) bool { return files[i].Size > files[j].Size })
	}
	bySizeDesc(enUS)
	bySizeDesc(otherEnglish)
	bySizeDesc(rest)

	all := make([]LangFile, 0, len(enUS)+len(otherEnglish)+len(rest))
	all = append(all, enUS...)
	all = append(all, otherEnglish...)
	all = append(all, rest...)

	log.Info().Int("count", len(all)).Str("root", root).Msg("Discovered lang files")
	return all, nil
}
