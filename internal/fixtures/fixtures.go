// Package fixtures loads bulk test input for the art package: text files
// of one CIDR prefix per line, the same format used by
// original_source/tests/data.rs's v4routes-random1.txt corpus.
package fixtures

import (
	"bufio"
	"fmt"
	"net/netip"
	"os"
)

// LoadPrefixes reads path and parses each non-empty line as a
// net/netip.Prefix. Parsing is strict: a malformed line is a test setup
// error, not a runtime condition the art package needs to tolerate, so
// it is returned immediately rather than skipped.
func LoadPrefixes(path string) ([]netip.Prefix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: open %s: %w", path, err)
	}
	defer f.Close()

	var prefixes []netip.Prefix
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		p, err := netip.ParsePrefix(line)
		if err != nil {
			return nil, fmt.Errorf("fixtures: parse %q in %s: %w", line, path, err)
		}
		prefixes = append(prefixes, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fixtures: scan %s: %w", path, err)
	}
	return prefixes, nil
}
