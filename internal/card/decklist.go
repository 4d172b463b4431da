package card

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// SampleDeckList is the reference Nightmare combo list used by the CLI when
// no deck file is given, and by tests. 60 cards.
const SampleDeckList = `# Nightmare combo (goldfish reference list)
4 Abhorrent Oculus
4 Overlord of the Balemurk
4 Overlord of the Floodpits
4 Fear of Missing Out
4 Picklock Prankster
4 Stitch Together
4 Founding the Third Path
4 Consider

4 Gloomlake Verge
4 Blazemire Verge
4 Cavern of Souls
2 Multiversal Passage
2 Starting Town
6 Island
4 Swamp
2 Mountain
`

// ParseDeckList parses a deck list in "<count> <card name>" line format into
// an expanded card sequence. Blank lines and lines starting with '#' are
// skipped. Unknown card names fail with a wrapped ErrCardNotFound.
func ParseDeckList(text string, catalog *Catalog) ([]Card, error) {
	var deck []Card

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"<count> <card name>\", got %q", lineNo, line)
		}

		count, err := strconv.Atoi(fields[0])
		if err != nil || count < 1 {
			return nil, fmt.Errorf("line %d: invalid count %q", lineNo, fields[0])
		}

		name := strings.TrimSpace(fields[1])
		c, err := catalog.Get(name)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		for i := 0; i < count; i++ {
			deck = append(deck, c)
		}
	}

	return deck, scanner.Err()
}

// LoadDeckFile reads and parses a deck list file.
func LoadDeckFile(path string, catalog *Catalog) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck list: %w", err)
	}
	return ParseDeckList(string(data), catalog)
}
