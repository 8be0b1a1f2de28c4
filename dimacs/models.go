package dimacs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseModels reads a ".models" fixture file: one model per line, each a
// space-separated list of signed literals terminated by a trailing 0 (the
// DIMACS clause-line convention), used by the test suite to check a
// solver's enumerated models against a known-good set. Grounded on the
// teacher's internal/dimacs/models.go.
func ParseModels(filename string) ([][]int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var models [][]int
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		model := make([]int, 0, len(fields))
		for _, f := range fields {
			l, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("error parsing literal %q: %w", f, err)
			}
			if l == 0 {
				continue
			}
			model = append(model, l)
		}
		models = append(models, model)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return models, nil
}
