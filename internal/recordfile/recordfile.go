// Package recordfile reads project records in bulk from JSON Lines files.
package recordfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/matsched/pkg/matsched/project"
)

// LoadJSONL loads one project record per non-blank line of path. Malformed
// lines are skipped and returned as skipped; an error is returned when the
// file cannot be read or holds no valid record.
func LoadJSONL(path string) (records []project.Record, skipped []error, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file %s: %w", path, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, err := project.Decode([]byte(line))
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s line %d: %w", path, i+1, err))
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, skipped, fmt.Errorf("no valid records found in %s", path)
	}
	return records, skipped, nil
}
