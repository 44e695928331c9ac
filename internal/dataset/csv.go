// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/apex/log"
)

// ReadCSV loads a CSV file into a Table. The first record is taken as the
// header row. Ragged rows are tolerated; consumers go through Table.Cell.
func ReadCSV(path string, name string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: no header row", ErrParse, path)
	}

	t := &Table{
		Name:    name,
		Columns: records[0],
		Rows:    records[1:],
	}

	log.Debugf("%s loaded: %d rows x %d cols", name, len(t.Rows), len(t.Columns))
	return t, nil
}
