// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/xuri/excelize/v2"
)

// ReadExcel loads the first non-empty sheet of an xlsx workbook into a
// Table. The first row is the header row. Rows shorter than the header are
// tolerated; consumers go through Table.Cell.
func ReadExcel(path string, name string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string
	for _, candidate := range f.GetSheetList() {
		candidateRows, rowsErr := f.GetRows(candidate)
		if rowsErr != nil {
			continue
		}
		if len(candidateRows) > 0 && len(candidateRows[0]) > 0 {
			rows = candidateRows
			sheetName = candidate
			break
		}
	}

	if sheetName == "" {
		return nil, fmt.Errorf("%w: %s: no sheet with data", ErrParse, path)
	}

	t := &Table{
		Name:    name,
		Columns: rows[0],
		Rows:    rows[1:],
	}

	log.Debugf("%s loaded from sheet %q: %d rows x %d cols",
		name, sheetName, len(t.Rows), len(t.Columns))
	return t, nil
}
