package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"phonosim/internal/resource"
)

// ReadSizes parses whitespace-separated (name, iso639-3, iso639-1, size)
// rows. Names containing spaces are accepted: every field before the last
// three is part of the name. Blank lines are skipped.
func ReadSizes(r io.Reader) ([]resource.SizeRow, error) {
	const table = "sizes"
	var out []resource.SizeRow
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, rowErr(table, line, "expected 4 fields, got %d", len(fields))
		}
		n := len(fields)
		size, err := strconv.ParseInt(fields[n-1], 10, 64)
		if err != nil || size < 0 {
			return nil, rowErr(table, line, "bad size %q", fields[n-1])
		}
		out = append(out, resource.SizeRow{
			Name: strings.Join(fields[:n-3], " "),
			ISO3: fields[n-3],
			ISO1: fields[n-2],
			Size: size,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}
	return out, nil
}

// LoadSizes reads the size listing at path into a resource table.
func LoadSizes(path string) (tbl *resource.Table, err error) {
	err = openFile(path, func(r io.Reader) error {
		var rows []resource.SizeRow
		rows, err = ReadSizes(r)
		if err == nil {
			tbl = resource.NewTable(rows)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return tbl, nil
}
