// pkg/dataset/csv.go
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadCSV parses a delimited table (header row + data rows) from r
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty input: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	ds := New(header)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(ds.Rows)+1, err)
		}
		ds.AppendRow(row)
	}

	return ds, nil
}

// WriteCSV serializes the dataset to w in the same encoding it was read in
func WriteCSV(w io.Writer, ds *Dataset) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range ds.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// ReadFile loads a dataset from a CSV file at the given path
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ds, nil
}

// WriteFile saves the dataset as a CSV file at the given path
func WriteFile(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteCSV(f, ds); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
