// Package loader reads process lists from CSV, YAML and JSON files.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cpusim/internal/requests"

	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported process file format")

// LoadFile reads path, choosing the decoder from its extension. CSV files
// carry only processes; YAML/JSON files may also set the algorithm and its
// parameters.
func LoadFile(path string) (*requests.ScheduleRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open process file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		jobs, err := LoadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &requests.ScheduleRequest{Jobs: jobs}, nil
	case ".yaml", ".yml", ".json":
		req, err := LoadYAML(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return req, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadCSV parses rows of pid,arrival,burst[,priority]. Blank lines and lines
// starting with '#' are skipped, as is a leading header row whose first cell
// is not a number.
func LoadCSV(r io.Reader) ([]requests.Job, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	jobs := make([]requests.Job, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 {
			if _, err := strconv.Atoi(strings.TrimSpace(row[0])); err != nil {
				continue
			}
		}
		if len(row) != 3 && len(row) != 4 {
			return nil, fmt.Errorf("row %d: expected 3 or 4 fields, got %d", i+1, len(row))
		}

		values := make([]int, 4)
		for j, cell := range row {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return nil, fmt.Errorf("row %d field %d: %w", i+1, j+1, err)
			}
			values[j] = v
		}
		jobs = append(jobs, requests.Job{
			PID:         values[0],
			ArrivalTime: values[1],
			BurstTime:   values[2],
			Priority:    values[3],
		})
	}
	return jobs, nil
}

// LoadYAML decodes a ScheduleRequest document. JSON input is accepted since
// JSON is valid YAML.
func LoadYAML(r io.Reader) (*requests.ScheduleRequest, error) {
	var req requests.ScheduleRequest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("parse process file: %w", err)
	}
	return &req, nil
}
