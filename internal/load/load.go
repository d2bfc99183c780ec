// Package load reads the raw Formula 1 CSV datasets into memory.
//
// Each loader expects a fixed set of required columns; extra columns are
// ignored so the official exports can be used unmodified. Dimension tables
// (drivers, races, constructors) must parse cleanly, a malformed row there is
// fatal. Fact tables (results, qualifying) tolerate rows with unparsable
// identifiers; those rows are dropped and counted.
package load

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"f1pipeline/internal/f1"
)

// header maps a column name to its index in the CSV header row.
type header map[string]int

// get returns the trimmed field for the named column, or "" if the row is
// too short.
func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// open reads the whole file and validates that every required column is
// present. Rows are returned without the header, together with the file line
// each row starts on. Quoted fields may span lines, so line numbers come from
// the csv reader rather than a record count.
func open(path string, required []string) (header, [][]string, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil, &MissingFileError{Path: path}
		}
		return nil, nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled per field

	cols, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil, &ParseError{File: path, Line: 1, Msg: "empty file, expected a header row"}
	}
	if err != nil {
		return nil, nil, nil, &ParseError{File: path, Line: 1, Msg: "unreadable header", Err: err}
	}

	h := make(header, len(cols))
	for i, c := range cols {
		h[strings.TrimSpace(c)] = i
	}
	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, nil, nil, &ParseError{File: path, Line: 1, Msg: fmt.Sprintf("missing required column %q", name)}
		}
	}

	var rows [][]string
	var lines []int
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return nil, nil, nil, &ParseError{File: path, Line: line, Msg: "malformed row", Err: err}
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}
	return h, rows, lines, nil
}

// parseID parses a mandatory integer identifier.
func parseID(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parsePosition parses a finishing or grid position. Non-numeric markers such
// as "R", "D", "W" or "\N" report ok=false rather than an error.
func parsePosition(s string) (int, bool) {
	if s == "" || s == `\N` {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Drivers loads drivers.csv from path.
func Drivers(path string) ([]f1.Driver, error) {
	h, rows, lines, err := open(path, []string{"driverId", "forename", "surname", "nationality"})
	if err != nil {
		return nil, err
	}

	drivers := make([]f1.Driver, 0, len(rows))
	for i, row := range rows {
		id, ok := parseID(h.get(row, "driverId"))
		if !ok {
			return nil, &ParseError{File: path, Line: lines[i], Msg: fmt.Sprintf("invalid driverId %q", h.get(row, "driverId"))}
		}
		drivers = append(drivers, f1.Driver{
			ID:          id,
			Forename:    h.get(row, "forename"),
			Surname:     h.get(row, "surname"),
			Nationality: h.get(row, "nationality"),
		})
	}
	return drivers, nil
}

// Races loads races.csv from path.
func Races(path string) ([]f1.Race, error) {
	h, rows, lines, err := open(path, []string{"raceId", "year", "round", "name"})
	if err != nil {
		return nil, err
	}

	races := make([]f1.Race, 0, len(rows))
	for i, row := range rows {
		id, ok := parseID(h.get(row, "raceId"))
		if !ok {
			return nil, &ParseError{File: path, Line: lines[i], Msg: fmt.Sprintf("invalid raceId %q", h.get(row, "raceId"))}
		}
		season, ok := parseID(h.get(row, "year"))
		if !ok {
			return nil, &ParseError{File: path, Line: lines[i], Msg: fmt.Sprintf("invalid year %q", h.get(row, "year"))}
		}
		round, ok := parseID(h.get(row, "round"))
		if !ok {
			return nil, &ParseError{File: path, Line: lines[i], Msg: fmt.Sprintf("invalid round %q", h.get(row, "round"))}
		}
		races = append(races, f1.Race{
			ID:      id,
			Season:  season,
			Round:   round,
			Circuit: h.get(row, "name"),
		})
	}
	return races, nil
}

// Constructors loads constructors.csv from path.
func Constructors(path string) ([]f1.Constructor, error) {
	h, rows, lines, err := open(path, []string{"constructorId", "name", "nationality"})
	if err != nil {
		return nil, err
	}

	constructors := make([]f1.Constructor, 0, len(rows))
	for i, row := range rows {
		id, ok := parseID(h.get(row, "constructorId"))
		if !ok {
			return nil, &ParseError{File: path, Line: lines[i], Msg: fmt.Sprintf("invalid constructorId %q", h.get(row, "constructorId"))}
		}
		constructors = append(constructors, f1.Constructor{
			ID:          id,
			Name:        h.get(row, "name"),
			Nationality: h.get(row, "nationality"),
		})
	}
	return constructors, nil
}

// Results loads results.csv from path. Rows with unparsable identifiers are
// dropped; the count of dropped rows is returned alongside the rows kept.
func Results(path string) ([]f1.Result, int, error) {
	h, rows, _, err := open(path, []string{"raceId", "driverId", "constructorId", "positionOrder", "points"})
	if err != nil {
		return nil, 0, err
	}

	results := make([]f1.Result, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		raceID, ok1 := parseID(h.get(row, "raceId"))
		driverID, ok2 := parseID(h.get(row, "driverId"))
		constructorID, ok3 := parseID(h.get(row, "constructorId"))
		if !ok1 || !ok2 || !ok3 {
			dropped++
			continue
		}

		res := f1.Result{
			RaceID:        raceID,
			DriverID:      driverID,
			ConstructorID: constructorID,
		}
		res.Position, res.HasPosition = parsePosition(h.get(row, "positionOrder"))
		if pts, err := strconv.ParseFloat(h.get(row, "points"), 64); err == nil {
			res.Points = pts
			res.HasPoints = true
		}
		results = append(results, res)
	}
	return results, dropped, nil
}

// Qualifying loads qualifying.csv from path. Rows with unparsable identifiers
// are dropped and counted, mirroring Results.
func Qualifying(path string) ([]f1.Qualifying, int, error) {
	h, rows, _, err := open(path, []string{"raceId", "driverId", "position"})
	if err != nil {
		return nil, 0, err
	}

	qualifying := make([]f1.Qualifying, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		raceID, ok1 := parseID(h.get(row, "raceId"))
		driverID, ok2 := parseID(h.get(row, "driverId"))
		if !ok1 || !ok2 {
			dropped++
			continue
		}

		q := f1.Qualifying{RaceID: raceID, DriverID: driverID}
		q.Position, q.HasPosition = parsePosition(h.get(row, "position"))
		qualifying = append(qualifying, q)
	}
	return qualifying, dropped, nil
}
