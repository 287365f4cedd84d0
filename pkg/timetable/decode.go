package timetable

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type csvRecord struct {
	Type      string `csv:"type"`
	Line      string `csv:"line"`
	Loop      string `csv:"loop"`
	StationID string `csv:"station_id"`
	Station   string `csv:"station"`
	Times     string `csv:"times"`
}

func DecodeJSON(reader io.Reader) (Timetable, error) {
	var timetable Timetable
	if err := json.NewDecoder(reader).Decode(&timetable); err != nil {
		return nil, fmt.Errorf("decoding timetable json: %w", err)
	}

	return timetable, nil
}

func DecodeYAML(reader io.Reader) (Timetable, error) {
	var timetable Timetable
	if err := yaml.NewDecoder(reader).Decode(&timetable); err != nil {
		return nil, fmt.Errorf("decoding timetable yaml: %w", err)
	}

	return timetable, nil
}

// DecodeCSV reads one row per station. Rows belonging to the same line and day type must be
// consecutive and in travel order; departure times are separated by spaces.
func DecodeCSV(reader io.Reader) (Timetable, error) {
	var records []*csvRecord

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return nil, fmt.Errorf("decoding timetable csv: %w", err)
	}

	var timetable Timetable
	for _, record := range records {
		if record.Line == "" || record.Station == "" {
			log.Warn().Str("line", record.Line).Str("station", record.Station).Msg("Skipping incomplete timetable row")
			continue
		}

		if len(timetable) == 0 || timetable[len(timetable)-1].LineName != record.Line || timetable[len(timetable)-1].Type != record.Type {
			timetable = append(timetable, Line{
				Type:     record.Type,
				LineName: record.Line,
			})
		}

		line := &timetable[len(timetable)-1]
		if isTruthy(record.Loop) {
			line.Loop = true
		}

		line.Stations = append(line.Stations, Station{
			ID:   record.StationID,
			Name: record.Station,
			Time: strings.Fields(record.Times),
		})
	}

	return timetable, nil
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y", "loop":
		return true
	}

	return false
}

// Load reads a timetable file, choosing the decoder from the file extension
func Load(path string) (Timetable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	log.Info().Str("path", path).Msg("Loading timetable")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(file)
	case ".yaml", ".yml":
		return DecodeYAML(file)
	case ".csv":
		return DecodeCSV(file)
	default:
		return nil, fmt.Errorf("unsupported timetable format %q", filepath.Ext(path))
	}
}
