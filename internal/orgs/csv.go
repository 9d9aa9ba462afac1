package orgs

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVHeader is the column order of import/export files, matching the
// backend's template.
var CSVHeader = []string{
	"namaInstansi",
	"daerahInstansi",
	"namaOrganisasi",
	"kontak",
	"jenisOrganisasi",
	"bidangOrganisasi",
	"tahunBerdiri",
	"penjelasanSingkat",
	"proker",
}

const prokerSeparator = ";"

// WriteCSV renders organizations as CSV with the standard header.
func WriteCSV(w io.Writer, organizations []Organization) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, org := range organizations {
		record := []string{
			org.NamaInstansi,
			org.DaerahInstansi,
			org.NamaOrganisasi,
			org.Kontak,
			org.JenisOrganisasi,
			org.BidangOrganisasi,
			strconv.Itoa(org.TahunBerdiri),
			org.PenjelasanSingkat,
			strings.Join(org.Proker, prokerSeparator),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV parses a CSV document into creation inputs. Rows that fail to
// parse are reported as ImportErrors with their 1-based row number (the
// header is row 1); valid rows are still returned.
func ReadCSV(r io.Reader) ([]CreateInput, []ImportError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range CSVHeader[:7] {
		if _, ok := columns[required]; !ok {
			return nil, nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	cell := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var inputs []CreateInput
	var importErrors []ImportError

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			importErrors = append(importErrors, ImportError{
				Row:     row,
				Message: fmt.Sprintf("malformed row: %v", err),
			})
			continue
		}

		tahun, err := strconv.Atoi(cell(record, "tahunBerdiri"))
		if err != nil {
			importErrors = append(importErrors, ImportError{
				Row:     row,
				Field:   "tahunBerdiri",
				Message: "must be a year",
			})
			continue
		}

		input := CreateInput{
			NamaInstansi:      cell(record, "namaInstansi"),
			DaerahInstansi:    cell(record, "daerahInstansi"),
			NamaOrganisasi:    cell(record, "namaOrganisasi"),
			Kontak:            cell(record, "kontak"),
			JenisOrganisasi:   cell(record, "jenisOrganisasi"),
			BidangOrganisasi:  cell(record, "bidangOrganisasi"),
			TahunBerdiri:      tahun,
			PenjelasanSingkat: cell(record, "penjelasanSingkat"),
		}
		if raw := cell(record, "proker"); raw != "" {
			input.Proker = strings.Split(raw, prokerSeparator)
		}

		inputs = append(inputs, input)
	}

	return inputs, importErrors, nil
}
