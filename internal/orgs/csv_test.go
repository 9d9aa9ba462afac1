package orgs

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	orgs := []Organization{
		{
			NamaInstansi:     "Universitas Gadjah Mada",
			DaerahInstansi:   "Yogyakarta",
			NamaOrganisasi:   "HMIF",
			Kontak:           "hmif@ugm.ac.id",
			JenisOrganisasi:  "Himpunan",
			BidangOrganisasi: "Teknologi",
			TahunBerdiri:     1995,
			Proker:           []string{"Study club", "Lomba internal"},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, orgs); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 record", len(lines))
	}
	if lines[0] != strings.Join(CSVHeader, ",") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Study club;Lomba internal") {
		t.Fatalf("programs not joined with separator: %q", lines[1])
	}
}

func TestReadCSVRoundTrip(t *testing.T) {
	orgs := []Organization{
		{
			NamaInstansi:      "ITB",
			DaerahInstansi:    "Bandung",
			NamaOrganisasi:    "Unit Robotika",
			Kontak:            "robotika@itb.ac.id",
			JenisOrganisasi:   "UKM",
			BidangOrganisasi:  "Teknologi",
			TahunBerdiri:      2004,
			PenjelasanSingkat: "Robotika dan otomasi",
			Proker:            []string{"Kontes robot"},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, orgs); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	inputs, importErrors, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(importErrors) != 0 {
		t.Fatalf("unexpected row errors: %+v", importErrors)
	}
	if len(inputs) != 1 {
		t.Fatalf("got %d inputs", len(inputs))
	}

	got := inputs[0]
	if got.NamaOrganisasi != "Unit Robotika" || got.TahunBerdiri != 2004 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if len(got.Proker) != 1 || got.Proker[0] != "Kontes robot" {
		t.Fatalf("proker mismatch: %+v", got.Proker)
	}
}

func TestReadCSVReportsBadRowsAndKeepsGoodOnes(t *testing.T) {
	doc := strings.Join([]string{
		strings.Join(CSVHeader, ","),
		"UGM,Yogyakarta,HMIF,hmif@ugm.ac.id,Himpunan,Teknologi,1995,,",
		"UI,Depok,Paragita,paragita@ui.ac.id,UKM,Seni,not-a-year,,",
		"ITB,Bandung,Robotika,robotika@itb.ac.id,UKM,Teknologi,2004,,",
	}, "\n")

	inputs, importErrors, err := ReadCSV(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if len(inputs) != 2 {
		t.Fatalf("got %d valid inputs, want 2", len(inputs))
	}
	if len(importErrors) != 1 {
		t.Fatalf("got %d row errors, want 1", len(importErrors))
	}
	// Header is row 1, so the bad record is row 3
	if importErrors[0].Row != 3 {
		t.Errorf("error row = %d, want 3", importErrors[0].Row)
	}
	if importErrors[0].Field != "tahunBerdiri" {
		t.Errorf("error field = %q", importErrors[0].Field)
	}
}

func TestReadCSVRejectsMissingRequiredColumn(t *testing.T) {
	doc := "namaInstansi,daerahInstansi\nUGM,Yogyakarta\n"

	_, _, err := ReadCSV(strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected an error for a missing required column")
	}
	if !strings.Contains(err.Error(), "namaOrganisasi") {
		t.Fatalf("error should name the missing column: %v", err)
	}
}

func TestReadCSVToleratesReorderedColumns(t *testing.T) {
	doc := strings.Join([]string{
		"tahunBerdiri,namaOrganisasi,namaInstansi,daerahInstansi,kontak,jenisOrganisasi,bidangOrganisasi",
		"1983,Paragita,UI,Depok,paragita@ui.ac.id,UKM,Seni",
	}, "\n")

	inputs, importErrors, err := ReadCSV(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(importErrors) != 0 {
		t.Fatalf("unexpected row errors: %+v", importErrors)
	}
	if len(inputs) != 1 || inputs[0].NamaOrganisasi != "Paragita" || inputs[0].TahunBerdiri != 1983 {
		t.Fatalf("parsed inputs = %+v", inputs)
	}
}
