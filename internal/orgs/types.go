package orgs

import (
	"net/url"
	"strconv"
)

// Organization is a campus organization record. Field names follow the
// backend contract (Indonesian domain terms).
type Organization struct {
	ID                string   `json:"id"`
	NamaInstansi      string   `json:"namaInstansi"`
	DaerahInstansi    string   `json:"daerahInstansi"`
	NamaOrganisasi    string   `json:"namaOrganisasi"`
	Kontak            string   `json:"kontak"`
	JenisOrganisasi   string   `json:"jenisOrganisasi"`
	BidangOrganisasi  string   `json:"bidangOrganisasi"`
	TahunBerdiri      int      `json:"tahunBerdiri"`
	PenjelasanSingkat string   `json:"penjelasanSingkat,omitempty"`
	Proker            []string `json:"proker,omitempty"`
	CreatedAt         string   `json:"createdAt,omitempty"`
	UpdatedAt         string   `json:"updatedAt,omitempty"`
}

// CreateInput is the creation payload.
type CreateInput struct {
	NamaInstansi      string   `json:"namaInstansi" validate:"required"`
	DaerahInstansi    string   `json:"daerahInstansi" validate:"required"`
	NamaOrganisasi    string   `json:"namaOrganisasi" validate:"required"`
	Kontak            string   `json:"kontak" validate:"required"`
	JenisOrganisasi   string   `json:"jenisOrganisasi" validate:"required"`
	BidangOrganisasi  string   `json:"bidangOrganisasi" validate:"required"`
	TahunBerdiri      int      `json:"tahunBerdiri" validate:"required,gte=1900,lte=2100"`
	PenjelasanSingkat string   `json:"penjelasanSingkat,omitempty"`
	Proker            []string `json:"proker,omitempty"`
}

// UpdateInput is the partial update payload; nil fields are left untouched.
type UpdateInput struct {
	NamaInstansi      *string   `json:"namaInstansi,omitempty"`
	DaerahInstansi    *string   `json:"daerahInstansi,omitempty"`
	NamaOrganisasi    *string   `json:"namaOrganisasi,omitempty"`
	Kontak            *string   `json:"kontak,omitempty"`
	JenisOrganisasi   *string   `json:"jenisOrganisasi,omitempty"`
	BidangOrganisasi  *string   `json:"bidangOrganisasi,omitempty"`
	TahunBerdiri      *int      `json:"tahunBerdiri,omitempty"`
	PenjelasanSingkat *string   `json:"penjelasanSingkat,omitempty"`
	Proker            *[]string `json:"proker,omitempty"`
}

// Filters narrows and orders a listing.
type Filters struct {
	Search           string
	NamaInstansi     string
	DaerahInstansi   string
	JenisOrganisasi  []string
	BidangOrganisasi []string
	TahunMin         int
	TahunMax         int
	SortBy           string
	SortOrder        string // asc, desc
	Page             int
	Limit            int
}

// Query renders the filters as request query parameters, skipping zero
// values.
func (f Filters) Query() url.Values {
	params := url.Values{}

	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.NamaInstansi != "" {
		params.Set("namaInstansi", f.NamaInstansi)
	}
	if f.DaerahInstansi != "" {
		params.Set("daerahInstansi", f.DaerahInstansi)
	}
	for _, jenis := range f.JenisOrganisasi {
		params.Add("jenisOrganisasi", jenis)
	}
	for _, bidang := range f.BidangOrganisasi {
		params.Add("bidangOrganisasi", bidang)
	}
	if f.TahunMin > 0 {
		params.Set("tahunMin", strconv.Itoa(f.TahunMin))
	}
	if f.TahunMax > 0 {
		params.Set("tahunMax", strconv.Itoa(f.TahunMax))
	}
	if f.SortBy != "" {
		params.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		params.Set("sortOrder", f.SortOrder)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	return params
}

// Stats summarizes the directory.
type Stats struct {
	TotalOrganizations int              `json:"totalOrganizations"`
	ByJenis            map[string]int   `json:"byJenis"`
	ByBidang           map[string]int   `json:"byBidang"`
	ByInstansi         map[string]int   `json:"byInstansi"`
	Recent             []Organization   `json:"recentOrganizations,omitempty"`
}

// FilterOptions are the distinct values available for dropdown filters.
type FilterOptions struct {
	NamaInstansi     []string `json:"namaInstansi"`
	DaerahInstansi   []string `json:"daerahInstansi"`
	JenisOrganisasi  []string `json:"jenisOrganisasi"`
	BidangOrganisasi []string `json:"bidangOrganisasi"`
}

// ImportError is one rejected CSV row.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Success      bool          `json:"success"`
	SuccessCount int           `json:"successCount"`
	FailedCount  int           `json:"failedCount"`
	Errors       []ImportError `json:"errors"`
}

// BulkDeleteResult reports how many records a bulk delete removed.
type BulkDeleteResult struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deletedCount"`
}
