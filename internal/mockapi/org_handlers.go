package mockapi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// OrganizationRequest is the create payload
type OrganizationRequest struct {
	NamaInstansi      string   `json:"namaInstansi" binding:"required"`
	DaerahInstansi    string   `json:"daerahInstansi" binding:"required"`
	NamaOrganisasi    string   `json:"namaOrganisasi" binding:"required"`
	Kontak            string   `json:"kontak" binding:"required"`
	JenisOrganisasi   string   `json:"jenisOrganisasi" binding:"required"`
	BidangOrganisasi  string   `json:"bidangOrganisasi" binding:"required"`
	TahunBerdiri      int      `json:"tahunBerdiri" binding:"required,gte=1900,lte=2100"`
	PenjelasanSingkat string   `json:"penjelasanSingkat"`
	Proker            []string `json:"proker"`
}

// OrganizationPatch is the partial update payload
type OrganizationPatch struct {
	NamaInstansi      *string   `json:"namaInstansi"`
	DaerahInstansi    *string   `json:"daerahInstansi"`
	NamaOrganisasi    *string   `json:"namaOrganisasi"`
	Kontak            *string   `json:"kontak"`
	JenisOrganisasi   *string   `json:"jenisOrganisasi"`
	BidangOrganisasi  *string   `json:"bidangOrganisasi"`
	TahunBerdiri      *int      `json:"tahunBerdiri"`
	PenjelasanSingkat *string   `json:"penjelasanSingkat"`
	Proker            *[]string `json:"proker"`
}

var organizationCSVHeader = []string{
	"namaInstansi", "daerahInstansi", "namaOrganisasi", "kontak",
	"jenisOrganisasi", "bidangOrganisasi", "tahunBerdiri",
	"penjelasanSingkat", "proker",
}

func organizationJSON(o *Organization) gin.H {
	return gin.H{
		"id":                o.ID,
		"namaInstansi":      o.NamaInstansi,
		"daerahInstansi":    o.DaerahInstansi,
		"namaOrganisasi":    o.NamaOrganisasi,
		"kontak":            o.Kontak,
		"jenisOrganisasi":   o.JenisOrganisasi,
		"bidangOrganisasi":  o.BidangOrganisasi,
		"tahunBerdiri":      o.TahunBerdiri,
		"penjelasanSingkat": o.PenjelasanSingkat,
		"proker":            o.Proker(),
		"createdAt":         o.CreatedAt,
		"updatedAt":         o.UpdatedAt,
	}
}

func (s *Server) filteredOrganizations(c *gin.Context) ([]Organization, error) {
	query := s.db.Model(&Organization{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"nama_organisasi LIKE ? OR nama_instansi LIKE ? OR daerah_instansi LIKE ?",
			like, like, like,
		)
	}
	if v := c.Query("namaInstansi"); v != "" {
		query = query.Where("nama_instansi = ?", v)
	}
	if v := c.Query("daerahInstansi"); v != "" {
		query = query.Where("daerah_instansi = ?", v)
	}
	if values := c.QueryArray("jenisOrganisasi"); len(values) > 0 {
		query = query.Where("jenis_organisasi IN ?", values)
	}
	if values := c.QueryArray("bidangOrganisasi"); len(values) > 0 {
		query = query.Where("bidang_organisasi IN ?", values)
	}
	if v := c.Query("tahunMin"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			query = query.Where("tahun_berdiri >= ?", year)
		}
	}
	if v := c.Query("tahunMax"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			query = query.Where("tahun_berdiri <= ?", year)
		}
	}

	sortBy := c.DefaultQuery("sortBy", "created_at")
	allowedSorts := map[string]string{
		"namaOrganisasi": "nama_organisasi",
		"namaInstansi":   "nama_instansi",
		"tahunBerdiri":   "tahun_berdiri",
		"createdAt":      "created_at",
		"created_at":     "created_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "created_at"
	}
	order := "ASC"
	if strings.EqualFold(c.DefaultQuery("sortOrder", "desc"), "desc") {
		order = "DESC"
	}
	query = query.Order(column + " " + order)

	var organizations []Organization
	if err := query.Find(&organizations).Error; err != nil {
		return nil, err
	}
	return organizations, nil
}

func (s *Server) listOrganizations(c *gin.Context) {
	organizations, err := s.filteredOrganizations(c)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to list organizations")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	total := len(organizations)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]gin.H, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, organizationJSON(&organizations[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta": gin.H{
			"page":            page,
			"limit":           limit,
			"total":           total,
			"totalPages":      totalPages,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

func (s *Server) getOrganization(c *gin.Context) {
	var org Organization
	if err := s.db.First(&org, "id = ?", c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Organization not found")
		return
	}
	c.JSON(http.StatusOK, envelope(organizationJSON(&org)))
}

func (s *Server) createOrganization(c *gin.Context) {
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	org := organizationFromRequest(&req)
	if err := s.db.Create(org).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create organization")
		return
	}

	c.JSON(http.StatusCreated, envelope(organizationJSON(org)))
}

func organizationFromRequest(req *OrganizationRequest) *Organization {
	org := &Organization{
		NamaInstansi:      req.NamaInstansi,
		DaerahInstansi:    req.DaerahInstansi,
		NamaOrganisasi:    req.NamaOrganisasi,
		Kontak:            req.Kontak,
		JenisOrganisasi:   req.JenisOrganisasi,
		BidangOrganisasi:  req.BidangOrganisasi,
		TahunBerdiri:      req.TahunBerdiri,
		PenjelasanSingkat: req.PenjelasanSingkat,
	}
	org.SetProker(req.Proker)
	return org
}

func (s *Server) updateOrganization(c *gin.Context) {
	var org Organization
	if err := s.db.First(&org, "id = ?", c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Organization not found")
		return
	}

	var patch OrganizationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	applyPatch(&org, &patch)
	if err := s.db.Save(&org).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update organization")
		return
	}

	c.JSON(http.StatusOK, envelope(organizationJSON(&org)))
}

func applyPatch(org *Organization, patch *OrganizationPatch) {
	if patch.NamaInstansi != nil {
		org.NamaInstansi = *patch.NamaInstansi
	}
	if patch.DaerahInstansi != nil {
		org.DaerahInstansi = *patch.DaerahInstansi
	}
	if patch.NamaOrganisasi != nil {
		org.NamaOrganisasi = *patch.NamaOrganisasi
	}
	if patch.Kontak != nil {
		org.Kontak = *patch.Kontak
	}
	if patch.JenisOrganisasi != nil {
		org.JenisOrganisasi = *patch.JenisOrganisasi
	}
	if patch.BidangOrganisasi != nil {
		org.BidangOrganisasi = *patch.BidangOrganisasi
	}
	if patch.TahunBerdiri != nil {
		org.TahunBerdiri = *patch.TahunBerdiri
	}
	if patch.PenjelasanSingkat != nil {
		org.PenjelasanSingkat = *patch.PenjelasanSingkat
	}
	if patch.Proker != nil {
		org.SetProker(*patch.Proker)
	}
}

func (s *Server) deleteOrganization(c *gin.Context) {
	result := s.db.Delete(&Organization{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete organization")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Organization not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) bulkDeleteOrganizations(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result := s.db.Delete(&Organization{}, "id IN ?", req.IDs)
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete organizations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"deletedCount": result.RowsAffected,
	})
}

func (s *Server) organizationStats(c *gin.Context) {
	var organizations []Organization
	if err := s.db.Order("created_at DESC").Find(&organizations).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	byJenis := map[string]int{}
	byBidang := map[string]int{}
	byInstansi := map[string]int{}
	for _, org := range organizations {
		byJenis[org.JenisOrganisasi]++
		byBidang[org.BidangOrganisasi]++
		byInstansi[org.NamaInstansi]++
	}

	recent := make([]gin.H, 0, 5)
	for i := 0; i < len(organizations) && i < 5; i++ {
		recent = append(recent, organizationJSON(&organizations[i]))
	}

	c.JSON(http.StatusOK, envelope(gin.H{
		"totalOrganizations":  len(organizations),
		"byJenis":             byJenis,
		"byBidang":            byBidang,
		"byInstansi":          byInstansi,
		"recentOrganizations": recent,
	}))
}

func (s *Server) filterOptions(c *gin.Context) {
	distinct := func(column string) []string {
		var values []string
		s.db.Model(&Organization{}).Distinct(column).Order(column).Pluck(column, &values)
		return values
	}

	c.JSON(http.StatusOK, envelope(gin.H{
		"namaInstansi":     distinct("nama_instansi"),
		"daerahInstansi":   distinct("daerah_instansi"),
		"jenisOrganisasi":  distinct("jenis_organisasi"),
		"bidangOrganisasi": distinct("bidang_organisasi"),
	}))
}

func (s *Server) exportCSV(c *gin.Context) {
	organizations, err := s.filteredOrganizations(c)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to export organizations")
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write(organizationCSVHeader)
	for _, org := range organizations {
		_ = writer.Write([]string{
			org.NamaInstansi, org.DaerahInstansi, org.NamaOrganisasi,
			org.Kontak, org.JenisOrganisasi, org.BidangOrganisasi,
			strconv.Itoa(org.TahunBerdiri), org.PenjelasanSingkat, org.ProkerRaw,
		})
	}
	writer.Flush()

	c.Header("Content-Disposition", `attachment; filename="organizations.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (s *Server) csvTemplate(c *gin.Context) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write(organizationCSVHeader)
	writer.Flush()

	c.Header("Content-Disposition", `attachment; filename="organizations-template.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (s *Server) importCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "Missing file upload")
		return
	}

	opened, err := file.Open()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to read upload")
		return
	}
	defer opened.Close()

	reader := csv.NewReader(opened)
	header, err := reader.Read()
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "Failed to read CSV header")
		return
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	cell := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	successCount := 0
	importErrors := make([]gin.H, 0)

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err != nil {
			break
		}

		tahun, convErr := strconv.Atoi(cell(record, "tahunBerdiri"))
		if convErr != nil {
			importErrors = append(importErrors, gin.H{
				"row": row, "field": "tahunBerdiri", "message": "must be a year",
			})
			continue
		}

		org := &Organization{
			NamaInstansi:      cell(record, "namaInstansi"),
			DaerahInstansi:    cell(record, "daerahInstansi"),
			NamaOrganisasi:    cell(record, "namaOrganisasi"),
			Kontak:            cell(record, "kontak"),
			JenisOrganisasi:   cell(record, "jenisOrganisasi"),
			BidangOrganisasi:  cell(record, "bidangOrganisasi"),
			TahunBerdiri:      tahun,
			PenjelasanSingkat: cell(record, "penjelasanSingkat"),
			ProkerRaw:         cell(record, "proker"),
		}
		if org.NamaOrganisasi == "" {
			importErrors = append(importErrors, gin.H{
				"row": row, "field": "namaOrganisasi", "message": "This field is required",
			})
			continue
		}

		if err := s.db.Create(org).Error; err != nil {
			importErrors = append(importErrors, gin.H{
				"row": row, "message": fmt.Sprintf("failed to save: %v", err),
			})
			continue
		}
		successCount++
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      len(importErrors) == 0,
		"successCount": successCount,
		"failedCount":  len(importErrors),
		"errors":       importErrors,
	})
}
