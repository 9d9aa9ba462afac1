package mockapi

import (
	"golang.org/x/crypto/bcrypt"
)

// seed populates the database with a demo admin account and a handful of
// organizations so the CLI is usable out of the box. It is a no-op when
// accounts already exist.
func (s *Server) seed() error {
	var count int64
	if err := s.db.Model(&Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte("user12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	accounts := []Account{
		{
			Email:         "admin@kurakampus.id",
			Username:      "admin",
			PasswordHash:  string(adminHash),
			FirstName:     "Demo",
			LastName:      "Admin",
			Role:          "admin",
			Status:        "active",
			EmailVerified: true,
		},
		{
			Email:         "member@kurakampus.id",
			Username:      "member",
			PasswordHash:  string(userHash),
			FirstName:     "Demo",
			LastName:      "Member",
			Role:          "user",
			Status:        "active",
			EmailVerified: true,
		},
	}
	if err := s.db.Create(&accounts).Error; err != nil {
		return err
	}

	orgs := []Organization{
		{
			NamaInstansi:      "Universitas Gadjah Mada",
			DaerahInstansi:    "Yogyakarta",
			NamaOrganisasi:    "Himpunan Mahasiswa Informatika",
			Kontak:            "hmif@ugm.ac.id",
			JenisOrganisasi:   "Himpunan",
			BidangOrganisasi:  "Teknologi",
			TahunBerdiri:      1995,
			PenjelasanSingkat: "Himpunan mahasiswa program studi informatika.",
		},
		{
			NamaInstansi:      "Institut Teknologi Bandung",
			DaerahInstansi:    "Bandung",
			NamaOrganisasi:    "Unit Robotika ITB",
			Kontak:            "robotika@itb.ac.id",
			JenisOrganisasi:   "UKM",
			BidangOrganisasi:  "Teknologi",
			TahunBerdiri:      2004,
			PenjelasanSingkat: "Unit kegiatan mahasiswa bidang robotika dan otomasi.",
		},
		{
			NamaInstansi:      "Universitas Indonesia",
			DaerahInstansi:    "Depok",
			NamaOrganisasi:    "Paduan Suara Paragita",
			Kontak:            "paragita@ui.ac.id",
			JenisOrganisasi:   "UKM",
			BidangOrganisasi:  "Seni",
			TahunBerdiri:      1983,
			PenjelasanSingkat: "Paduan suara mahasiswa tingkat universitas.",
		},
	}
	orgs[0].SetProker([]string{"Pelatihan pemrograman", "Study club mingguan", "Lomba internal"})
	orgs[1].SetProker([]string{"Kontes robot nasional", "Workshop elektronika"})
	orgs[2].SetProker([]string{"Konser tahunan", "Kompetisi internasional"})

	if err := s.db.Create(&orgs).Error; err != nil {
		return err
	}

	s.logger.Info().
		Int("accounts", len(accounts)).
		Int("organizations", len(orgs)).
		Msg("seeded demo data")
	return nil
}
