package mockapi

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and an auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Account is a registered user of the mock backend
type Account struct {
	BaseModel
	Email         string `json:"email" gorm:"not null;unique"`
	Username      string `json:"username" gorm:"not null;unique"`
	PasswordHash  string `json:"-" gorm:"not null"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Role          string `json:"role" gorm:"not null;default:user"`
	Status        string `json:"status" gorm:"not null;default:active"`
	EmailVerified bool   `json:"emailVerified" gorm:"not null;default:false"`
	LastLoginAt   *time.Time `json:"lastLoginAt"`
}

// RefreshToken is an issued refresh token; expired rows are swept
// periodically
type RefreshToken struct {
	BaseModel
	Token     string    `json:"-" gorm:"not null;unique"`
	AccountID string    `json:"-" gorm:"not null"`
	ExpiresAt time.Time `json:"-" gorm:"not null"`
}

// Organization is a campus organization record
type Organization struct {
	BaseModel
	NamaInstansi      string `json:"namaInstansi" gorm:"not null"`
	DaerahInstansi    string `json:"daerahInstansi" gorm:"not null"`
	NamaOrganisasi    string `json:"namaOrganisasi" gorm:"not null"`
	Kontak            string `json:"kontak" gorm:"not null"`
	JenisOrganisasi   string `json:"jenisOrganisasi" gorm:"not null"`
	BidangOrganisasi  string `json:"bidangOrganisasi" gorm:"not null"`
	TahunBerdiri      int    `json:"tahunBerdiri" gorm:"not null"`
	PenjelasanSingkat string `json:"penjelasanSingkat"`
	// Program kerja entries, stored ";"-joined
	ProkerRaw string `json:"-" gorm:"column:proker"`
}

// Proker splits the stored program-kerja list.
func (o *Organization) Proker() []string {
	if o.ProkerRaw == "" {
		return nil
	}
	return strings.Split(o.ProkerRaw, ";")
}

// SetProker joins and stores the program-kerja list.
func (o *Organization) SetProker(proker []string) {
	o.ProkerRaw = strings.Join(proker, ";")
}
