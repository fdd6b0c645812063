package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Incident categories.
const (
	CategoryCalleRota    = "calle_rota"
	CategoryLuzCallejera = "luz_callejera"
	CategoryOtro         = "otro"
)

// Incident lifecycle states: reportado → en_reparacion → solucionado.
// The engine imposes no forward-only constraint; an admin may jump or move
// backward, and ResolvedAt is never cleared once stamped.
const (
	StatusReportado    = "reportado"
	StatusEnReparacion = "en_reparacion"
	StatusSolucionado  = "solucionado"
)

// Priorities.
const (
	PriorityBaja  = "baja"
	PriorityMedia = "media"
	PriorityAlta  = "alta"
)

func ValidCategory(c string) bool {
	return c == CategoryCalleRota || c == CategoryLuzCallejera || c == CategoryOtro
}

func ValidStatus(s string) bool {
	return s == StatusReportado || s == StatusEnReparacion || s == StatusSolucionado
}

func ValidPriority(p string) bool {
	return p == PriorityBaja || p == PriorityMedia || p == PriorityAlta
}

// Incident is a reported civic defect. The owning user reference is immutable
// after creation; mutation authority is decided by the policy table, not here.
type Incident struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category    string          `gorm:"type:varchar(20);index;not null"`
	Description string          `gorm:"type:text;not null"`
	Latitude    decimal.Decimal `gorm:"type:decimal(10,8);not null"`
	Longitude   decimal.Decimal `gorm:"type:decimal(11,8);not null"`
	Address     *string         `gorm:"size:255"`
	Status      string          `gorm:"type:varchar(20);index;not null;default:'reportado'"`
	Priority    string          `gorm:"type:varchar(10);not null;default:'media'"`
	AdminNotes  *string         `gorm:"type:text"`
	ResolvedAt  *time.Time
	ImageURL    *string   `gorm:"size:500"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Reporter *User `gorm:"foreignKey:UserID"`
}
