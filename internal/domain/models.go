package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a UUID when none is set.
// Generated in the application so that both the SQLite and PostgreSQL
// backends behave identically.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ProductType identifies a coating product in the calculator
type ProductType string

const (
	ProductFloki ProductType = "floki"
	ProductGrunt ProductType = "grunt"
	ProductEmal  ProductType = "emal"
	ProductFarba ProductType = "farba"
)

// IsValid checks if the ProductType is a valid enum value
func (p ProductType) IsValid() bool {
	switch p {
	case ProductFloki, ProductGrunt, ProductEmal, ProductFarba:
		return true
	}
	return false
}

// Label returns the display label used on calculations and share messages
func (p ProductType) Label() string {
	switch p {
	case ProductFloki:
		return "ФЛОКИ"
	case ProductGrunt:
		return "ҐРУНТ"
	case ProductEmal:
		return "ЕМАЛЬ"
	case ProductFarba:
		return "ФАРБА"
	}
	return string(p)
}

// LacType selects the finishing lacquer for floki coatings
type LacType string

const (
	LacGlossy LacType = "glossy"
	LacMatte  LacType = "matte"
)

// IsValid checks if the LacType is a valid enum value
func (l LacType) IsValid() bool {
	return l == LacGlossy || l == LacMatte
}

// ProposalStatus represents the status of a commercial proposal.
// Transitions are deliberately unconstrained: any status may be set
// from any other.
type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "draft"
	ProposalStatusSent      ProposalStatus = "sent"
	ProposalStatusPaid      ProposalStatus = "paid"
	ProposalStatusCancelled ProposalStatus = "cancelled"
)

// IsValid checks if the ProposalStatus is a valid enum value
func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusSent, ProposalStatusPaid, ProposalStatusCancelled:
		return true
	}
	return false
}

// PhotosPosition controls where the photo gallery is requested to appear
// relative to the room tables in the composed document.
type PhotosPosition string

const (
	PhotosStart PhotosPosition = "start"
	PhotosEnd   PhotosPosition = "end"
	PhotosBoth  PhotosPosition = "both"
)

// IsValid checks if the PhotosPosition is a valid enum value
func (p PhotosPosition) IsValid() bool {
	return p == PhotosStart || p == PhotosEnd || p == PhotosBoth
}

// ShareTarget identifies an external messenger for share links
type ShareTarget string

const (
	ShareTelegram ShareTarget = "telegram"
	ShareViber    ShareTarget = "viber"
	ShareWhatsApp ShareTarget = "whatsapp"
)

// IsValid checks if the ShareTarget is a valid enum value
func (t ShareTarget) IsValid() bool {
	return t == ShareTelegram || t == ShareViber || t == ShareWhatsApp
}

// CalculationItem is one computed material line of a saved calculation
type CalculationItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	PricePerKg float64 `json:"pricePerKg"`
	Total      float64 `json:"total"`
}

// Calculation is a saved calculator result. Items and total are frozen
// at save time; later price changes in settings do not rewrite them.
type Calculation struct {
	BaseModel
	ClientName    string            `gorm:"type:varchar(200);not null;default:''"`
	ProductType   ProductType       `gorm:"type:varchar(20);not null;index;column:product_type"`
	LacType       *LacType          `gorm:"type:varchar(20);column:lac_type"`
	Area          float64           `gorm:"not null"`
	Date          string            `gorm:"type:varchar(20);not null"`
	Source        string            `gorm:"type:varchar(200)"`
	Total         float64           `gorm:"not null"`
	IncludedInSum bool              `gorm:"not null;default:true;column:included_in_sum;index"`
	Items         []CalculationItem `gorm:"serializer:json"`
}

// Material is one coating product line within a room
type Material struct {
	BaseModel
	RoomID      uuid.UUID `gorm:"type:uuid;not null;index;column:room_id"`
	Name        string    `gorm:"type:varchar(300);not null"`
	Consumption float64   `gorm:"not null"` // kg per m² per layer
	Layers      int       `gorm:"not null;default:1"`
	PricePerKg  float64   `gorm:"not null;column:price_per_kg"`
	Position    int       `gorm:"not null;default:0"`
}

// Room is an area within a proposal with its own material list
type Room struct {
	BaseModel
	ProposalID uuid.UUID  `gorm:"type:uuid;not null;index;column:proposal_id"`
	Name       string     `gorm:"type:varchar(200);not null"`
	Area       float64    `gorm:"not null"`
	Position   int        `gorm:"not null;default:0"`
	Materials  []Material `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// CompanyDetails is the requisites block printed in the proposal header
type CompanyDetails struct {
	Name      string `json:"name"`
	Phones    string `json:"phones"`
	Address   string `json:"address"`
	EDRPOU    string `json:"edrpou"`
	IPN       string `json:"ipn"`
	IBAN      string `json:"iban"`
	Bank      string `json:"bank"`
	VATNumber string `json:"vatNumber"`
}

// TechnicalParam is one param/value pair of the technical parameters table
type TechnicalParam struct {
	Param string `json:"param"`
	Value string `json:"value"`
}

// ManagerContact is the signature/footer contact of a proposal
type ManagerContact struct {
	Position string `json:"position"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// Proposal is a commercial proposal (KP) covering one or more rooms.
//
// Total is derived: it is recomputed from rooms, the VAT flag and the
// discount on every write, never trusted from the client. Photos hold
// weak references into the photo library; a deleted photo leaves a
// dangling id that readers must skip.
type Proposal struct {
	BaseModel
	Name            string           `gorm:"type:varchar(200);not null;default:''"`
	Client          string           `gorm:"type:varchar(200);not null;default:''"`
	Location        string           `gorm:"type:varchar(200)"`
	Date            string           `gorm:"type:varchar(20);not null"`
	Status          ProposalStatus   `gorm:"type:varchar(20);not null;default:'draft';index"`
	Currency        string           `gorm:"type:varchar(10);not null;default:'UAH'"`
	VATEnabled      bool             `gorm:"not null;default:true;column:vat_enabled"`
	Discount        float64          `gorm:"not null;default:0"` // percent, 0-100
	ProductionTime  string           `gorm:"type:varchar(300);column:production_time"`
	Warranty        string           `gorm:"type:varchar(300)"`
	Rooms           []Room           `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	CompanyDetails  CompanyDetails   `gorm:"serializer:json;column:company_details"`
	Description     string           `gorm:"type:text"`
	Advantages      []string         `gorm:"serializer:json"`
	TechnicalParams []TechnicalParam `gorm:"serializer:json;column:technical_params"`
	ManagerContact  ManagerContact   `gorm:"serializer:json;column:manager_contact"`
	PhotoIDs        []uuid.UUID      `gorm:"serializer:json;column:photo_ids"` // max 3, weak references
	PhotosPosition  PhotosPosition   `gorm:"type:varchar(10);not null;default:'end';column:photos_position"`
	Total           float64          `gorm:"not null;default:0"`
}

// Document is a write-once snapshot created from the calculator or a
// proposal. Content is opaque; nothing is ever recomputed from it.
type Document struct {
	BaseModel
	Name    string  `gorm:"type:varchar(300);not null"`
	Type    string  `gorm:"type:varchar(100);not null"`
	Area    float64 `gorm:"not null;default:0"`
	Date    string  `gorm:"type:varchar(40);not null"`
	Content string  `gorm:"type:text"`
}

// Photo is a photo library entry. The binary image and its thumbnail
// live in file storage; the row only carries metadata and paths.
type Photo struct {
	BaseModel
	Name          string `gorm:"type:varchar(300);not null"`
	ContentType   string `gorm:"type:varchar(100);not null;column:content_type"`
	Size          int64  `gorm:"not null"`
	StoragePath   string `gorm:"type:varchar(500);not null;column:storage_path"`
	ThumbnailPath string `gorm:"type:varchar(500);not null;column:thumbnail_path"`
}

// PriceSettings holds the per-kg unit prices used by the calculator
type PriceSettings struct {
	Gruntivka float64 `json:"gruntivka"`
	Farba     float64 `json:"farba"`
	Emal      float64 `json:"emal"`
	Floki     float64 `json:"floki"`
	LacGlossy float64 `json:"lacGlossy"`
	LacMatte  float64 `json:"lacMatte"`
}

// Settings is the application-wide settings singleton. Exactly one row
// exists; reads fall back to DefaultSettings when the row is absent.
type Settings struct {
	ID          int           `gorm:"primaryKey"`
	CompanyName string        `gorm:"type:varchar(200);not null;column:company_name"`
	Currency    string        `gorm:"type:varchar(10);not null"`
	Units       string        `gorm:"type:varchar(10);not null"`
	Prices      PriceSettings `gorm:"serializer:json"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// SettingsRowID is the fixed primary key of the settings singleton row
const SettingsRowID = 1

// DefaultSettings returns the factory settings used when no settings
// row has been persisted yet.
func DefaultSettings() Settings {
	return Settings{
		ID:          SettingsRowID,
		CompanyName: "PoliBest 911",
		Currency:    "UAH",
		Units:       "m²",
		Prices: PriceSettings{
			Gruntivka: 864,
			Farba:     1188,
			Emal:      1512,
			Floki:     1620,
			LacGlossy: 1728,
			LacMatte:  2160,
		},
	}
}

// DefaultCompanyDetails returns the requisites preset for new proposals
func DefaultCompanyDetails() CompanyDetails {
	return CompanyDetails{
		Name:      "ТОВ «ВедеВперед»",
		Phones:    "067-402-11-17, 093-512-58-38",
		Address:   "03195, м. Київ, пров. Павла Ле, буд. 21",
		EDRPOU:    "41842552",
		IPN:       "418425526506",
		IBAN:      "UA623052990000260000362068860",
		Bank:      "Печерська філія ПАТ КБ \"ПРИВАТБАНК\", м.Київ МФО 300711",
		VATNumber: "1826504500200",
	}
}

// DefaultAdvantages returns the advantages preset for new proposals
func DefaultAdvantages() []string {
	return []string{
		"Безпечне та екологічне: без шкідливих домішок, можна використовувати в житлових приміщеннях",
		"Глибоко проникаюче: 3-7 мм в бетон, що забезпечує надійну адгезію",
		"Стійке до навантажень: витримує вилочні навантажувачі та важку техніку",
		"Паропроникне: немає ефекту відшарування покриття",
		"Легке в догляді: миється звичайними засобами для підлоги",
		"Хімічна стійкість: до масел, бензину, кислот та лугів",
		"Естетичний вигляд: широкий вибір кольорів",
		"Довговічність: термін служби 15-25 років",
	}
}

// DefaultTechnicalParams returns the technical parameters preset for new proposals
func DefaultTechnicalParams() []TechnicalParam {
	return []TechnicalParam{
		{Param: "Тип", Value: "Двокомпонентні"},
		{Param: "Колір", Value: "Сірий, зелений"},
		{Param: "Термін служби в змішаному стані", Value: "40 хвилин (+20°C)"},
		{Param: "Температура нанесення", Value: "+10...+30°C"},
		{Param: "Товщина шару", Value: "0.3-0.5 мм"},
		{Param: "Повна полімеризація", Value: "7 діб"},
		{Param: "Термін служби", Value: "15-25 років"},
	}
}

// DefaultManagerContact returns the signature preset for new proposals
func DefaultManagerContact() ManagerContact {
	return ManagerContact{
		Position: "Менеджер",
		Phone:    "073-485-92-09",
	}
}

// Material name presets offered by the proposal editor
const (
	MaterialNameGruntivka = "PoliBest 911 ґрунтівка (захисна епоксидна глибокопроникна)"
	MaterialNameEmal      = "PoliBest 911 (захисна епоксидна емаль, колір за погодженням)"
	MaterialNameFloki     = "PoliBest 911 флоки (декоративне покриття)"
	MaterialNameLac       = "PoliBest 911 лак (захисний фінішний шар)"
)

// MaxProposalPhotos caps how many library photos a proposal may reference
const MaxProposalPhotos = 3
