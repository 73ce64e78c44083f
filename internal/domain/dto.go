package domain

import (
	"github.com/google/uuid"
)

// SettingsDTO mirrors the settings singleton for API responses
type SettingsDTO struct {
	CompanyName string        `json:"companyName"`
	Currency    string        `json:"currency"`
	Units       string        `json:"units"`
	Prices      PriceSettings `json:"prices"`
	UpdatedAt   string        `json:"updatedAt,omitempty"` // ISO 8601
}

// UpdateSettingsRequest carries a partial settings update. Nil fields
// keep their current values; the prices block is replaced wholesale
// when present.
type UpdateSettingsRequest struct {
	CompanyName *string        `json:"companyName,omitempty" validate:"omitempty,max=200"`
	Currency    *string        `json:"currency,omitempty" validate:"omitempty,max=10"`
	Units       *string        `json:"units,omitempty" validate:"omitempty,max=10"`
	Prices      *PriceSettings `json:"prices,omitempty"`
}

// PriceRequest is the calculator input
type PriceRequest struct {
	ProductType ProductType `json:"productType" validate:"required,oneof=floki grunt emal farba"`
	LacType     LacType     `json:"lacType,omitempty" validate:"omitempty,oneof=glossy matte"`
	Area        float64     `json:"area" validate:"required,gt=0"`
}

// PriceLineDTO is one computed material line
type PriceLineDTO struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	PricePerKg float64 `json:"pricePerKg"`
	Total      float64 `json:"total"`
}

// PriceResultDTO is the calculator output
type PriceResultDTO struct {
	Items      []PriceLineDTO `json:"items"`
	Total      float64        `json:"total"`
	PricePerM2 float64        `json:"pricePerM2"`
	Currency   string         `json:"currency"`
}

// CreateCalculationRequest saves a calculator result. Items and total
// are recomputed server side from the current settings prices.
type CreateCalculationRequest struct {
	ClientName  string      `json:"clientName" validate:"max=200"`
	ProductType ProductType `json:"productType" validate:"required,oneof=floki grunt emal farba"`
	LacType     LacType     `json:"lacType,omitempty" validate:"omitempty,oneof=glossy matte"`
	Area        float64     `json:"area" validate:"required,gt=0"`
	Date        string      `json:"date" validate:"omitempty,max=20"`
	Source      string      `json:"source" validate:"max=200"`
}

// UpdateCalculationRequest is a partial update of a stored calculation.
// Computed items and total are immutable here; only descriptive fields
// and the inclusion flag may change.
type UpdateCalculationRequest struct {
	ClientName    *string `json:"clientName,omitempty" validate:"omitempty,max=200"`
	Date          *string `json:"date,omitempty" validate:"omitempty,max=20"`
	Source        *string `json:"source,omitempty" validate:"omitempty,max=200"`
	IncludedInSum *bool   `json:"includedInSum,omitempty"`
}

// CalculationDTO mirrors a stored calculation
type CalculationDTO struct {
	ID            uuid.UUID         `json:"id"`
	ClientName    string            `json:"clientName"`
	ProductType   ProductType       `json:"productType"`
	ProductLabel  string            `json:"productLabel"`
	LacType       *LacType          `json:"lacType,omitempty"`
	Area          float64           `json:"area"`
	Date          string            `json:"date"`
	Source        string            `json:"source,omitempty"`
	Total         float64           `json:"total"`
	IncludedInSum bool              `json:"includedInSum"`
	Items         []CalculationItem `json:"items"`
	CreatedAt     string            `json:"createdAt"` // ISO 8601
}

// CalculationsSummaryDTO is the running total over included calculations
type CalculationsSummaryDTO struct {
	Total         float64 `json:"total"`
	IncludedCount int     `json:"includedCount"`
	TotalCount    int     `json:"totalCount"`
	Currency      string  `json:"currency"`
}

// MaterialInput is one material line in a proposal write request
type MaterialInput struct {
	Name        string  `json:"name" validate:"required,max=300"`
	Consumption float64 `json:"consumption" validate:"required,gt=0"`
	Layers      int     `json:"layers" validate:"required,gte=1"`
	PricePerKg  float64 `json:"pricePerKg" validate:"gte=0"`
}

// RoomInput is one room in a proposal write request
type RoomInput struct {
	Name      string          `json:"name" validate:"required,max=200"`
	Area      float64         `json:"area" validate:"required,gt=0"`
	Materials []MaterialInput `json:"materials" validate:"dive"`
}

// CreateProposalRequest creates a proposal. Every field is optional;
// omitted fields are filled from the default scaffold.
type CreateProposalRequest struct {
	Name   string `json:"name" validate:"max=200"`
	Client string `json:"client" validate:"max=200"`
}

// UpdateProposalRequest replaces the editable state of a proposal.
// The cached total is ignored on input and recomputed.
type UpdateProposalRequest struct {
	Name            string           `json:"name" validate:"max=200"`
	Client          string           `json:"client" validate:"max=200"`
	Location        string           `json:"location" validate:"max=200"`
	Date            string           `json:"date" validate:"omitempty,max=20"`
	Currency        string           `json:"currency" validate:"omitempty,max=10"`
	VATEnabled      bool             `json:"vatEnabled"`
	Discount        float64          `json:"discount" validate:"gte=0,lte=100"`
	ProductionTime  string           `json:"productionTime" validate:"max=300"`
	Warranty        string           `json:"warranty" validate:"max=300"`
	Rooms           []RoomInput      `json:"rooms" validate:"required,min=1,dive"`
	CompanyDetails  CompanyDetails   `json:"companyDetails"`
	Description     string           `json:"description"`
	Advantages      []string         `json:"advantages"`
	TechnicalParams []TechnicalParam `json:"technicalParams"`
	ManagerContact  ManagerContact   `json:"managerContact"`
	PhotoIDs        []uuid.UUID      `json:"photoIds" validate:"max=3"`
	PhotosPosition  PhotosPosition   `json:"photosPosition" validate:"omitempty,oneof=start end both"`
}

// UpdateProposalStatusRequest sets a proposal status. Any status may be
// set from any other; there is no enforced transition graph.
type UpdateProposalStatusRequest struct {
	Status ProposalStatus `json:"status" validate:"required,oneof=draft sent paid cancelled"`
}

// MaterialDTO mirrors a stored material line
type MaterialDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Consumption float64   `json:"consumption"`
	Layers      int       `json:"layers"`
	PricePerKg  float64   `json:"pricePerKg"`
}

// RoomDTO mirrors a stored room
type RoomDTO struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Area      float64       `json:"area"`
	Materials []MaterialDTO `json:"materials"`
}

// ProposalDTO mirrors a stored proposal
type ProposalDTO struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Client          string           `json:"client"`
	Location        string           `json:"location,omitempty"`
	Date            string           `json:"date"`
	Status          ProposalStatus   `json:"status"`
	Currency        string           `json:"currency"`
	VATEnabled      bool             `json:"vatEnabled"`
	Discount        float64          `json:"discount"`
	ProductionTime  string           `json:"productionTime,omitempty"`
	Warranty        string           `json:"warranty,omitempty"`
	Rooms           []RoomDTO        `json:"rooms"`
	CompanyDetails  CompanyDetails   `json:"companyDetails"`
	Description     string           `json:"description,omitempty"`
	Advantages      []string         `json:"advantages"`
	TechnicalParams []TechnicalParam `json:"technicalParams"`
	ManagerContact  ManagerContact   `json:"managerContact"`
	PhotoIDs        []uuid.UUID      `json:"photoIds"`
	PhotosPosition  PhotosPosition   `json:"photosPosition"`
	Total           float64          `json:"total"`
	CreatedAt       string           `json:"createdAt"` // ISO 8601
	UpdatedAt       string           `json:"updatedAt"` // ISO 8601
}

// CreateDocumentRequest creates a write-once document snapshot
type CreateDocumentRequest struct {
	Name    string  `json:"name" validate:"required,max=300"`
	Type    string  `json:"type" validate:"required,max=100"`
	Area    float64 `json:"area" validate:"gte=0"`
	Content string  `json:"content"`
}

// DocumentDTO mirrors a stored document
type DocumentDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Area      float64   `json:"area"`
	Date      string    `json:"date"`
	Content   string    `json:"content,omitempty"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
}

// PhotoDTO mirrors a photo library entry
type PhotoDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	DateAdded    string    `json:"dateAdded"` // ISO 8601
}

// PhotoRejectionDTO describes one rejected file of an upload batch
type PhotoRejectionDTO struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// PhotoUploadResultDTO is the outcome of a multi-file upload. A
// rejected file never aborts the batch; accepted and rejected entries
// are reported side by side.
type PhotoUploadResultDTO struct {
	Uploaded []PhotoDTO          `json:"uploaded"`
	Rejected []PhotoRejectionDTO `json:"rejected"`
}

// ShareLinkDTO is a messenger deep link with its plain-text payload
type ShareLinkDTO struct {
	Target ShareTarget `json:"target"`
	URL    string      `json:"url"`
	Text   string      `json:"text"`
}

// PaginatedResponse wraps list results with paging metadata
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// NewPaginatedResponse builds the wrapper, deriving the page count
func NewPaginatedResponse(data interface{}, total int64, page, pageSize int) PaginatedResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// DashboardMetricsDTO aggregates counts for the dashboard view
type DashboardMetricsDTO struct {
	Calculations       int64            `json:"calculations"`
	Proposals          int64            `json:"proposals"`
	Documents          int64            `json:"documents"`
	Photos             int64            `json:"photos"`
	RunningTotal       float64          `json:"runningTotal"`
	Currency           string           `json:"currency"`
	RecentCalculations []CalculationDTO `json:"recentCalculations"`
	RecentProposals    []ProposalDTO    `json:"recentProposals"`
}
