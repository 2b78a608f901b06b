// Package model defines the core domain types for the URGE export portal.
package model

import "time"

// DateLayout is the wire format of Event.Date.
const DateLayout = "2006-01-02"

// Category is the fixed set of event kinds shown in the catalogue.
type Category string

const (
	CategoryTraining   Category = "Eğitim"
	CategoryConsulting Category = "Danışmanlık"
	CategoryActivity   Category = "Etkinlik"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTraining, CategoryConsulting, CategoryActivity:
		return true
	}
	return false
}

// DocumentKind classifies a downloadable event document.
type DocumentKind string

const (
	DocumentPDF   DocumentKind = "pdf"
	DocumentPPTX  DocumentKind = "pptx"
	DocumentDOCX  DocumentKind = "docx"
	DocumentOther DocumentKind = "other"
)

// Document is a file attached to an event.
type Document struct {
	Name string       `json:"name" yaml:"name"`
	URL  string       `json:"url" yaml:"url"`
	Kind DocumentKind `json:"type" yaml:"type"`
	Size string       `json:"size" yaml:"size"`
}

// Event is a catalogue entry. Date is kept as the ISO calendar string it was
// entered with; see calendar.ParseDate for how it is interpreted.
type Event struct {
	ID               string     `json:"id" yaml:"id"`
	Title            string     `json:"title" yaml:"title"`
	Date             string     `json:"date" yaml:"date"`
	Time             string     `json:"time" yaml:"time"`
	Location         string     `json:"location" yaml:"location"`
	Description      string     `json:"description" yaml:"description"`
	DetailedContent  string     `json:"detailed_content" yaml:"detailed_content"`
	Category         Category   `json:"type" yaml:"type"`
	Image            string     `json:"image" yaml:"image"`
	Gallery          []string   `json:"gallery" yaml:"gallery"`
	Documents        []Document `json:"documents" yaml:"documents"`
	Capacity         int        `json:"capacity" yaml:"capacity"`
	RegisteredCount  int        `json:"registered_count" yaml:"registered_count"`
	KeyTakeaways     []string   `json:"key_takeaways" yaml:"key_takeaways"`
	OrganizerContact string     `json:"organizer_contact" yaml:"organizer_contact"`
	CreatedAt        time.Time  `json:"created_at" yaml:"-"`
}

// Remaining returns the number of open seats. It may be negative because
// capacity is advisory.
func (e *Event) Remaining() int {
	return e.Capacity - e.RegisteredCount
}

// IsFull returns true when no seats remain.
func (e *Event) IsFull() bool {
	return e.RegisteredCount >= e.Capacity
}

// Registration is a participant sign-up for an event.
type Registration struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	FullName    string    `json:"full_name"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompanyStats are the headline numbers shown on a company card.
type CompanyStats struct {
	Founded         int `json:"founded" yaml:"founded"`
	Employees       int `json:"employees" yaml:"employees"`
	ExportCountries int `json:"export_countries" yaml:"export_countries"`
}

// Company is a member of the export cluster directory.
type Company struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Type        string       `json:"type" yaml:"type"`
	Color       string       `json:"color" yaml:"color"`
	Description string       `json:"description" yaml:"description"`
	Website     string       `json:"website" yaml:"website"`
	Email       string       `json:"email" yaml:"email"`
	Phone       string       `json:"phone" yaml:"phone"`
	Stats       CompanyStats `json:"stats" yaml:"stats"`
	Products    []string     `json:"products" yaml:"products"`
}

// CalendarCell is one square of a month grid. Blank cells pad the first week
// and carry Day == 0.
type CalendarCell struct {
	Blank   bool    `json:"blank"`
	Day     int     `json:"day,omitempty"`
	IsToday bool    `json:"is_today,omitempty"`
	Events  []Event `json:"events,omitempty"`
}

// Tab names a section of the event detail page.
type Tab string

const (
	TabInfo         Tab = "info"
	TabGallery      Tab = "gallery"
	TabRegister     Tab = "register"
	TabFiles        Tab = "files"
	TabParticipants Tab = "participants"
)

// DetailTabs returns the tabs visible on the event detail page.
func DetailTabs(isAdmin bool) []Tab {
	tabs := []Tab{TabInfo, TabGallery, TabRegister, TabFiles}
	if isAdmin {
		tabs = append(tabs, TabParticipants)
	}
	return tabs
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Date             string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time             string   `json:"time" validate:"max=100"`
	Location         string   `json:"location" validate:"max=200"`
	Category         Category `json:"type" validate:"required,category"`
	DetailedContent  string   `json:"detailed_content"`
	Image            string   `json:"image"`
	Takeaways        string   `json:"takeaways"`
	OrganizerContact string   `json:"organizer_contact" validate:"max=200"`
	Capacity         int      `json:"capacity" validate:"gte=0,lte=100000"`
}

// RegisterRequest is the payload for registering for an event.
type RegisterRequest struct {
	FullName    string `json:"full_name" validate:"required,max=200"`
	CompanyName string `json:"company_name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
}

// LoginRequest is the admin sign-in payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DescriptionRequest asks the content assistant for an event description.
type DescriptionRequest struct {
	Title string `json:"title" validate:"required"`
	Notes string `json:"notes" validate:"required"`
}

// ImageRequest asks the content assistant for a cover image.
type ImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// DescriptionResponse carries generated description text.
type DescriptionResponse struct {
	Text string `json:"text"`
}

// ImageResponse carries a generated image as a data URI, or "" on failure.
type ImageResponse struct {
	Image string `json:"image"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
