package models

// Intro types and text alignments accepted for homepage intro blocks.
const (
	IntroText      = "text"
	IntroHighlight = "highlight"
	IntroMenu      = "menu"
	IntroSlogan    = "slogan"

	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// IntroBlock is one block of homepage copy.
type IntroBlock struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
	IntroType    string `json:"intro_type"`
	TitleAlign   string `json:"title_align"`
	ContentAlign string `json:"content_align"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Contact struct {
	Phone     string `json:"phone"`
	Instagram string `json:"instagram"`
}

type Hours struct {
	Open      string `json:"open"`
	LastOrder string `json:"lastOrder"`
	Close     string `json:"close"`
}

type BusinessHours struct {
	Weekday Hours `json:"weekday"`
	Weekend Hours `json:"weekend"`
}

type Images struct {
	OgImage         string `json:"ogImage"`
	HomeLayoutImage string `json:"homeLayoutImage"`
}

// RestaurantInfo is the singleton describing the restaurant. Intro carries
// the active intro blocks when served publicly.
type RestaurantInfo struct {
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Address             Address       `json:"address"`
	Contact             Contact       `json:"contact"`
	BusinessHours       BusinessHours `json:"businessHours"`
	MobileBusinessHours string        `json:"mobileBusinessHours"`
	Intro               []IntroBlock  `json:"intro"`
	Images              Images        `json:"images"`
}
