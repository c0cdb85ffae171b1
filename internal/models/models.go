package models

import "strconv"

// Artwork is a single record from the artworks collection
type Artwork struct {
	Title         string `json:"title" yaml:"title" parquet:"title"`
	PlaceOfOrigin string `json:"place_of_origin" yaml:"place_of_origin" parquet:"place_of_origin"`
	ArtistDisplay string `json:"artist_display" yaml:"artist_display" parquet:"artist_display"`
	Inscriptions  string `json:"inscriptions" yaml:"inscriptions" parquet:"inscriptions"`
	DateStart     int    `json:"date_start" yaml:"date_start" parquet:"date_start"`
	DateEnd       int    `json:"date_end" yaml:"date_end" parquet:"date_end"`
}

// Fields lists the remote field names backing Artwork, in column order
var Fields = []string{
	"title",
	"place_of_origin",
	"artist_display",
	"inscriptions",
	"date_start",
	"date_end",
}

// Column describes one rendered data column
type Column struct {
	Field  string
	Header string
	Width  string
}

// Columns are the six data columns shown next to the selection checkbox
var Columns = []Column{
	{Field: "title", Header: "Title", Width: "20%"},
	{Field: "place_of_origin", Header: "Place of Origin", Width: "20%"},
	{Field: "artist_display", Header: "Artist", Width: "20%"},
	{Field: "inscriptions", Header: "Inscriptions", Width: "20%"},
	{Field: "date_start", Header: "Start Date", Width: "10%"},
	{Field: "date_end", Header: "End Date", Width: "10%"},
}

// Pagination is the paging block returned alongside a page of artworks
type Pagination struct {
	Total       int `json:"total" yaml:"total"`
	Limit       int `json:"limit" yaml:"limit"`
	Offset      int `json:"offset" yaml:"offset"`
	TotalPages  int `json:"total_pages" yaml:"total_pages"`
	CurrentPage int `json:"current_page" yaml:"current_page"`
}

// Page is one fetched page of artworks
type Page struct {
	Data       []Artwork  `json:"data" yaml:"data"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// Value returns the display text of a column field, or "" for unknown fields
func (a *Artwork) Value(field string) string {
	switch field {
	case "title":
		return a.Title
	case "place_of_origin":
		return a.PlaceOfOrigin
	case "artist_display":
		return a.ArtistDisplay
	case "inscriptions":
		return a.Inscriptions
	case "date_start":
		return strconv.Itoa(a.DateStart)
	case "date_end":
		return strconv.Itoa(a.DateEnd)
	}
	return ""
}
