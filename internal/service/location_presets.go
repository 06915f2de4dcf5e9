package service

import (
	"errors"
	"strings"
)

var ErrUnknownLocation = errors.New("unknown location")

// Location kinds.
const (
	LocationCountry = "country"
	LocationCity    = "city"
)

// LocationPreset is a named set of location variables used as a render-scoped
// override layer.
type LocationPreset struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
	Country     string `json:"country"`
	City        string `json:"city"`
	CityCode    string `json:"cityCode"`
	MetroArea   string `json:"metroArea"`
	Region      string `json:"region"`
	Currency    string `json:"currency"`
	Timezone    string `json:"timezone"`
	Language    string `json:"language"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type locationSite struct {
	country, city, cityCode, metro, region, currency, timezone, language, phone, email, address string
}

var (
	siteUS = locationSite{"United States", "New York", "NYC", "Greater New York Area", "North America", "$", "EST", "English", "+1-800-555-0123", "info.us@invensislearning.com", "123 Business Ave, New York, NY 10001"}
	siteUK = locationSite{"United Kingdom", "London", "LON", "Greater London", "Europe", "£", "GMT", "English", "+44-20-7946-0958", "info.uk@invensislearning.com", "456 Training Street, London, EC1A 1BB"}
	siteCA = locationSite{"Canada", "Toronto", "TOR", "Greater Toronto Area", "North America", "C$", "EST", "English", "+1-416-555-0199", "info.ca@invensislearning.com", "200 Bay Street, Toronto, ON M5J 2J2"}
	siteAU = locationSite{"Australia", "Sydney", "SYD", "Greater Sydney", "Oceania", "A$", "AEST", "English", "+61-2-5550-1234", "info.au@invensislearning.com", "1 Martin Place, Sydney NSW 2000"}
	siteDE = locationSite{"Germany", "Berlin", "BER", "Berlin-Brandenburg", "Europe", "€", "CET", "German", "+49-30-5555-0123", "info.de@invensislearning.com", "Friedrichstraße 68, 10117 Berlin"}
	siteFR = locationSite{"France", "Paris", "PAR", "Île-de-France", "Europe", "€", "CET", "French", "+33-1-5555-0123", "info.fr@invensislearning.com", "25 Avenue de l'Opéra, 75001 Paris"}
	siteIN = locationSite{"India", "Mumbai", "BOM", "Mumbai Metropolitan Region", "Asia", "₹", "IST", "English", "+91-22-5555-0100", "info.in@invensislearning.com", "Bandra Kurla Complex, Mumbai 400051"}
	siteSG = locationSite{"Singapore", "Singapore", "SIN", "Central Region", "Asia", "S$", "SGT", "English", "+65-6555-0123", "info.sg@invensislearning.com", "1 Raffles Place, Singapore 048616"}
	siteJP = locationSite{"Japan", "Tokyo", "TYO", "Greater Tokyo Area", "Asia", "¥", "JST", "Japanese", "+81-3-5555-0123", "info.jp@invensislearning.com", "2-7-2 Marunouchi, Chiyoda-ku, Tokyo 100-0005"}
	siteNL = locationSite{"Netherlands", "Amsterdam", "AMS", "Amsterdam Metropolitan Area", "Europe", "€", "CET", "Dutch", "+31-20-555-0123", "info.nl@invensislearning.com", "Gustav Mahlerplein 2, 1082 MA Amsterdam"}
)

var locationPresets = []LocationPreset{
	siteUS.preset(LocationCountry, "United States", "United States"),
	siteUK.preset(LocationCountry, "United Kingdom", "United Kingdom"),
	siteCA.preset(LocationCountry, "Canada", "Canada"),
	siteAU.preset(LocationCountry, "Australia", "Australia"),
	siteDE.preset(LocationCountry, "Germany", "Germany"),
	siteFR.preset(LocationCountry, "France", "France"),
	siteIN.preset(LocationCountry, "India", "India"),
	siteSG.preset(LocationCountry, "Singapore", "Singapore"),
	siteJP.preset(LocationCountry, "Japan", "Japan"),
	siteNL.preset(LocationCountry, "Netherlands", "Netherlands"),
	siteUS.preset(LocationCity, "New York", "New York, USA"),
	siteUK.preset(LocationCity, "London", "London, UK"),
	siteCA.preset(LocationCity, "Toronto", "Toronto, Canada"),
	siteAU.preset(LocationCity, "Sydney", "Sydney, Australia"),
	siteDE.preset(LocationCity, "Berlin", "Berlin, Germany"),
	siteFR.preset(LocationCity, "Paris", "Paris, France"),
	siteIN.preset(LocationCity, "Mumbai", "Mumbai, India"),
	siteSG.preset(LocationCity, "Singapore City", "Singapore City"),
	siteJP.preset(LocationCity, "Tokyo", "Tokyo, Japan"),
	siteNL.preset(LocationCity, "Amsterdam", "Amsterdam, Netherlands"),
}

func (l locationSite) preset(kind, name, display string) LocationPreset {
	return LocationPreset{
		Name:        name,
		Type:        kind,
		DisplayName: display,
		Country:     l.country,
		City:        l.city,
		CityCode:    l.cityCode,
		MetroArea:   l.metro,
		Region:      l.region,
		Currency:    l.currency,
		Timezone:    l.timezone,
		Language:    l.language,
		Phone:       l.phone,
		Email:       l.email,
		Address:     l.address,
	}
}

// LocationPresets returns a copy of the built-in presets, countries first.
func LocationPresets() []LocationPreset {
	out := make([]LocationPreset, len(locationPresets))
	copy(out, locationPresets)
	return out
}

// LookupLocation finds a preset by name, ignoring case and surrounding space.
func LookupLocation(name string) (LocationPreset, error) {
	needle := strings.TrimSpace(name)
	for _, preset := range locationPresets {
		if strings.EqualFold(preset.Name, needle) {
			return preset, nil
		}
	}
	return LocationPreset{}, ErrUnknownLocation
}

// Variables returns the preset as a bare-name variable layer.
func (p LocationPreset) Variables() map[string]string {
	return map[string]string{
		"country":        p.Country,
		"city":           p.City,
		"city_code":      p.CityCode,
		"metro_area":     p.MetroArea,
		"region":         p.Region,
		"currency":       p.Currency,
		"timezone":       p.Timezone,
		"language":       p.Language,
		"local_phone":    p.Phone,
		"local_email":    p.Email,
		"office_address": p.Address,
	}
}
