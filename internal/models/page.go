package models

// Card is an oshi together with the number of days since its start date
type Card struct {
	Oshi Oshi
	Days int
}

// PageMeta holds the static strings surrounding the card list
type PageMeta struct {
	Title       string
	Description string
	Icon        string
	Owner       string
	Heading     string
	LogoPath    string
	LogoAlt     string
	LogoSize    int
	FooterText  string
	LinkURL     string
	LinkText    string
}

// Page is everything needed to render the document
type Page struct {
	Meta  PageMeta
	Cards []Card
}
