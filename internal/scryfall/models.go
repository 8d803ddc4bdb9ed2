package scryfall

import "fmt"

// Card carries the Scryfall card fields the labeling pipeline consumes.
type Card struct {
	ID           string     `json:"id,omitempty"`
	Name         string     `json:"name"`
	TypeLine     string     `json:"type_line"`
	OracleText   string     `json:"oracle_text,omitempty"`
	CMC          *float64   `json:"cmc,omitempty"`
	Keywords     []string   `json:"keywords,omitempty"`
	ProducedMana []string   `json:"produced_mana,omitempty"`
	CardFaces    []CardFace `json:"card_faces,omitempty"`
	Legalities   Legalities `json:"legalities"`
	ImageURIs    *ImageURIs `json:"image_uris,omitempty"`
}

// CardFace represents one face of a multi-faced card.
type CardFace struct {
	Name       string     `json:"name"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text,omitempty"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// Legalities holds the format legality flags the labeler cares about.
type Legalities struct {
	Commander string `json:"commander"`
	Legacy    string `json:"legacy,omitempty"`
	Vintage   string `json:"vintage,omitempty"`
}

// ImageURIs contains URLs for card images in various sizes.
type ImageURIs struct {
	Small  string `json:"small,omitempty"`
	Normal string `json:"normal,omitempty"`
	Large  string `json:"large,omitempty"`
}

// ImageURL returns the preferred display image URL for the card, falling
// back to the first face for multi-faced cards. Empty if none is available.
func (c *Card) ImageURL() string {
	if c.ImageURIs != nil {
		if c.ImageURIs.Normal != "" {
			return c.ImageURIs.Normal
		}
		return c.ImageURIs.Large
	}
	if len(c.CardFaces) > 0 && c.CardFaces[0].ImageURIs != nil {
		if c.CardFaces[0].ImageURIs.Normal != "" {
			return c.CardFaces[0].ImageURIs.Normal
		}
		return c.CardFaces[0].ImageURIs.Large
	}
	return ""
}

// APIError represents an error response from the Scryfall API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scryfall API error (status %d, code %s): %s", e.Status, e.Code, e.Details)
}

// NotFoundError indicates the requested card does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("card not found: %s", e.Name)
}
