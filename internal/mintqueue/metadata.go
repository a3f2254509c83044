package mintqueue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/checkmint/checkmint/internal/store/schema"
)

// Attribute is one trait on the token document
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// TokenMetadata is the JSON document minted with each attendance token
type TokenMetadata struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Image       string            `json:"image,omitempty"`
	Attributes  []Attribute       `json:"attributes"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// buildMetadata assembles the token document for one mint: base fields
// derived from the event and attendee, overridden and extended by the
// event's optional template. A template that fails to parse is ignored
// rather than blocking the mint.
func buildMetadata(event *schema.Event, nft *schema.NFT) ([]byte, error) {
	location := event.Location
	if location == "" {
		location = "Virtual"
	}

	attributes := []Attribute{
		{TraitType: "Event Name", Value: event.Name},
	}
	if event.StartAt != nil {
		attributes = append(attributes, Attribute{
			TraitType: "Event Date", Value: event.StartAt.UTC().Format(time.RFC3339),
		})
	}
	attributes = append(attributes,
		Attribute{TraitType: "Attendee Name", Value: nft.AttendeeName},
		Attribute{TraitType: "Check-in Time", Value: nft.CreatedAt.UTC().Format(time.RFC3339)},
		Attribute{TraitType: "Location", Value: location},
	)

	meta := TokenMetadata{
		Name:        fmt.Sprintf("%s - Attendance NFT", event.Name),
		Description: fmt.Sprintf("This NFT certifies attendance at %s", event.Name),
		Image:       event.CoverURL,
		Attributes:  attributes,
		Properties: map[string]string{
			"category": "attendance",
			"event_id": event.ExternalID,
		},
	}

	if len(event.NFTTemplate) > 0 {
		var tpl struct {
			Name        string      `json:"name"`
			Description string      `json:"description"`
			Image       string      `json:"image"`
			Attributes  []Attribute `json:"attributes"`
		}
		if err := json.Unmarshal(event.NFTTemplate, &tpl); err == nil {
			if tpl.Name != "" {
				meta.Name = tpl.Name
			}
			if tpl.Description != "" {
				meta.Description = tpl.Description
			}
			if tpl.Image != "" {
				meta.Image = tpl.Image
			}
			meta.Attributes = append(meta.Attributes, tpl.Attributes...)
		}
	}

	return json.Marshal(meta)
}
