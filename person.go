package roster

import "encoding/json"

// Person is a single person card extracted from the document.
// Position and ProfileURL are empty when the card did not carry them.
type Person struct {
	Name       string
	Position   string
	ProfileURL string
}

// Key returns the deduplication key for the person: the profile URL when
// present, otherwise the normalized name.
func (p Person) Key() string {
	if p.ProfileURL != "" {
		return p.ProfileURL
	}
	return p.Name
}

// Validate returns an error if the person cannot be stored.
func (p Person) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "person name required")
	}
	if !ValidName(p.Name) {
		return Errorf(EINVALID, "invalid person name %q", p.Name)
	}
	return nil
}

// personJSON is the persisted shape; absent fields are encoded as null.
type personJSON struct {
	Name       string  `json:"name"`
	Position   *string `json:"position"`
	ProfileURL *string `json:"profileUrl"`
}

// MarshalJSON encodes empty optional fields as null.
func (p Person) MarshalJSON() ([]byte, error) {
	return json.Marshal(personJSON{
		Name:       p.Name,
		Position:   nullable(p.Position),
		ProfileURL: nullable(p.ProfileURL),
	})
}

// UnmarshalJSON accepts null or missing optional fields.
func (p *Person) UnmarshalJSON(data []byte) error {
	var v personJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.Name = v.Name
	p.Position = deref(v.Position)
	p.ProfileURL = deref(v.ProfileURL)
	return nil
}

// EncodePeople encodes people for persistence under DataKey.
func EncodePeople(people []Person) ([]byte, error) {
	if people == nil {
		people = []Person{}
	}
	return json.Marshal(people)
}

// DecodePeople decodes a persisted people list.
func DecodePeople(data []byte) ([]Person, error) {
	var people []Person
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, Errorf(EINVALID, "decoding people: %v", err)
	}
	return people, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
