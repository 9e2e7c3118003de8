package models

// FoodPlate represents a dish offered by the restaurant
type FoodPlate struct {
	ID          uint   `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Image       string `json:"image" yaml:"image"`
	Price       string `json:"price" yaml:"price"`
	Description string `json:"description" yaml:"description"`
	Available   bool   `json:"available" yaml:"available"`
}

// IsZero reports whether the plate is the unset sentinel. IDs are assigned
// by the remote resource starting at 1.
func (p FoodPlate) IsZero() bool {
	return p.ID == 0
}

// Toggled returns a copy of the plate with its availability flipped
func (p FoodPlate) Toggled() FoodPlate {
	p.Available = !p.Available
	return p
}

// FoodDraft holds the fields a user fills in when creating a plate.
// The identifier and availability are not part of a draft.
type FoodDraft struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// Plate returns the payload sent to the create endpoint. New plates are
// always available.
func (d FoodDraft) Plate() FoodPlate {
	return FoodPlate{
		Name:        d.Name,
		Image:       d.Image,
		Price:       d.Price,
		Description: d.Description,
		Available:   true,
	}
}

// FoodPatch is a partial edit of a plate. Nil fields are left untouched.
type FoodPatch struct {
	Name        *string
	Image       *string
	Price       *string
	Description *string
}

// Apply merges the patch over a snapshot of a plate
func (fp FoodPatch) Apply(p FoodPlate) FoodPlate {
	if fp.Name != nil {
		p.Name = *fp.Name
	}
	if fp.Image != nil {
		p.Image = *fp.Image
	}
	if fp.Price != nil {
		p.Price = *fp.Price
	}
	if fp.Description != nil {
		p.Description = *fp.Description
	}
	return p
}

// IsEmpty reports whether the patch changes nothing
func (fp FoodPatch) IsEmpty() bool {
	return fp.Name == nil && fp.Image == nil && fp.Price == nil && fp.Description == nil
}
