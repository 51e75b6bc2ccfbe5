package ccif

// Category is the canonical category read model. On product responses only
// the id is populated (a reference, never embedded category data). SubCategories
// is filled only when the caller asks for the tree shape.
type Category struct {
	ID               string     `json:"id"`
	Name             string     `json:"name,omitempty"`
	Description      string     `json:"description,omitempty"`
	CreatedDate      string     `json:"createdDate,omitempty"`
	LastModifiedDate string     `json:"lastModifiedDate,omitempty"`
	ParentCategories []Category `json:"parentCategories,omitempty"`
	SubCategories    []Category `json:"subCategories,omitempty"`
}
