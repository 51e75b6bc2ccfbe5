package commercetools

import "encoding/json"

// LocalizedString maps a language tag to a translation.
type LocalizedString map[string]string

// Money is an amount in minor currency units.
type Money struct {
	CentAmount   int64  `json:"centAmount"`
	CurrencyCode string `json:"currencyCode"`
}

// Cart is the CommerceTools cart representation. Only the fields this
// service consumes are declared.
type Cart struct {
	ID             string       `json:"id"`
	Version        int64        `json:"version"`
	TotalPrice     *Money       `json:"totalPrice,omitempty"`
	CreatedAt      string       `json:"createdAt,omitempty"`
	LastModifiedAt string       `json:"lastModifiedAt,omitempty"`
	PaymentInfo    *PaymentInfo `json:"paymentInfo,omitempty"`
}

// PaymentInfo lists the payments referenced by a cart. With the expansion
// this service requests, each reference carries the full payment object so
// the payment's own version rides along with the cart read.
type PaymentInfo struct {
	Payments []PaymentReference `json:"payments"`
}

// PaymentReference is a cart's weak reference to a payment resource.
type PaymentReference struct {
	ID  string   `json:"id"`
	Obj *Payment `json:"obj,omitempty"`
}

// Payment is the CommerceTools payment representation.
type Payment struct {
	ID                string             `json:"id"`
	Version           int64              `json:"version"`
	AmountPlanned     Money              `json:"amountPlanned"`
	PaymentMethodInfo *PaymentMethodInfo `json:"paymentMethodInfo,omitempty"`
	PaymentStatus     *PaymentStatus     `json:"paymentStatus,omitempty"`
	InterfaceID       string             `json:"interfaceId,omitempty"`
	CreatedAt         string             `json:"createdAt,omitempty"`
	LastModifiedAt    string             `json:"lastModifiedAt,omitempty"`
}

// PaymentMethodInfo describes how a payment is made.
type PaymentMethodInfo struct {
	PaymentInterface string          `json:"paymentInterface,omitempty"`
	Method           string          `json:"method,omitempty"`
	Name             LocalizedString `json:"name,omitempty"`
}

// PaymentStatus carries the payment state reported by the payment interface.
type PaymentStatus struct {
	InterfaceCode string `json:"interfaceCode,omitempty"`
	InterfaceText string `json:"interfaceText,omitempty"`
}

// PaymentDraft is the payload for creating a payment resource.
type PaymentDraft struct {
	AmountPlanned     Money              `json:"amountPlanned"`
	PaymentMethodInfo *PaymentMethodInfo `json:"paymentMethodInfo,omitempty"`
	InterfaceID       string             `json:"interfaceId,omitempty"`
	Custom            json.RawMessage    `json:"custom,omitempty"`
}

// CartUpdateAction is one entry of a versioned cart update. The payment
// reference mirrors the shape CommerceTools expects for the addPayment and
// removePayment actions.
type CartUpdateAction struct {
	Action  string           `json:"action"`
	Payment *PaymentResource `json:"payment,omitempty"`
}

// PaymentResource identifies a payment inside an update action.
type PaymentResource struct {
	ID      string `json:"id"`
	Version int64  `json:"version,omitempty"`
}

// cartUpdate is the versioned mutation payload for a cart.
type cartUpdate struct {
	Version int64              `json:"version"`
	Actions []CartUpdateAction `json:"actions"`
}

// Category is the CommerceTools category representation.
type Category struct {
	ID             string          `json:"id"`
	Version        int64           `json:"version"`
	Name           LocalizedString `json:"name,omitempty"`
	Description    LocalizedString `json:"description,omitempty"`
	Slug           LocalizedString `json:"slug,omitempty"`
	Parent         *Reference      `json:"parent,omitempty"`
	Ancestors      []Reference     `json:"ancestors,omitempty"`
	CreatedAt      string          `json:"createdAt,omitempty"`
	LastModifiedAt string          `json:"lastModifiedAt,omitempty"`
}

// Reference points at another CommerceTools resource by id.
type Reference struct {
	TypeID string `json:"typeId,omitempty"`
	ID     string `json:"id"`
}

// ProductProjection is the CommerceTools product search representation.
type ProductProjection struct {
	ID             string               `json:"id"`
	Name           LocalizedString      `json:"name,omitempty"`
	Description    LocalizedString      `json:"description,omitempty"`
	CreatedAt      string               `json:"createdAt,omitempty"`
	LastModifiedAt string               `json:"lastModifiedAt,omitempty"`
	ProductType    ProductTypeReference `json:"productType"`
	MasterVariant  *ProductVariant      `json:"masterVariant,omitempty"`
	Variants       []ProductVariant     `json:"variants,omitempty"`
	Categories     []Reference          `json:"categories,omitempty"`
}

// ProductTypeReference is a product's reference to its type, optionally
// expanded with the type's attribute definitions.
type ProductTypeReference struct {
	ID  string       `json:"id"`
	Obj *ProductType `json:"obj,omitempty"`
}

// ProductType declares the attribute metadata for a family of products.
type ProductType struct {
	Attributes []AttributeDefinition `json:"attributes,omitempty"`
}

// AttributeDefinition is the product-type level description of an attribute.
// Constraints Unique and CombinationUnique mark variant-discriminating
// attributes.
type AttributeDefinition struct {
	Name                string          `json:"name"`
	Label               LocalizedString `json:"label,omitempty"`
	AttributeConstraint string          `json:"attributeConstraint,omitempty"`
	IsSearchable        bool            `json:"isSearchable,omitempty"`
}

// ProductVariant is a CommerceTools product variant.
type ProductVariant struct {
	ID         int64            `json:"id"`
	SKU        string           `json:"sku,omitempty"`
	Prices     []Price          `json:"prices,omitempty"`
	Images     []Image          `json:"images,omitempty"`
	Attributes []AttributeValue `json:"attributes,omitempty"`
}

// Price is a variant price entry.
type Price struct {
	Value   Money  `json:"value"`
	Country string `json:"country,omitempty"`
}

// Image is a variant image. CommerceTools images usually carry no id, in
// which case mapping derives one from the url.
type Image struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
}

// AttributeValue is a variant attribute. The value is polymorphic (plain
// string, localized map, enum object, number) and resolved during mapping.
type AttributeValue struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// PagedQueryResult wraps windowed CommerceTools query responses.
type PagedQueryResult[T any] struct {
	Offset  int              `json:"offset"`
	Count   int              `json:"count"`
	Total   int              `json:"total"`
	Results []T              `json:"results"`
	Facets  map[string]Facet `json:"facets,omitempty"`
}

// Facet is a raw CommerceTools facet result. Range facets fill Ranges;
// term facets fill Terms and DataType.
type Facet struct {
	Type     string       `json:"type,omitempty"`
	DataType string       `json:"dataType,omitempty"`
	Missing  int          `json:"missing,omitempty"`
	Terms    []FacetTerm  `json:"terms,omitempty"`
	Ranges   []FacetRange `json:"ranges,omitempty"`
}

// FacetTerm is one bucket of a terms facet. The term itself may be a string
// or a number depending on the faceted field.
type FacetTerm struct {
	Term         json.RawMessage `json:"term"`
	ProductCount int             `json:"productCount"`
}

// FacetRange is one bucket of a range facet.
type FacetRange struct {
	From         float64 `json:"from"`
	To           float64 `json:"to"`
	ProductCount int     `json:"productCount"`
}
