package walletpay

import "encoding/json"

// MerchantCapability defines model for PaymentRequest.MerchantCapabilities.
type MerchantCapability string

// Defines values for MerchantCapability.
const (
	MerchantCapability3DS    MerchantCapability = "supports3DS"
	MerchantCapabilityCredit MerchantCapability = "supportsCredit"
	MerchantCapabilityDebit  MerchantCapability = "supportsDebit"
	MerchantCapabilityEMV    MerchantCapability = "supportsEMV"
)

// LineItemType defines model for LineItem.Type.
type LineItemType string

// Defines values for LineItemType.
const (
	LineItemTypeFinal   LineItemType = "final"
	LineItemTypePending LineItemType = "pending"
)

// ShippingType defines model for PaymentRequest.ShippingType.
type ShippingType string

// Defines values for ShippingType.
const (
	ShippingTypeShipping      ShippingType = "shipping"
	ShippingTypeDelivery      ShippingType = "delivery"
	ShippingTypeStorePickup   ShippingType = "storePickup"
	ShippingTypeServicePickup ShippingType = "servicePickup"
)

// ContactField defines model for the required contact field lists.
type ContactField string

// Defines values for ContactField.
const (
	ContactFieldEmail         ContactField = "email"
	ContactFieldName          ContactField = "name"
	ContactFieldPhone         ContactField = "phone"
	ContactFieldPostalAddress ContactField = "postalAddress"
)

// PaymentMethodType defines model for PaymentMethod.Type.
type PaymentMethodType string

// Defines values for PaymentMethodType.
const (
	PaymentMethodTypeDebit   PaymentMethodType = "debit"
	PaymentMethodTypeCredit  PaymentMethodType = "credit"
	PaymentMethodTypePrepaid PaymentMethodType = "prepaid"
	PaymentMethodTypeStore   PaymentMethodType = "store"
)

// PaymentStatus is the terminal status code handed to the native runtime
// when a payment authorization completes.
type PaymentStatus int

// Defines values for PaymentStatus, matching the native status constants.
const (
	PaymentStatusSuccess PaymentStatus = 0
	PaymentStatusFailure PaymentStatus = 1
)

// LineItem is a labeled amount shown in the payment sheet.
type LineItem struct {
	Label  string       `json:"label" validate:"required"`
	Amount string       `json:"amount" validate:"required,amount"`
	Type   LineItemType `json:"type,omitempty"`
}

// ShippingMethod describes one selectable shipping option.
type ShippingMethod struct {
	Label      string `json:"label"`
	Detail     string `json:"detail,omitempty"`
	Amount     string `json:"amount"`
	Identifier string `json:"identifier"`
}

// PaymentContact carries billing or shipping contact details for a payment.
type PaymentContact struct {
	PhoneNumber           string   `json:"phoneNumber,omitempty"`
	EmailAddress          string   `json:"emailAddress,omitempty"`
	GivenName             string   `json:"givenName,omitempty"`
	FamilyName            string   `json:"familyName,omitempty"`
	AddressLines          []string `json:"addressLines,omitempty"`
	Locality              string   `json:"locality,omitempty"`
	PostalCode            string   `json:"postalCode,omitempty"`
	AdministrativeArea    string   `json:"administrativeArea,omitempty"`
	Country               string   `json:"country,omitempty"`
	CountryCode           string   `json:"countryCode,omitempty"`
	SubLocality           string   `json:"subLocality,omitempty"`
	SubAdministrativeArea string   `json:"subAdministrativeArea,omitempty"`
}

// PaymentMethod describes the card the user selected in the payment sheet.
type PaymentMethod struct {
	DisplayName string            `json:"displayName,omitempty"`
	Network     string            `json:"network,omitempty"`
	Type        PaymentMethodType `json:"type,omitempty"`
}

// PaymentToken is the opaque authorization token minted by the native
// runtime. PaymentData is forwarded untouched to the merchant backend.
type PaymentToken struct {
	PaymentData           json.RawMessage `json:"paymentData"`
	PaymentMethod         PaymentMethod   `json:"paymentMethod"`
	TransactionIdentifier string          `json:"transactionIdentifier"`
}

// Payment is the native authorization payload delivered with the
// payment-authorized event.
type Payment struct {
	Token           PaymentToken    `json:"token"`
	BillingContact  *PaymentContact `json:"billingContact,omitempty"`
	ShippingContact *PaymentContact `json:"shippingContact,omitempty"`
}

// PaymentRequest is the native payment-request payload a session is
// constructed with.
type PaymentRequest struct {
	CountryCode                   string               `json:"countryCode" validate:"required,len=2"`
	CurrencyCode                  string               `json:"currencyCode" validate:"required,len=3"`
	MerchantCapabilities          []MerchantCapability `json:"merchantCapabilities" validate:"required,min=1"`
	SupportedNetworks             []string             `json:"supportedNetworks" validate:"required,min=1"`
	Total                         LineItem             `json:"total"`
	LineItems                     []LineItem           `json:"lineItems,omitempty"`
	ShippingMethods               []ShippingMethod     `json:"shippingMethods,omitempty"`
	ShippingType                  ShippingType         `json:"shippingType,omitempty"`
	RequiredBillingContactFields  []ContactField       `json:"requiredBillingContactFields,omitempty"`
	RequiredShippingContactFields []ContactField       `json:"requiredShippingContactFields,omitempty"`
	SupportsCouponCode            bool                 `json:"supportsCouponCode,omitempty"`
	CouponCode                    string               `json:"couponCode,omitempty"`
	ApplicationData               string               `json:"applicationData,omitempty"`
}

// PaymentMethodUpdate carries the sheet changes returned by the
// payment-method-selected business callback.
type PaymentMethodUpdate struct {
	NewTotal     LineItem   `json:"newTotal"`
	NewLineItems []LineItem `json:"newLineItems,omitempty"`
}

// CouponCodeUpdate carries the sheet changes returned by the
// coupon-code-changed business callback.
type CouponCodeUpdate struct {
	NewTotal           LineItem         `json:"newTotal"`
	NewLineItems       []LineItem       `json:"newLineItems,omitempty"`
	NewShippingMethods []ShippingMethod `json:"newShippingMethods,omitempty"`
	Errors             []UpdateError    `json:"errors,omitempty"`
}

// ShippingMethodUpdate carries the sheet changes returned by the
// shipping-method-selected business callback.
type ShippingMethodUpdate struct {
	NewTotal     LineItem   `json:"newTotal"`
	NewLineItems []LineItem `json:"newLineItems,omitempty"`
}

// ShippingContactUpdate carries the sheet changes returned by the
// shipping-contact-selected business callback.
type ShippingContactUpdate struct {
	NewTotal           LineItem         `json:"newTotal"`
	NewLineItems       []LineItem       `json:"newLineItems,omitempty"`
	NewShippingMethods []ShippingMethod `json:"newShippingMethods,omitempty"`
	Errors             []UpdateError    `json:"errors,omitempty"`
}

// UpdateError flags a problem with user-provided sheet data, e.g. an
// unserviceable shipping address or an unknown coupon code.
type UpdateError struct {
	Code         string `json:"code"`
	ContactField string `json:"contactField,omitempty"`
	Message      string `json:"message,omitempty"`
}

// ButtonStyle defines model for ButtonConfig.ButtonStyle.
type ButtonStyle string

// Defines values for ButtonStyle.
const (
	ButtonStyleBlack        ButtonStyle = "black"
	ButtonStyleWhite        ButtonStyle = "white"
	ButtonStyleWhiteOutline ButtonStyle = "white-outline"
)

// ButtonType defines model for ButtonConfig.Type.
type ButtonType string

// Defines values for ButtonType.
const (
	ButtonTypeBuy      ButtonType = "buy"
	ButtonTypeCheckOut ButtonType = "check-out"
	ButtonTypeContinue ButtonType = "continue"
	ButtonTypeDonate   ButtonType = "donate"
	ButtonTypeOrder    ButtonType = "order"
	ButtonTypePay      ButtonType = "pay"
	ButtonTypePlain    ButtonType = "plain"
	ButtonTypeRent     ButtonType = "rent"
	ButtonTypeSetUp    ButtonType = "set-up"
	ButtonTypeTip      ButtonType = "tip"
)

// Button locates the container for the payment affordance and carries its
// presentational options. The SDK only checks that the target exists; the
// platform owns rendering.
type Button struct {
	// Selector for the container element the button is rendered into.
	Selector string       `json:"selector"`
	Config   ButtonConfig `json:"config"`
}

// ButtonConfig is handed verbatim to the platform's render step.
type ButtonConfig struct {
	ButtonStyle ButtonStyle           `json:"buttonstyle"`
	Type        ButtonType            `json:"type"`
	Locale      string                `json:"locale"`
	Style       *ButtonStyleOverrides `json:"style,omitempty"`
}

// ButtonStyleOverrides are optional CSS-level adjustments for the rendered
// button.
type ButtonStyleOverrides struct {
	Width        string `json:"width,omitempty"`
	Height       string `json:"height,omitempty"`
	BorderRadius string `json:"borderRadius,omitempty"`
	Padding      string `json:"padding,omitempty"`
	BoxSizing    string `json:"boxSizing,omitempty"`
}
