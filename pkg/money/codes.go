package money

// Code represents a currency or asset code (e.g., "USD", "VES").
type Code string

// Codes handled by the calculator
const (
	USD  Code = "USD"  // US Dollar
	VES  Code = "VES"  // Venezuelan Bolivar
	USDT Code = "USDT" // Tether
)

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}

// Decimals returns the number of fractional digits shown for the code.
func (c Code) Decimals() int32 {
	return 2
}
