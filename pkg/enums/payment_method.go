package enums

import "fmt"

// PaymentMethod describes how an order is settled with the supplier.
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "CASH ON DELIVERY"
	PaymentMethodBankTransfer PaymentMethod = "BANK TRANSFER"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCredit       PaymentMethod = "CREDIT"
)

// DefaultPaymentMethod applies when a supplier or cart omits the field.
const DefaultPaymentMethod = PaymentMethodCOD

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCOD,
	PaymentMethodBankTransfer,
	PaymentMethodCash,
	PaymentMethodCredit,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
