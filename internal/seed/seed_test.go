package seed

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rithysok/restock-backend/pkg/enums"
)

func TestLoadParsesBundledDefaults(t *testing.T) {
	items, suppliers, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, items)
	require.NotEmpty(t, suppliers)

	supplierNames := map[string]bool{}
	for _, supplier := range suppliers {
		require.NotEqual(t, uuid.Nil, supplier.ID)
		require.NotEmpty(t, supplier.Name)
		require.True(t, supplier.DefaultPaymentMethod.IsValid())
		supplierNames[supplier.Name] = true
	}

	for _, item := range items {
		require.NotEqual(t, uuid.Nil, item.ID)
		require.NotEmpty(t, item.Name)
		// every item references a supplier defined in the same file
		require.True(t, supplierNames[item.Supplier], "item %q references unknown supplier %q", item.Name, item.Supplier)
	}
}

func TestLoadGeneratesFreshIDs(t *testing.T) {
	first, _, err := Load()
	require.NoError(t, err)
	second, _, err := Load()
	require.NoError(t, err)
	require.NotEqual(t, first[0].ID, second[0].ID)
}

func TestLoadDefaultsPaymentMethod(t *testing.T) {
	_, suppliers, err := Load()
	require.NoError(t, err)

	methods := map[enums.PaymentMethod]bool{}
	for _, supplier := range suppliers {
		methods[supplier.DefaultPaymentMethod] = true
	}
	require.True(t, methods[enums.PaymentMethodCOD])
}
