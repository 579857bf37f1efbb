package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
)

//go:embed defaults.json
var defaultsJSON []byte

type seedSupplier struct {
	Name                 string  `json:"name"`
	Contact              *string `json:"contact,omitempty"`
	Telegram             *string `json:"telegram,omitempty"`
	DefaultPaymentMethod string  `json:"defaultPaymentMethod,omitempty"`
}

type seedItem struct {
	Name      string  `json:"name"`
	KhmerName *string `json:"khmerName,omitempty"`
	Supplier  string  `json:"supplier"`
	Unit      *string `json:"unit,omitempty"`
	Price     *string `json:"price,omitempty"`
}

type seedFile struct {
	Suppliers []seedSupplier `json:"suppliers"`
	Items     []seedItem     `json:"items"`
}

// Load parses the bundled default dataset. It is consumed once, when the
// remote store turns out to be empty at first run.
func Load() ([]models.Item, []models.Supplier, error) {
	var file seedFile
	if err := json.Unmarshal(defaultsJSON, &file); err != nil {
		return nil, nil, fmt.Errorf("parsing bundled defaults: %w", err)
	}

	suppliers := make([]models.Supplier, 0, len(file.Suppliers))
	for _, raw := range file.Suppliers {
		method := enums.DefaultPaymentMethod
		if raw.DefaultPaymentMethod != "" {
			parsed, err := enums.ParsePaymentMethod(raw.DefaultPaymentMethod)
			if err != nil {
				return nil, nil, fmt.Errorf("supplier %q: %w", raw.Name, err)
			}
			method = parsed
		}
		suppliers = append(suppliers, models.Supplier{
			ID:                   uuid.New(),
			Name:                 raw.Name,
			Contact:              raw.Contact,
			Telegram:             raw.Telegram,
			DefaultPaymentMethod: method,
		})
	}

	items := make([]models.Item, 0, len(file.Items))
	for _, raw := range file.Items {
		item := models.Item{
			ID:        uuid.New(),
			Name:      raw.Name,
			KhmerName: raw.KhmerName,
			Supplier:  raw.Supplier,
			Unit:      raw.Unit,
		}
		if raw.Price != nil {
			price, err := decimal.NewFromString(*raw.Price)
			if err != nil {
				return nil, nil, fmt.Errorf("item %q: parsing price: %w", raw.Name, err)
			}
			item.Price = &price
		}
		items = append(items, item)
	}

	return items, suppliers, nil
}
