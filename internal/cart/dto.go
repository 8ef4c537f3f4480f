package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
)

// AddItemInput is the payload to add a variant to the cart.
type AddItemInput struct {
	ProductID  uuid.UUID
	VariantSKU string
	Quantity   int
}

// ItemDTO is one cart line with its computed total.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Thumbnail   *string         `json:"thumbnail,omitempty"`
	VariantSKU  string          `json:"variant_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CartDTO is the user's cart with line and grand totals.
type CartDTO struct {
	ID        uuid.UUID       `json:"id"`
	Items     []ItemDTO       `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// NewCartDTO assembles the cart projection; product rows annotate the lines.
func NewCartDTO(cart *models.Cart, productsByID map[uuid.UUID]*models.Product) *CartDTO {
	dto := &CartDTO{
		ID:    cart.ID,
		Items: make([]ItemDTO, len(cart.Items)),
		Total: decimal.Zero,
	}
	for i, item := range cart.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		line := ItemDTO{
			ID:         item.ID,
			ProductID:  item.ProductID,
			VariantSKU: item.VariantSKU,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			LineTotal:  lineTotal,
		}
		if product, ok := productsByID[item.ProductID]; ok && product != nil {
			line.ProductName = product.Name
			line.Thumbnail = product.Thumbnail
		}
		dto.Items[i] = line
		dto.ItemCount += item.Quantity
		dto.Total = dto.Total.Add(lineTotal)
	}
	return dto
}
