package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	dbtypes "github.com/mercaline/mercaline-backend/pkg/db/types"
	"github.com/mercaline/mercaline-backend/pkg/enums"
	"github.com/mercaline/mercaline-backend/pkg/pagination"
)

// VariantInput holds one raw variant payload from product creation.
type VariantInput struct {
	SKU               string
	Size              string
	Color             string
	Price             *decimal.Decimal
	CompareAtPrice    *decimal.Decimal
	StockQuantity     *int
	LowStockThreshold *int
	Status            *string
	WeightGrams       *float64
	LengthCM          *float64
	WidthCM           *float64
	HeightCM          *float64
}

// ImageInput holds one raw image payload inside a color entry. SortOrder is a
// pointer so the gallery mutators can tell "absent" apart from an explicit 0.
type ImageInput struct {
	URL       string
	AltText   *string
	ImageType string
	IsPrimary bool
	SortOrder *int
	Width     *int
	Height    *int
	FileSize  *int64
	Format    *string
}

// ColorImageInput holds one raw color entry with its images.
type ColorImageInput struct {
	Color     string
	ColorCode *string
	Images    []ImageInput
}

// CreateProductInput is the validated payload to create a product aggregate.
type CreateProductInput struct {
	Name             string
	Description      string
	ShortDescription *string
	Category         string
	Subcategory      *string
	Brand            string
	BasePrice        *decimal.Decimal
	MetaTitle        *string
	MetaDescription  *string
	Tags             []string
	Status           *string
	Variants         []VariantInput
	ColorImages      []ColorImageInput
}

// VariantDTO is a variant projection with the computed availability flags.
type VariantDTO struct {
	ID                uuid.UUID        `json:"id"`
	SKU               string           `json:"sku"`
	Size              string           `json:"size"`
	Color             string           `json:"color"`
	Price             decimal.Decimal  `json:"price"`
	CompareAtPrice    *decimal.Decimal `json:"compare_at_price,omitempty"`
	StockQuantity     int              `json:"stock_quantity"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	Status            string           `json:"status"`
	IsAvailable       bool             `json:"is_available"`
	IsLowStock        bool             `json:"is_low_stock"`
}

// ImageDTO is one gallery image.
type ImageDTO struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	AltText   *string   `json:"alt_text,omitempty"`
	ImageType string    `json:"image_type"`
	IsPrimary bool      `json:"is_primary"`
	SortOrder int       `json:"sort_order"`
}

// ColorImageDTO is one color entry of the gallery. Images is omitted in
// summarized projections.
type ColorImageDTO struct {
	ID           uuid.UUID  `json:"id"`
	Color        string     `json:"color"`
	ColorCode    *string    `json:"color_code,omitempty"`
	PrimaryImage *string    `json:"primary_image"`
	Thumbnail    *string    `json:"thumbnail"`
	ImageCount   int        `json:"image_count"`
	Images       []ImageDTO `json:"images,omitempty"`
}

// ProductDTO is the full aggregate projection returned to clients.
type ProductDTO struct {
	ID               uuid.UUID              `json:"id"`
	Name             string                 `json:"name"`
	Slug             string                 `json:"slug"`
	Description      string                 `json:"description"`
	ShortDescription *string                `json:"short_description,omitempty"`
	Category         string                 `json:"category"`
	Subcategory      *string                `json:"subcategory,omitempty"`
	Brand            string                 `json:"brand"`
	BasePrice        decimal.Decimal        `json:"base_price"`
	Tags             []string               `json:"tags"`
	Status           string                 `json:"status"`
	ViewCount        int                    `json:"view_count"`
	TotalStock       int                    `json:"total_stock"`
	MinPrice         *decimal.Decimal       `json:"min_price"`
	MaxPrice         *decimal.Decimal       `json:"max_price"`
	InventoryStatus  string                 `json:"inventory_status"`
	AvailableColors  dbtypes.ColorSummaries `json:"available_colors"`
	AvailableSizes   dbtypes.SizeSummaries  `json:"available_sizes"`
	Thumbnail        *string                `json:"thumbnail,omitempty"`
	Variants         []VariantDTO           `json:"variants"`
	ColorImages      []ColorImageDTO        `json:"color_images"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// SummaryDTO is the lightweight projection served by the browse endpoint.
type SummaryDTO struct {
	ID              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Slug            string                 `json:"slug"`
	Category        string                 `json:"category"`
	Brand           string                 `json:"brand"`
	BasePrice       decimal.Decimal        `json:"base_price"`
	MinPrice        *decimal.Decimal       `json:"min_price"`
	MaxPrice        *decimal.Decimal       `json:"max_price"`
	TotalStock      int                    `json:"total_stock"`
	InventoryStatus string                 `json:"inventory_status"`
	AvailableColors dbtypes.ColorSummaries `json:"available_colors"`
	AvailableSizes  dbtypes.SizeSummaries  `json:"available_sizes"`
	Thumbnail       *string                `json:"thumbnail,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// SummaryListResult pairs a summary page with its pagination metadata.
type SummaryListResult struct {
	Items []SummaryDTO        `json:"items"`
	Meta  pagination.PageMeta `json:"meta"`
}

// ColorImagesPage is one page of a color's images.
type ColorImagesPage struct {
	Color  string              `json:"color"`
	Images []ImageDTO          `json:"images"`
	Meta   pagination.PageMeta `json:"meta"`
}

// NewProductDTO builds the full projection. When summarizeImages is set, the
// per-color image lists are left out and only the summary fields remain.
func NewProductDTO(p *models.Product, summarizeImages bool) *ProductDTO {
	dto := &ProductDTO{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Category:         p.Category,
		Subcategory:      p.Subcategory,
		Brand:            p.Brand,
		BasePrice:        p.BasePrice,
		Tags:             append([]string{}, p.Tags...),
		Status:           string(p.Status),
		ViewCount:        p.ViewCount,
		TotalStock:       p.TotalStock,
		MinPrice:         p.MinPrice,
		MaxPrice:         p.MaxPrice,
		InventoryStatus:  string(p.InventoryStatus),
		AvailableColors:  p.AvailableColors,
		AvailableSizes:   p.AvailableSizes,
		Thumbnail:        p.Thumbnail,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}

	dto.Variants = make([]VariantDTO, len(p.Variants))
	for i, v := range p.Variants {
		dto.Variants[i] = NewVariantDTO(&v)
	}

	dto.ColorImages = make([]ColorImageDTO, len(p.ColorImages))
	for i, entry := range p.ColorImages {
		dto.ColorImages[i] = NewColorImageDTO(&entry, summarizeImages)
	}

	return dto
}

// NewVariantDTO computes the availability flags alongside the raw fields.
func NewVariantDTO(v *models.ProductVariant) VariantDTO {
	return VariantDTO{
		ID:                v.ID,
		SKU:               v.SKU,
		Size:              v.Size,
		Color:             v.Color,
		Price:             v.Price,
		CompareAtPrice:    v.CompareAtPrice,
		StockQuantity:     v.StockQuantity,
		LowStockThreshold: v.LowStockThreshold,
		Status:            string(v.Status),
		IsAvailable:       v.StockQuantity > 0 && v.Status == enums.VariantStatusActive,
		IsLowStock:        v.StockQuantity > 0 && v.StockQuantity <= v.LowStockThreshold,
	}
}

// NewColorImageDTO maps one gallery entry; summarize drops the image list.
func NewColorImageDTO(entry *models.ColorImage, summarize bool) ColorImageDTO {
	dto := ColorImageDTO{
		ID:           entry.ID,
		Color:        entry.Color,
		ColorCode:    entry.ColorCode,
		PrimaryImage: entry.PrimaryImage,
		Thumbnail:    entry.Thumbnail,
		ImageCount:   len(entry.Images),
	}
	if !summarize {
		dto.Images = make([]ImageDTO, len(entry.Images))
		for i, img := range entry.Images {
			dto.Images[i] = NewImageDTO(&img)
		}
	}
	return dto
}

// NewImageDTO maps one image row.
func NewImageDTO(img *models.ProductImage) ImageDTO {
	return ImageDTO{
		ID:        img.ID,
		URL:       img.URL,
		AltText:   img.AltText,
		ImageType: string(img.ImageType),
		IsPrimary: img.IsPrimary,
		SortOrder: img.SortOrder,
	}
}

// NewSummaryDTO maps a product row to its browse projection.
func NewSummaryDTO(p *models.Product) SummaryDTO {
	return SummaryDTO{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Category:        p.Category,
		Brand:           p.Brand,
		BasePrice:       p.BasePrice,
		MinPrice:        p.MinPrice,
		MaxPrice:        p.MaxPrice,
		TotalStock:      p.TotalStock,
		InventoryStatus: string(p.InventoryStatus),
		AvailableColors: p.AvailableColors,
		AvailableSizes:  p.AvailableSizes,
		Thumbnail:       p.Thumbnail,
		CreatedAt:       p.CreatedAt,
	}
}
