package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/pkg/db"
	"github.com/mercaline/mercaline-backend/pkg/db/models"
	"github.com/mercaline/mercaline-backend/pkg/enums"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
	"github.com/mercaline/mercaline-backend/pkg/pagination"
)

// Service exposes the product catalog operations.
type Service interface {
	CreateProduct(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID, includeAllImages bool) (*ProductDTO, error)
	ListSummaries(ctx context.Context, input ListInput) (*SummaryListResult, error)
	GetImagesForColor(ctx context.Context, productID uuid.UUID, color string, page pagination.Params) (*ColorImagesPage, error)
	AddImagesToColor(ctx context.Context, productID uuid.UUID, color string, colorCode *string, images []ImageInput) (*ProductDTO, error)
	ReorderImages(ctx context.Context, productID uuid.UUID, color string, orderedIDs []uuid.UUID) (*ProductDTO, error)
	DeleteImage(ctx context.Context, productID uuid.UUID, color string, imageID uuid.UUID) (*ProductDTO, error)
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type storedFileRemover interface {
	Remove(ctx context.Context, publicURL string) error
}

// service implements the catalog service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	userRepo userLoader
	files    storedFileRemover
}

// NewService constructs a catalog service instance. The file remover may be
// nil when uploaded files live outside this process.
func NewService(repo *Repository, dbClient *db.Client, userRepo userLoader, files storedFileRemover) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		userRepo: userRepo,
		files:    files,
	}, nil
}

// CreateProduct validates and persists the full aggregate, then returns the
// fresh projection with every derived field populated.
func (s *service) CreateProduct(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	slug := Slugify(input.Name)
	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check slug")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists").
			WithDetails(map[string]any{"slug": slug})
	}

	variants, err := ProcessVariants(input.Variants)
	if err != nil {
		return nil, err
	}
	gallery, err := BuildGallery(input.ColorImages)
	if err != nil {
		return nil, err
	}

	status, err := resolveProductStatus(input.Status)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:             strings.TrimSpace(input.Name),
		Slug:             slug,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Category:         strings.TrimSpace(input.Category),
		Subcategory:      input.Subcategory,
		Brand:            strings.TrimSpace(input.Brand),
		BasePrice:        *input.BasePrice,
		MetaTitle:        input.MetaTitle,
		MetaDescription:  input.MetaDescription,
		Tags:             pq.StringArray(input.Tags),
		Status:           status,
		Variants:         variants,
		ColorImages:      gallery,
	}
	Recompute(product)

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.CreateProduct(ctx, product)
		if err != nil {
			return err
		}
		createdID = created.ID
		return nil
	}); err != nil {
		if db.IsUniqueViolation(err, "idx_products_slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists").
				WithDetails(map[string]any{"slug": slug})
		}
		if db.IsUniqueViolation(err, "idx_variants_sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a variant sku is already in use")
		}
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	return s.loadProjection(ctx, createdID, false)
}

// GetProduct loads one product and records the view. Gallery image lists are
// summarized unless includeAllImages is set.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID, includeAllImages bool) (*ProductDTO, error) {
	product, err := s.getAggregate(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViewCount(ctx, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: increment view count")
	}
	product.ViewCount++

	return NewProductDTO(product, !includeAllImages), nil
}

// ListSummaries serves one filtered, sorted page of active products.
func (s *service) ListSummaries(ctx context.Context, input ListInput) (*SummaryListResult, error) {
	rows, total, err := s.repo.ListSummaries(ctx, input)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	items := make([]SummaryDTO, len(rows))
	for i := range rows {
		items[i] = NewSummaryDTO(&rows[i])
	}
	return &SummaryListResult{
		Items: items,
		Meta:  pagination.MetaFor(input.Pagination, total),
	}, nil
}

// GetImagesForColor pages through one color's images in sort order.
func (s *service) GetImagesForColor(ctx context.Context, productID uuid.UUID, color string, page pagination.Params) (*ColorImagesPage, error) {
	product, err := s.getAggregate(ctx, productID)
	if err != nil {
		return nil, err
	}

	entry := findColorEntry(product, color)
	if entry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "color not found for product").
			WithDetails(map[string]any{"color": color})
	}

	params := page.Normalize()
	start := page.Offset()
	end := start + params.Limit
	total := int64(len(entry.Images))

	var slice []models.ProductImage
	if start < len(entry.Images) {
		if end > len(entry.Images) {
			end = len(entry.Images)
		}
		slice = entry.Images[start:end]
	}

	images := make([]ImageDTO, len(slice))
	for i := range slice {
		images[i] = NewImageDTO(&slice[i])
	}
	return &ColorImagesPage{
		Color:  entry.Color,
		Images: images,
		Meta:   pagination.MetaFor(page, total),
	}, nil
}

// AddImagesToColor appends images to an existing color entry, or creates the
// entry when the product has no gallery for that color yet.
func (s *service) AddImagesToColor(ctx context.Context, productID uuid.UUID, color string, colorCode *string, images []ImageInput) (*ProductDTO, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color name is required")
	}
	if len(images) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required")
	}

	return s.mutateGallery(ctx, productID, func(ctx context.Context, txRepo *Repository, product *models.Product) error {
		entry := findColorEntry(product, color)
		if entry == nil {
			created := models.ColorImage{
				ProductID: productID,
				Color:     color,
				ColorCode: colorCode,
			}
			if err := txRepo.SaveColorImage(ctx, &created); err != nil {
				return err
			}
			product.ColorImages = append(product.ColorImages, created)
			entry = &product.ColorImages[len(product.ColorImages)-1]
		} else if colorCode != nil {
			entry.ColorCode = colorCode
		}

		before := len(entry.Images)
		if err := AppendImages(entry, images); err != nil {
			return err
		}

		added := make([]models.ProductImage, 0, len(entry.Images)-before)
		for i := range entry.Images {
			if entry.Images[i].ID == uuid.Nil {
				added = append(added, entry.Images[i])
			}
		}
		if err := txRepo.CreateImages(ctx, added); err != nil {
			return err
		}

		entry.Thumbnail = entry.PrimaryImage
		return txRepo.SaveColorImage(ctx, entry)
	})
}

// ReorderImages rewrites one color's sort order following the supplied ids.
func (s *service) ReorderImages(ctx context.Context, productID uuid.UUID, color string, orderedIDs []uuid.UUID) (*ProductDTO, error) {
	if len(orderedIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image_ids is required")
	}

	return s.mutateGallery(ctx, productID, func(ctx context.Context, txRepo *Repository, product *models.Product) error {
		entry := findColorEntry(product, color)
		if entry == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "color not found for product").
				WithDetails(map[string]any{"color": color})
		}

		ReorderImages(entry, orderedIDs)
		if err := txRepo.UpdateImageOrders(ctx, entry.Images); err != nil {
			return err
		}

		FinalizeGalleryEntry(entry)
		return txRepo.SaveColorImage(ctx, entry)
	})
}

// DeleteImage removes one gallery image from the named color, reassigning the
// primary pointer when needed. The stored file is cleaned up best effort after
// commit.
func (s *service) DeleteImage(ctx context.Context, productID uuid.UUID, color string, imageID uuid.UUID) (*ProductDTO, error) {
	var removedURL string

	dto, err := s.mutateGallery(ctx, productID, func(ctx context.Context, txRepo *Repository, product *models.Product) error {
		entry := findColorEntry(product, color)
		if entry == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "color not found for product").
				WithDetails(map[string]any{"color": color})
		}

		removed, err := DeleteImage(entry, imageID)
		if err != nil {
			return err
		}
		removedURL = removed.URL

		if err := txRepo.DeleteImage(ctx, removed.ID); err != nil {
			return err
		}
		entry.Thumbnail = entry.PrimaryImage
		return txRepo.SaveColorImage(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	if s.files != nil && removedURL != "" {
		_ = s.files.Remove(ctx, removedURL)
	}
	return dto, nil
}

// mutateGallery runs the load, mutate, recompute, versioned-save cycle shared
// by every gallery mutation.
func (s *service) mutateGallery(ctx context.Context, productID uuid.UUID, mutate func(ctx context.Context, txRepo *Repository, product *models.Product) error) (*ProductDTO, error) {
	product, err := s.getAggregate(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := mutate(ctx, txRepo, product); err != nil {
			return err
		}
		Recompute(product)
		return txRepo.SaveDerivedVersioned(ctx, product)
	}); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product was modified concurrently, retry the request")
		}
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product gallery")
	}

	return s.loadProjection(ctx, productID, true)
}

func (s *service) getAggregate(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetAggregate(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}

func (s *service) loadProjection(ctx context.Context, productID uuid.UUID, includeAllImages bool) (*ProductDTO, error) {
	product, err := s.repo.GetAggregate(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload product")
	}
	return NewProductDTO(product, !includeAllImages), nil
}

func (s *service) ensureUser(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity required")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if !user.IsActive {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user account is disabled")
	}
	return nil
}

func validateCreateInput(input CreateProductInput) error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Category) == "" {
		missing = append(missing, "category")
	}
	if input.BasePrice == nil {
		missing = append(missing, "base_price")
	}
	if len(input.Variants) == 0 {
		missing = append(missing, "variants")
	}
	if len(missing) > 0 {
		return pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		).WithDetails(map[string]any{"missing": missing})
	}
	if input.BasePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "base_price cannot be negative")
	}
	return nil
}

func resolveProductStatus(requested *string) (enums.ProductStatus, error) {
	if requested == nil || *requested == "" {
		return enums.ProductStatusActive, nil
	}
	status, err := enums.ParseProductStatus(*requested)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	return status, nil
}

func findColorEntry(product *models.Product, color string) *models.ColorImage {
	for i := range product.ColorImages {
		if strings.EqualFold(product.ColorImages[i].Color, color) {
			return &product.ColorImages[i]
		}
	}
	return nil
}
