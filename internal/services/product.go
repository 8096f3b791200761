package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

// CreateProductCommand carries the fields accepted when creating a product.
type CreateProductCommand struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Weight      float64
	CategoryIDs []uuid.UUID
}

// UpdateProductCommand carries the mutable product fields. CategoriesSet
// distinguishes "replace category links" from "leave them alone".
type UpdateProductCommand struct {
	Name          *string
	Description   *string
	Price         *float64
	Quantity      *int
	Weight        *float64
	State         *int
	HotQuantity   *int
	IsPromote     *bool
	CategoryIDs   []uuid.UUID
	CategoriesSet bool
}

type ProductService interface {
	Create(ctx context.Context, cmd CreateProductCommand) (*types.Product, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateProductCommand) (*types.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Product, error)
	List(ctx context.Context, offset, limit int) ([]*types.Product, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	db           *gorm.DB
	log          *logger.Logger
	productRepo  repos.ProductRepo
	categoryRepo repos.CategoryRepo
}

func NewProductService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo, categoryRepo repos.CategoryRepo) ProductService {
	serviceLog := baseLog.With("service", "ProductService")
	return &productService{db: db, log: serviceLog, productRepo: productRepo, categoryRepo: categoryRepo}
}

// resolveCategories loads the referenced categories and rejects missing or
// soft-deleted ones.
func (prs *productService) resolveCategories(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cats, err := prs.categoryRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uuid.UUID]*types.Category, len(cats))
	for _, cat := range cats {
		found[cat.ID] = cat
	}
	for _, id := range ids {
		cat, ok := found[id]
		if !ok || cat.IsDeleted {
			return nil, apierr.ValidationField("categories", fmt.Sprintf("Category %s does not exist or is deleted.", id))
		}
	}
	return cats, nil
}

func (prs *productService) Create(ctx context.Context, cmd CreateProductCommand) (*types.Product, error) {
	if cmd.Name == "" {
		return nil, apierr.ValidationField("name", "Name is required.")
	}
	if cmd.Price < 0 {
		return nil, apierr.ValidationField("price", "Price cannot be negative.")
	}
	if cmd.Quantity < 0 {
		return nil, apierr.ValidationField("quantity", "Quantity cannot be negative.")
	}
	var created *types.Product
	txErr := prs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats, err := prs.resolveCategories(ctx, tx, cmd.CategoryIDs)
		if err != nil {
			return err
		}
		product := &types.Product{
			Name:        cmd.Name,
			Description: cmd.Description,
			Price:       cmd.Price,
			Quantity:    cmd.Quantity,
			Weight:      cmd.Weight,
			State:       types.ProductStateUnconfirmed,
		}
		created, err = prs.productRepo.Create(ctx, tx, product)
		if err != nil {
			return err
		}
		if len(cats) > 0 {
			if err := prs.productRepo.ReplaceCategories(ctx, tx, created, cats); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	prs.log.Info("product created", "product_id", created.ID)
	return prs.Get(ctx, created.ID)
}

func (prs *productService) Update(ctx context.Context, id uuid.UUID, cmd UpdateProductCommand) (*types.Product, error) {
	txErr := prs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := prs.productRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return apierr.NotFound("product")
		}
		if cmd.Name != nil {
			product.Name = *cmd.Name
		}
		if cmd.Description != nil {
			product.Description = *cmd.Description
		}
		if cmd.Price != nil {
			if *cmd.Price < 0 {
				return apierr.ValidationField("price", "Price cannot be negative.")
			}
			product.Price = *cmd.Price
		}
		if cmd.Quantity != nil {
			if *cmd.Quantity < 0 {
				return apierr.ValidationField("quantity", "Quantity cannot be negative.")
			}
			product.Quantity = *cmd.Quantity
		}
		if cmd.Weight != nil {
			product.Weight = *cmd.Weight
		}
		if cmd.State != nil {
			switch *cmd.State {
			case types.ProductStateUnconfirmed, types.ProductStatePending, types.ProductStateConfirmed:
				product.State = *cmd.State
			default:
				return apierr.ValidationField("state", "Invalid product state.")
			}
		}
		if cmd.HotQuantity != nil {
			product.HotQuantity = *cmd.HotQuantity
		}
		if cmd.IsPromote != nil {
			product.IsPromote = *cmd.IsPromote
		}
		if err := prs.productRepo.Update(ctx, tx, product); err != nil {
			return err
		}
		if cmd.CategoriesSet {
			cats, err := prs.resolveCategories(ctx, tx, cmd.CategoryIDs)
			if err != nil {
				return err
			}
			if err := prs.productRepo.ReplaceCategories(ctx, tx, product, cats); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return prs.Get(ctx, id)
}

func (prs *productService) Get(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	product, err := prs.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.IsDeleted {
		return nil, apierr.NotFound("product")
	}
	return product, nil
}

func (prs *productService) List(ctx context.Context, offset, limit int) ([]*types.Product, int64, error) {
	return prs.productRepo.List(ctx, nil, false, offset, limit)
}

func (prs *productService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	product, err := prs.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if product == nil || product.IsDeleted {
		return apierr.NotFound("product")
	}
	if err := prs.productRepo.SetDeleted(ctx, nil, id, true); err != nil {
		return err
	}
	prs.log.Info("product soft-deleted", "product_id", id)
	return nil
}
