package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

// CreateAttributeCommand carries the fields accepted when defining a category
// attribute.
type CreateAttributeCommand struct {
	CategoryID uuid.UUID
	AttrName   string
	AttrSel    string
	AttrWrite  string
	AttrVals   []string
	// ValsSet reports whether attr_vals was present in the request at all,
	// so an explicit empty list can be told apart from an omitted field.
	ValsSet bool
}

// UpdateAttributeCommand carries the mutable attribute fields.
type UpdateAttributeCommand struct {
	AttrName  *string
	AttrSel   *string
	AttrWrite *string
	AttrVals  []string
	ValsSet   bool
}

type AttributeService interface {
	Create(ctx context.Context, cmd CreateAttributeCommand) (*types.CategoryAttribute, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateAttributeCommand) (*types.CategoryAttribute, error)
	Get(ctx context.Context, id uuid.UUID) (*types.CategoryAttribute, error)
	List(ctx context.Context, categoryID *uuid.UUID, offset, limit int) ([]*types.CategoryAttribute, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type attributeService struct {
	db            *gorm.DB
	log           *logger.Logger
	attributeRepo repos.AttributeRepo
	categoryRepo  repos.CategoryRepo
}

func NewAttributeService(db *gorm.DB, baseLog *logger.Logger, attributeRepo repos.AttributeRepo, categoryRepo repos.CategoryRepo) AttributeService {
	serviceLog := baseLog.With("service", "AttributeService")
	return &attributeService{db: db, log: serviceLog, attributeRepo: attributeRepo, categoryRepo: categoryRepo}
}

func validateAttrSel(sel string) error {
	if sel != types.AttrSelOnly && sel != types.AttrSelMany {
		return apierr.ValidationField("attr_sel", "Must be 'only' or 'many'.")
	}
	return nil
}

func validateAttrWrite(write string) error {
	if write != types.AttrWriteManual && write != types.AttrWriteList {
		return apierr.ValidationField("attr_write", "Must be 'manual' or 'list'.")
	}
	return nil
}

// validateAttrVals enforces the write-type/values matrix: list attributes
// require values, manual attributes forbid them.
func validateAttrVals(write string, vals []string, valsSet bool) error {
	switch write {
	case types.AttrWriteList:
		if !valsSet || len(vals) == 0 {
			return apierr.ValidationField("attr_vals", "Must provide values for 'list' write type.")
		}
	case types.AttrWriteManual:
		if valsSet && len(vals) > 0 {
			return apierr.ValidationField("attr_vals", "Cannot provide values for 'manual' write type.")
		}
	}
	return nil
}

func encodeAttrVals(vals []string) (datatypes.JSON, error) {
	if len(vals) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(vals)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (as *attributeService) Create(ctx context.Context, cmd CreateAttributeCommand) (*types.CategoryAttribute, error) {
	if cmd.AttrName == "" {
		return nil, apierr.ValidationField("attr_name", "Name is required.")
	}
	sel := cmd.AttrSel
	if sel == "" {
		sel = types.AttrSelOnly
	}
	write := cmd.AttrWrite
	if write == "" {
		write = types.AttrWriteManual
	}
	if err := validateAttrSel(sel); err != nil {
		return nil, err
	}
	if err := validateAttrWrite(write); err != nil {
		return nil, err
	}
	if err := validateAttrVals(write, cmd.AttrVals, cmd.ValsSet); err != nil {
		return nil, err
	}

	var created *types.CategoryAttribute
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := as.categoryRepo.GetByID(ctx, tx, cmd.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil || cat.IsDeleted {
			return apierr.ValidationField("category", "Category does not exist or is deleted.")
		}
		taken, err := as.attributeRepo.NameExistsForCategory(ctx, tx, cmd.CategoryID, cmd.AttrName, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return apierr.ValidationField("attr_name", "Attribute name must be unique for this category.")
		}
		vals, err := encodeAttrVals(cmd.AttrVals)
		if err != nil {
			return err
		}
		attr := &types.CategoryAttribute{
			CategoryID: cmd.CategoryID,
			AttrName:   cmd.AttrName,
			AttrSel:    sel,
			AttrWrite:  write,
			AttrVals:   vals,
		}
		created, err = as.attributeRepo.Create(ctx, tx, attr)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	as.log.Info("attribute created", "attribute_id", created.ID, "category_id", created.CategoryID)
	return created, nil
}

func (as *attributeService) Update(ctx context.Context, id uuid.UUID, cmd UpdateAttributeCommand) (*types.CategoryAttribute, error) {
	var updated *types.CategoryAttribute
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attr, err := as.attributeRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if attr == nil {
			return apierr.NotFound("attribute")
		}

		sel := attr.AttrSel
		if cmd.AttrSel != nil {
			sel = *cmd.AttrSel
		}
		write := attr.AttrWrite
		if cmd.AttrWrite != nil {
			write = *cmd.AttrWrite
		}
		if err := validateAttrSel(sel); err != nil {
			return err
		}
		if err := validateAttrWrite(write); err != nil {
			return err
		}

		// Reconstruct the effective values to validate the matrix against
		// the post-update state, not just the request payload.
		vals := cmd.AttrVals
		valsSet := cmd.ValsSet
		if !valsSet && len(attr.AttrVals) > 0 {
			if err := json.Unmarshal(attr.AttrVals, &vals); err != nil {
				return err
			}
			valsSet = true
		}
		if err := validateAttrVals(write, vals, valsSet); err != nil {
			return err
		}

		if cmd.AttrName != nil && *cmd.AttrName != attr.AttrName {
			taken, err := as.attributeRepo.NameExistsForCategory(ctx, tx, attr.CategoryID, *cmd.AttrName, attr.ID)
			if err != nil {
				return err
			}
			if taken {
				return apierr.ValidationField("attr_name", "Attribute name must be unique for this category.")
			}
			attr.AttrName = *cmd.AttrName
		}
		attr.AttrSel = sel
		attr.AttrWrite = write
		if cmd.ValsSet {
			encoded, err := encodeAttrVals(cmd.AttrVals)
			if err != nil {
				return err
			}
			attr.AttrVals = encoded
		}
		if err := as.attributeRepo.Update(ctx, tx, attr); err != nil {
			return err
		}
		updated = attr
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (as *attributeService) Get(ctx context.Context, id uuid.UUID) (*types.CategoryAttribute, error) {
	attr, err := as.attributeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, apierr.NotFound("attribute")
	}
	return attr, nil
}

func (as *attributeService) List(ctx context.Context, categoryID *uuid.UUID, offset, limit int) ([]*types.CategoryAttribute, int64, error) {
	if categoryID != nil {
		cat, err := as.categoryRepo.GetByID(ctx, nil, *categoryID)
		if err != nil {
			return nil, 0, err
		}
		if cat == nil || cat.IsDeleted {
			return nil, 0, apierr.ValidationField("category", "Category does not exist or is deleted.")
		}
	}
	return as.attributeRepo.List(ctx, nil, categoryID, offset, limit)
}

func (as *attributeService) Delete(ctx context.Context, id uuid.UUID) error {
	attr, err := as.attributeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if attr == nil {
		return apierr.NotFound("attribute")
	}
	if err := as.attributeRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	as.log.Info("attribute deleted", "attribute_id", id)
	return nil
}
