package commands

import (
	"context"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/pkg/patch"
	"zaylux-store/internal/usecase/queries"
	"zaylux-store/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidProduct = errs.New("invalid product")

type ProductInput struct {
	NameEN        string
	NameAR        string
	DescriptionEN string
	DescriptionAR string
	Category      string
	Price         money.Money
	OriginalPrice *money.Money
	Quantity      int
	Images        []string
	IsVisible     bool
}

// ProductPatch leaves nil fields untouched.
type ProductPatch struct {
	NameEN        *string
	NameAR        *string
	DescriptionEN *string
	DescriptionAR *string
	Category      *string
	Price         *money.Money
	OriginalPrice patch.Optional[money.Money]
	Quantity      *int
	Images        *[]string
	IsVisible     *bool
}

type ProductCommands interface {
	Create(ctx context.Context, in ProductInput) (*queries.ProductView, error)
	Update(ctx context.Context, id uuid.UUID, p ProductPatch) (*queries.ProductView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.ProductReadStore
	clock     clock.Clock
}

func NewProductCommands(uow shared.UnitOfWork, readStore queries.ProductReadStore, clk clock.Clock) ProductCommands {
	return &productCommandsImpl{uow: uow, readStore: readStore, clock: clk}
}

func (c *productCommandsImpl) Create(ctx context.Context, in ProductInput) (*queries.ProductView, error) {
	category, err := catalog.ParseCategory(in.Category)
	if err != nil {
		return nil, invalidProduct(err)
	}
	p, err := catalog.NewProduct(catalog.NewProductParams{
		Name:          catalog.LocalizedText{EN: in.NameEN, AR: in.NameAR},
		Description:   catalog.LocalizedText{EN: in.DescriptionEN, AR: in.DescriptionAR},
		Category:      category,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Stock:         in.Quantity,
		Images:        in.Images,
		Visible:       in.IsVisible,
	}, c.clock.Now())
	if err != nil {
		return nil, invalidProduct(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Create(ctx, p)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return c.readStore.FindByID(ctx, p.ID())
}

func (c *productCommandsImpl) Update(ctx context.Context, id uuid.UUID, pt ProductPatch) (*queries.ProductView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Products().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		params := p.Params()
		params.Name.EN = patch.Coalesce(pt.NameEN, params.Name.EN)
		params.Name.AR = patch.Coalesce(pt.NameAR, params.Name.AR)
		params.Description.EN = patch.Coalesce(pt.DescriptionEN, params.Description.EN)
		params.Description.AR = patch.Coalesce(pt.DescriptionAR, params.Description.AR)
		params.Price = patch.Coalesce(pt.Price, params.Price)
		params.OriginalPrice = pt.OriginalPrice.ApplyTo(params.OriginalPrice)
		params.Stock = patch.Coalesce(pt.Quantity, params.Stock)
		params.Images = patch.Coalesce(pt.Images, params.Images)
		params.Visible = patch.Coalesce(pt.IsVisible, params.Visible)
		if pt.Category != nil {
			category, err := catalog.ParseCategory(*pt.Category)
			if err != nil {
				return invalidProduct(err)
			}
			params.Category = category
		}

		if err := p.Update(params); err != nil {
			return invalidProduct(err)
		}
		return tx.Products().Update(ctx, p)
	})
	if err != nil {
		return nil, mapProductWriteErr(err)
	}
	return c.readStore.FindByID(ctx, id)
}

func (c *productCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		return mapProductWriteErr(err)
	}
	return nil
}

func invalidProduct(err error) error {
	return errs.WithMessage(errs.Mark(err, ErrInvalidProduct), err.Error())
}

func mapProductWriteErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrProductNotFound
	case errs.Is(err, ErrInvalidProduct):
		return err
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
