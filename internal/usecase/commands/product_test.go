//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/pkg/patch"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/shared"
	"zaylux-store/tests/common/builder"
	queriesmock "zaylux-store/tests/mock/queries"
	sharedmock "zaylux-store/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ProductCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	products  *sharedmock.MockProductRepository
	readStore *queriesmock.MockProductReadStore
	sut       commands.ProductCommands
}

func TestProductCommandsSuite(t *testing.T) {
	suite.Run(t, new(ProductCommandsTestSuite))
}

func (s *ProductCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.products = sharedmock.NewMockProductRepository(s.ctrl)
	s.readStore = queriesmock.NewMockProductReadStore(s.ctrl)

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().Products().Return(s.products).AnyTimes()

	s.sut = commands.NewProductCommands(s.uow, s.readStore, clock.NewFixed(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func (s *ProductCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ProductCommandsTestSuite) TestCreate() {
	s.Run("success", func() {
		b := builder.NewProductBuilder()
		var created *catalog.Product
		s.products.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *catalog.Product) error {
				created = p
				return nil
			})
		s.readStore.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(b.BuildView(), nil)

		_, err := s.sut.Create(context.Background(), commands.ProductInput{
			NameEN:    b.NameEN,
			NameAR:    b.NameAR,
			Category:  "Perfume",
			Price:     b.Price,
			Quantity:  b.Stock,
			Images:    b.Images,
			IsVisible: true,
		})

		s.Require().NoError(err)
		s.Require().NotNil(created)
		s.Equal(catalog.CategoryPerfume, created.Category())
		s.Equal(10, created.Stock())
	})

	s.Run("unknown category", func() {
		_, err := s.sut.Create(context.Background(), commands.ProductInput{
			NameEN:   "Phone",
			NameAR:   "هاتف",
			Category: "phone",
			Price:    money.MustParse("10"),
		})

		s.True(errs.Is(err, commands.ErrInvalidProduct))
		s.Equal(catalog.ErrInvalidCategory.Error(), errs.Message(err))
	})

	s.Run("non-positive price", func() {
		_, err := s.sut.Create(context.Background(), commands.ProductInput{
			NameEN:   "Falcon X",
			NameAR:   "فالكون",
			Category: "drone",
			Price:    money.Zero,
		})

		s.True(errs.Is(err, commands.ErrInvalidProduct))
	})
}

func (s *ProductCommandsTestSuite) TestUpdate() {
	s.Run("patches only the provided fields", func() {
		b := builder.NewProductBuilder()
		original := money.MustParse("400.00")
		b.OriginalPrice = &original
		stored := b.BuildStored()
		s.products.EXPECT().FindByIDForUpdate(gomock.Any(), b.ID).Return(stored, nil)
		s.products.EXPECT().Update(gomock.Any(), stored).Return(nil)
		s.readStore.EXPECT().FindByID(gomock.Any(), b.ID).Return(b.BuildView(), nil)

		qty := 3
		_, err := s.sut.Update(context.Background(), b.ID, commands.ProductPatch{
			Quantity:      &qty,
			OriginalPrice: patch.Optional[money.Money]{Set: true},
		})

		s.Require().NoError(err)
		s.Equal(3, stored.Stock())
		s.Nil(stored.OriginalPrice())
		s.Equal(b.NameEN, stored.Name().EN)
		s.True(stored.Price().Equal(b.Price))
	})

	s.Run("negative stock is invalid", func() {
		b := builder.NewProductBuilder()
		s.products.EXPECT().FindByIDForUpdate(gomock.Any(), b.ID).Return(b.BuildStored(), nil)

		qty := -1
		_, err := s.sut.Update(context.Background(), b.ID, commands.ProductPatch{Quantity: &qty})

		s.True(errs.Is(err, commands.ErrInvalidProduct))
	})

	s.Run("missing product", func() {
		id := uuid.New()
		s.products.EXPECT().FindByIDForUpdate(gomock.Any(), id).Return(nil, infra.NotFound("product"))

		_, err := s.sut.Update(context.Background(), id, commands.ProductPatch{})

		s.True(errs.Is(err, commands.ErrProductNotFound))
	})
}

func (s *ProductCommandsTestSuite) TestDelete() {
	id := uuid.New()
	s.products.EXPECT().Delete(gomock.Any(), id).Return(infra.NotFound("product"))

	err := s.sut.Delete(context.Background(), id)

	s.True(errs.Is(err, commands.ErrProductNotFound))
}
