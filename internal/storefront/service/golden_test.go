package service

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogDomain "github.com/zivra/storefront/internal/catalog/domain"
	"github.com/zivra/storefront/internal/storefront/repository"
	"github.com/zivra/storefront/internal/storefront/repository/mocks"
)

// Pins the exact bytes of the three persisted records. The format is shared
// with previously persisted sessions, so any diff here is a breaking change.
func TestPersistedRecordFormat(t *testing.T) {
	cat := catalogDomain.NewCatalog([]catalogDomain.Product{
		{ID: "walnut-tray", Name: "Walnut Tray", Price: 100, InitialQty: 3},
		{ID: "ceramic-mug", Name: "Ceramic Mug", Price: 250, InitialQty: 2},
	})

	saved := map[string][]byte{}
	mockRepo := new(mocks.MockStateRepository)
	mockRepo.On("Save", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			value := args.Get(2).([]byte)
			saved[args.String(1)] = append([]byte(nil), value...)
		}).
		Return(nil)

	svc := NewStorefrontService(cat, mockRepo)
	ctx := context.TODO()
	require.NoError(t, svc.AddItem(ctx, "walnut-tray"))
	require.NoError(t, svc.AddItem(ctx, "walnut-tray"))
	require.NoError(t, svc.AddItem(ctx, "ceramic-mug"))
	_, err := svc.ToggleWishlist(ctx, "ceramic-mug")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "stock", saved[repository.KeyStock])
	g.Assert(t, "cart", saved[repository.KeyCart])
	g.Assert(t, "wishlist", saved[repository.KeyWish])
}
