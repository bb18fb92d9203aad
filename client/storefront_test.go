package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/config"
	"github.com/techwithPranab/GrocerySellingWeb-sub001/models"
	"github.com/techwithPranab/GrocerySellingWeb-sub001/routes"
)

// End-to-end: the client SDK talking to the real backend over an in-memory
// database.

func newStorefront(t *testing.T) (*Session, *CartManager, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Offer{},
		&models.Review{}, &models.Order{}, &models.OrderItem{},
	))

	cfg := config.Config{JWTSecret: "test-secret"}
	r := gin.New()
	routes.SetupRoutes(r, db, cfg)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	notifier := &recordingNotifier{}
	api := New(Config{BaseURL: srv.URL + "/api", Notifier: notifier})
	session := NewSession(api)
	manager := NewCartManager(api, session, notifier)
	manager.WatchSession(session)

	return session, manager, db
}

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
}

func TestStorefrontAddToCartFlow(t *testing.T) {
	session, manager, db := newStorefront(t)
	ctx := context.Background()

	seedProduct(t, db, models.Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l", Stock: 50})

	_, err := session.Register(ctx, "Pat", "pat@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, manager.AddToCart(ctx, Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l"}, 1))

	assert.Equal(t, 1, manager.ItemsCount())
	assert.Equal(t, 1, manager.GetItemQuantity("p1"))

	cart := manager.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3.00, cart.Items[0].Price)
	assert.Equal(t, 3.00, cart.Items[0].Subtotal)
	assert.Equal(t, 3.00, cart.Total)
}

func TestStorefrontDiscountedPriceIsStored(t *testing.T) {
	session, manager, db := newStorefront(t)
	ctx := context.Background()

	seedProduct(t, db, models.Product{
		ID: "p2", Name: "Cheese", Price: 10.00, DiscountedPrice: 8.00, Unit: "kg", Stock: 10,
	})

	_, err := session.Register(ctx, "Pat", "pat@example.com", "secret1")
	require.NoError(t, err)

	product := Product{ID: "p2", Name: "Cheese", Price: 10.00, DiscountedPrice: 8.00, Unit: "kg"}
	require.NoError(t, manager.AddToCart(ctx, product, 2))

	cart := manager.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 8.00, cart.Items[0].Price)
	assert.Equal(t, 16.00, cart.Items[0].Subtotal)
	assert.Equal(t, 16.00, cart.Total)
}

func TestStorefrontUpdateQuantityToZero(t *testing.T) {
	session, manager, db := newStorefront(t)
	ctx := context.Background()

	seedProduct(t, db, models.Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l", Stock: 50})

	_, err := session.Register(ctx, "Pat", "pat@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, manager.AddToCart(ctx, Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l"}, 2))
	require.Equal(t, 2, manager.GetItemQuantity("p1"))

	require.NoError(t, manager.UpdateQuantity(ctx, "p1", 0))
	assert.Equal(t, 0, manager.GetItemQuantity("p1"))
	assert.Equal(t, 0.00, manager.Cart().Total)
}

func TestStorefrontAddIncrementsExistingLine(t *testing.T) {
	session, manager, db := newStorefront(t)
	ctx := context.Background()

	seedProduct(t, db, models.Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l", Stock: 50})

	_, err := session.Register(ctx, "Pat", "pat@example.com", "secret1")
	require.NoError(t, err)

	p := Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l"}
	require.NoError(t, manager.AddToCart(ctx, p, 1))
	require.NoError(t, manager.AddToCart(ctx, p, 2))

	assert.Equal(t, 3, manager.GetItemQuantity("p1"))
	assert.Equal(t, 9.00, manager.Cart().Total)
	require.Len(t, manager.Cart().Items, 1) // one line per product
}

func TestStorefrontLogoutDropsCart(t *testing.T) {
	session, manager, db := newStorefront(t)
	ctx := context.Background()

	seedProduct(t, db, models.Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l", Stock: 50})

	_, err := session.Register(ctx, "Pat", "pat@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, manager.AddToCart(ctx, Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l"}, 2))

	session.Logout()

	assert.Equal(t, 0, manager.ItemsCount())
	assert.False(t, session.IsAuthenticated())

	// Signing back in reloads the authoritative cart from the server.
	_, err = session.Login(ctx, "pat@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, 2, manager.GetItemQuantity("p1"))
}

func TestStorefrontStaleTokenBecomesAnonymous(t *testing.T) {
	session, manager, _ := newStorefront(t)
	ctx := context.Background()

	require.NoError(t, session.api.Tokens().SetToken("not-a-real-jwt"))
	session.Start(ctx)

	assert.Equal(t, StateAnonymous, session.CurrentState())
	_, held := session.api.Tokens().Token()
	assert.False(t, held)
	assert.ErrorIs(t, manager.AddToCart(ctx, Product{ID: "p1", Name: "Milk", Price: 3.00}, 1), ErrNotSignedIn)
}

func TestStorefrontIdentitySwitchReloadsCart(t *testing.T) {
	session, manager, db := newStorefront(t)
	ctx := context.Background()

	seedProduct(t, db, models.Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l", Stock: 50})

	_, err := session.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, manager.AddToCart(ctx, Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l"}, 2))
	require.Equal(t, 2, manager.GetItemQuantity("p1"))

	// Bob signs in without Alice logging out; the mirror must not keep
	// showing Alice's items under his identity.
	_, err = session.Register(ctx, "Bob", "bob@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, 0, manager.GetItemQuantity("p1"))
	assert.Equal(t, 0, manager.ItemsCount())

	// And Alice still gets her cart back when she returns.
	_, err = session.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, 2, manager.GetItemQuantity("p1"))
}
