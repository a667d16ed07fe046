package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/order"
	"storefront/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
}

// Stubs hold func fields so each test overrides only what it exercises.

type stubUsers struct {
	create         func(ctx context.Context, u *user.User) error
	getByID        func(ctx context.Context, id string) (*user.User, error)
	getByEmail     func(ctx context.Context, email string) (*user.User, error)
	touchLastLogin func(ctx context.Context, id string) error
}

func (s *stubUsers) Create(ctx context.Context, u *user.User) error { return s.create(ctx, u) }
func (s *stubUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.getByID(ctx, id)
}
func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getByEmail(ctx, email)
}
func (s *stubUsers) TouchLastLogin(ctx context.Context, id string) error {
	if s.touchLastLogin == nil {
		return nil
	}
	return s.touchLastLogin(ctx, id)
}

type stubCarts struct {
	get        func(ctx context.Context, userID string) (*cart.Cart, error)
	addItem    func(ctx context.Context, userID, productID string, quantity int) (*cart.Item, error)
	updateItem func(ctx context.Context, userID, itemID string, quantity int) (*cart.Item, error)
	removeItem func(ctx context.Context, userID, itemID string) error
}

func (s *stubCarts) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	return s.get(ctx, userID)
}
func (s *stubCarts) AddItem(ctx context.Context, userID, productID string, quantity int) (*cart.Item, error) {
	return s.addItem(ctx, userID, productID, quantity)
}
func (s *stubCarts) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*cart.Item, error) {
	return s.updateItem(ctx, userID, itemID, quantity)
}
func (s *stubCarts) RemoveItem(ctx context.Context, userID, itemID string) error {
	return s.removeItem(ctx, userID, itemID)
}

type stubCheckout struct {
	run func(ctx context.Context, userID string, shipping *order.ShippingInfo, payment *order.PaymentInfo) (*order.Order, error)
}

func (s *stubCheckout) Run(ctx context.Context, userID string, shipping *order.ShippingInfo, payment *order.PaymentInfo) (*order.Order, error) {
	return s.run(ctx, userID, shipping, payment)
}

func testUser() *user.User {
	return &user.User{ID: "u1", Email: "ada@example.com", FirstName: "Ada", IsActive: true}
}

// withUser bypasses token auth so handler tests focus on handler logic.
func withUser(u *user.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandlerCreated(t *testing.T) {
	var gotUser string
	var gotShipping *order.ShippingInfo
	h := NewHandler(Deps{Checkout: &stubCheckout{
		run: func(_ context.Context, userID string, shipping *order.ShippingInfo, _ *order.PaymentInfo) (*order.Order, error) {
			gotUser = userID
			gotShipping = shipping
			return &order.Order{ID: "ord-1", UserID: userID, Status: order.StatusPending, TotalCents: 2500}, nil
		},
	}})

	r := gin.New()
	r.POST("/checkout", withUser(testUser()), h.Checkout)

	w := doJSON(r, http.MethodPost, "/checkout", CheckoutRequest{
		Shipping: &order.ShippingInfo{City: "London"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u1", gotUser)
	require.NotNil(t, gotShipping)
	assert.Equal(t, "London", gotShipping.City)

	var o order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))
	assert.Equal(t, "ord-1", o.ID)
	assert.Equal(t, order.StatusPending, o.Status)
}

func TestCheckoutHandlerNoBody(t *testing.T) {
	var gotShipping *order.ShippingInfo
	h := NewHandler(Deps{Checkout: &stubCheckout{
		run: func(_ context.Context, userID string, shipping *order.ShippingInfo, _ *order.PaymentInfo) (*order.Order, error) {
			gotShipping = shipping
			return &order.Order{ID: "ord-1", UserID: userID, Status: order.StatusPending}, nil
		},
	}})

	r := gin.New()
	r.POST("/checkout", withUser(testUser()), h.Checkout)

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, gotShipping)
}

func TestCheckoutHandlerEmptyCart(t *testing.T) {
	h := NewHandler(Deps{Checkout: &stubCheckout{
		run: func(context.Context, string, *order.ShippingInfo, *order.PaymentInfo) (*order.Order, error) {
			return nil, order.ErrEmptyCart
		},
	}})

	r := gin.New()
	r.POST("/checkout", withUser(testUser()), h.Checkout)

	w := doJSON(r, http.MethodPost, "/checkout", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Cart is empty"}`, w.Body.String())
}

func TestCheckoutHandlerInternalError(t *testing.T) {
	h := NewHandler(Deps{Checkout: &stubCheckout{
		run: func(context.Context, string, *order.ShippingInfo, *order.PaymentInfo) (*order.Order, error) {
			return nil, errors.New("tx deadlock")
		},
	}})

	r := gin.New()
	r.POST("/checkout", withUser(testUser()), h.Checkout)

	w := doJSON(r, http.MethodPost, "/checkout", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
}

func TestAddCartItem(t *testing.T) {
	h := NewHandler(Deps{Carts: &stubCarts{
		addItem: func(_ context.Context, userID, productID string, quantity int) (*cart.Item, error) {
			assert.Equal(t, "u1", userID)
			return &cart.Item{ID: "ci1", ProductID: productID, Quantity: quantity}, nil
		},
	}})

	r := gin.New()
	r.POST("/cart/items", withUser(testUser()), h.AddCartItem)

	w := doJSON(r, http.MethodPost, "/cart/items", AddCartItemRequest{ProductID: "p1", Quantity: 2})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"ci1","productId":"p1","quantity":2}`, w.Body.String())
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	h := NewHandler(Deps{Carts: &stubCarts{
		addItem: func(context.Context, string, string, int) (*cart.Item, error) {
			return nil, cart.ErrProductNotFound
		},
	}})

	r := gin.New()
	r.POST("/cart/items", withUser(testUser()), h.AddCartItem)

	w := doJSON(r, http.MethodPost, "/cart/items", AddCartItemRequest{ProductID: "nope", Quantity: 1})

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddCartItemRejectsZeroQuantity(t *testing.T) {
	h := NewHandler(Deps{})

	r := gin.New()
	r.POST("/cart/items", withUser(testUser()), h.AddCartItem)

	w := doJSON(r, http.MethodPost, "/cart/items", map[string]any{"productId": "p1", "quantity": 0})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokens("test-secret")
	active := testUser()

	users := &stubUsers{
		getByID: func(_ context.Context, id string) (*user.User, error) {
			if id != active.ID {
				return nil, user.ErrNotFound
			}
			return active, nil
		},
	}
	h := NewHandler(Deps{Users: users, Tokens: tokens})

	r := gin.New()
	r.GET("/me", h.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": currentUser(c).Email})
	})

	token, err := tokens.Sign(active.ID, active.Email)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other, err := auth.NewTokens("other-secret").Sign(active.ID, active.Email)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"email":"ada@example.com"}`, w.Body.String())
	})

	t.Run("inactive user", func(t *testing.T) {
		active.IsActive = false
		defer func() { active.IsActive = true }()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	h := NewHandler(Deps{})
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("customer forbidden", func(t *testing.T) {
		r := gin.New()
		r.GET("/admin", withUser(testUser()), h.RequireAdmin(), ok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		admin := testUser()
		admin.IsAdmin = true
		r := gin.New()
		r.GET("/admin", withUser(admin), h.RequireAdmin(), ok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRegister(t *testing.T) {
	tokens := auth.NewTokens("test-secret")

	t.Run("created", func(t *testing.T) {
		var created *user.User
		h := NewHandler(Deps{Tokens: tokens, Users: &stubUsers{
			create: func(_ context.Context, u *user.User) error {
				created = u
				return nil
			},
		}})
		r := gin.New()
		r.POST("/auth/register", h.Register)

		w := doJSON(r, http.MethodPost, "/auth/register", RegisterRequest{
			Name: "Ada Lovelace", Email: "ada@example.com", Password: "correct horse",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, created)
		assert.Equal(t, "Ada", created.FirstName)
		assert.Equal(t, "Lovelace", created.LastName)
		assert.True(t, user.CheckPassword(created.PasswordHash, "correct horse"))

		var resp struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
				Name  string `json:"name"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Ada Lovelace", resp.User.Name)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h := NewHandler(Deps{Tokens: tokens, Users: &stubUsers{
			create: func(context.Context, *user.User) error { return user.ErrEmailTaken },
		}})
		r := gin.New()
		r.POST("/auth/register", h.Register)

		w := doJSON(r, http.MethodPost, "/auth/register", RegisterRequest{
			Name: "Ada Lovelace", Email: "ada@example.com", Password: "correct horse",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		h := NewHandler(Deps{Tokens: tokens})
		r := gin.New()
		r.POST("/auth/register", h.Register)

		w := doJSON(r, http.MethodPost, "/auth/register", RegisterRequest{
			Name: "Ada", Email: "ada@example.com", Password: "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	tokens := auth.NewTokens("test-secret")
	hash, err := user.HashPassword("correct horse")
	require.NoError(t, err)

	stored := testUser()
	stored.PasswordHash = hash

	users := &stubUsers{
		getByEmail: func(_ context.Context, email string) (*user.User, error) {
			if email != stored.Email {
				return nil, user.ErrNotFound
			}
			return stored, nil
		},
	}
	h := NewHandler(Deps{Tokens: tokens, Users: users})
	r := gin.New()
	r.POST("/auth/login", h.Login)

	t.Run("ok", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{
			Email: "ada@example.com", Password: "correct horse",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		claims, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{
			Email: "ada@example.com", Password: "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{
			Email: "nobody@example.com", Password: "whatever",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("inactive user", func(t *testing.T) {
		stored.IsActive = false
		defer func() { stored.IsActive = true }()
		w := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{
			Email: "ada@example.com", Password: "correct horse",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
