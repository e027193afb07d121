package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woodharbor/slabstore/internal/search"
	"github.com/woodharbor/slabstore/internal/service"
	authmw "github.com/woodharbor/slabstore/pkg/middleware/auth"
)

type Deps struct {
	Auth     *service.AuthService
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Favorite *service.FavoriteService
	Reserve  *service.ReservationService
	Discount *service.DiscountService
	Search   *search.Index

	AuthMW *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authH := &AuthHTTP{Svc: d.Auth}
	catalogH := &CatalogHTTP{Svc: d.Catalog}
	cartH := &CartHTTP{Svc: d.Cart}
	favH := &FavoriteHTTP{Svc: d.Favorite}
	orderH := &OrderHTTP{Reservations: d.Reserve, Discounts: d.Discount}
	searchH := &SearchHTTP{Index: d.Search}

	v1 := e.Group("/api/v1")

	v1.POST("/register", authH.Register)
	v1.POST("/login", authH.Login)
	v1.POST("/refresh", authH.Refresh)
	v1.POST("/logout", authH.Logout, d.AuthMW.OptionalAuth)
	v1.GET("/profile", authH.Profile, d.AuthMW.RequireAuth)
	v1.PATCH("/profile", authH.UpdateProfile, d.AuthMW.RequireAuth)
	v1.GET("/search", searchH.Search)

	products := v1.Group("/products")
	products.GET("", catalogH.GetProducts)
	products.GET("/filters", catalogH.FilterOptions)
	products.GET("/:id", catalogH.GetProduct)
	products.GET("/:id/recommendations", catalogH.Recommendations)
	products.GET("/:id/discount", orderH.EvaluateDiscount)
	products.GET("/:id/favorite", favH.Status, d.AuthMW.OptionalAuth)
	products.POST("/:id/purchase-request", catalogH.RequestPurchase, d.AuthMW.RequireAuth)
	products.POST("/:id/favorite", favH.Toggle, d.AuthMW.RequireAuth)

	cart := v1.Group("/cart", d.AuthMW.RequireAuth)
	cart.GET("", cartH.GetCart)
	cart.POST("", cartH.AddToCart)
	cart.PATCH("/items/:id", cartH.SetQuantity)
	cart.DELETE("/items/:id", cartH.RemoveItem)

	favorites := v1.Group("/favorites", d.AuthMW.RequireAuth)
	favorites.GET("", favH.List)

	orders := v1.Group("/orders", d.AuthMW.RequireAuth)
	orders.GET("", orderH.ListOrders)
	orders.POST("/deposit/:id", orderH.CreateDeposit)
	orders.GET("/deposit/:id", orderH.CheckDeposit)
}
