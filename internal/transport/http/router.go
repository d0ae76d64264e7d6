package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/matheusvf/loja-backend/internal/handlers"
	authmw "github.com/matheusvf/loja-backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	CategoryHandler *handlers.CategoryHandler
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	UserHandler     *handlers.UserHandler
	SearchHandler   *handlers.SearchHandler
	Token           *authmw.TokenMiddleware
}

// Register wires every route. Routes carrying no middleware are public by
// decision, not by omission.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/refresh", d.AuthHandler.Refresh)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.FindAll)
	products.GET("/search", d.ProductHandler.Search)
	products.GET("/:id", d.ProductHandler.FindByID)
	products.POST("", d.ProductHandler.Create, d.Token.AdminOnly)
	products.PUT("/:id", d.ProductHandler.Update, d.Token.AdminOnly)
	products.DELETE("/:id", d.ProductHandler.Delete, d.Token.AdminOnly)
	products.DELETE("", d.ProductHandler.DeleteAll, d.Token.AdminOnly)
	products.POST("/:id/image", d.ProductHandler.UploadImage, d.Token.AdminOnly)

	categories := v1.Group("/categories")
	categories.GET("", d.CategoryHandler.FindAll)
	categories.GET("/:id", d.CategoryHandler.FindByID)
	categories.POST("", d.CategoryHandler.Create, d.Token.AdminOnly)
	categories.PUT("/:id", d.CategoryHandler.Update, d.Token.AdminOnly)
	categories.DELETE("/:id", d.CategoryHandler.Delete, d.Token.AdminOnly)
	categories.DELETE("", d.CategoryHandler.DeleteAll, d.Token.AdminOnly)

	carts := v1.Group("/carts", d.Token.RequireLogin)
	carts.GET("", d.CartHandler.GetCart)
	carts.POST("/items", d.CartHandler.AddItem)
	carts.PUT("/items/:productId", d.CartHandler.UpdateItem)
	carts.DELETE("/items/:productId", d.CartHandler.DeleteItem)

	users := v1.Group("/users")
	users.GET("/me", d.UserHandler.FindMe, d.Token.RequireLogin)
	users.GET("", d.UserHandler.FindAll, d.Token.AdminOnly)
	users.GET("/:id", d.UserHandler.FindByID, d.Token.AdminOnly)
	users.POST("", d.UserHandler.Create, d.Token.AdminOnly)
	users.PUT("/:id", d.UserHandler.Update, d.Token.AdminOnly)
	users.DELETE("/:id", d.UserHandler.Delete, d.Token.AdminOnly)
	users.DELETE("", d.UserHandler.DeleteAll, d.Token.AdminOnly)

	v1.GET("/roles", d.UserHandler.FindRoles, d.Token.AdminOnly)

	v1.GET("/search", d.SearchHandler.Search)
}
