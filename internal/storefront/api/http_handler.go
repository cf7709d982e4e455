package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zivra/storefront/internal/platform/logger"
	"github.com/zivra/storefront/internal/storefront/domain"
	"github.com/zivra/storefront/internal/storefront/service"
)

// StorefrontHandler adapts the session operation set to HTTP for the
// presentation layer. The core stays protocol-free; all rendering decisions
// belong to the caller.
type StorefrontHandler struct {
	storefrontService service.StorefrontService
}

func NewStorefrontHandler(ss service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefrontService: ss}
}

// RequestID tags every response so presentation-side reports can be matched
// against service logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func (h *StorefrontHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/:id/stock", h.GetProductStock)
	}

	cartRoutes := router.Group("/cart")
	{
		cartRoutes.GET("", h.GetCart)
		cartRoutes.GET("/summary", h.GetCartSummary)
		cartRoutes.POST("/items", h.AddItem)
		cartRoutes.POST("/items/:index/increment", h.IncrementLine)
		cartRoutes.POST("/items/:index/decrement", h.DecrementLine)
		cartRoutes.DELETE("/items/:index", h.RemoveLine)
	}

	wishlistRoutes := router.Group("/wishlist")
	{
		wishlistRoutes.GET("", h.GetWishlist)
		wishlistRoutes.POST("/:product_id/toggle", h.ToggleWishlist)
	}

	router.POST("/state/reset", h.ResetState)
}

func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.storefrontService.ProductViews())
}

func (h *StorefrontHandler) GetProductStock(c *gin.Context) {
	productID := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"product_id": productID,
		"available":  h.storefrontService.InventoryOf(productID),
	})
}

func (h *StorefrontHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": h.storefrontService.CartLines(),
		"total": h.storefrontService.Total(),
	})
}

func (h *StorefrontHandler) GetCartSummary(c *gin.Context) {
	summary, total := h.storefrontService.OrderSummary()
	c.JSON(http.StatusOK, gin.H{"summary": summary, "total": total})
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

func (h *StorefrontHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.storefrontService.AddItem(c.Request.Context(), req.ProductID); err != nil {
		h.respondOperationError(c, "Hdl.AddItem", err)
		return
	}
	h.GetCart(c)
}

func (h *StorefrontHandler) IncrementLine(c *gin.Context) {
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}
	if err := h.storefrontService.IncrementLine(c.Request.Context(), index); err != nil {
		h.respondOperationError(c, "Hdl.IncrementLine", err)
		return
	}
	h.GetCart(c)
}

func (h *StorefrontHandler) DecrementLine(c *gin.Context) {
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}
	if err := h.storefrontService.DecrementLine(c.Request.Context(), index); err != nil {
		h.respondOperationError(c, "Hdl.DecrementLine", err)
		return
	}
	h.GetCart(c)
}

func (h *StorefrontHandler) RemoveLine(c *gin.Context) {
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}
	if err := h.storefrontService.RemoveLine(c.Request.Context(), index); err != nil {
		h.respondOperationError(c, "Hdl.RemoveLine", err)
		return
	}
	h.GetCart(c)
}

func (h *StorefrontHandler) GetWishlist(c *gin.Context) {
	c.JSON(http.StatusOK, h.storefrontService.WishlistEntries())
}

func (h *StorefrontHandler) ToggleWishlist(c *gin.Context) {
	productID := c.Param("product_id")
	inWishlist, err := h.storefrontService.ToggleWishlist(c.Request.Context(), productID)
	if err != nil {
		h.respondOperationError(c, "Hdl.ToggleWishlist", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": productID, "in_wishlist": inWishlist})
}

func (h *StorefrontHandler) ResetState(c *gin.Context) {
	if err := h.storefrontService.ResetState(c.Request.Context()); err != nil {
		logger.Error("Hdl.ResetState: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "State reset to catalog defaults"})
}

func (h *StorefrontHandler) lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index: " + c.Param("index")})
		return 0, false
	}
	return index, true
}

// The three recoverable kinds map to client statuses; anything else is a 500.
func (h *StorefrontHandler) respondOperationError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidLineIndex), errors.Is(err, domain.ErrUnknownProduct):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(op+": service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}
