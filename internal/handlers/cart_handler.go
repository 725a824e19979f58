package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cart-service/internal/auth"
	"cart-service/internal/cart"
	"cart-service/internal/models"
	"cart-service/internal/repository"
	apperrors "cart-service/pkg/errors"
	"cart-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartService is the part of cart.Service the handlers use
type CartService interface {
	AddToCart(ctx context.Context, identity auth.Identity, itemID int64) (*models.Item, models.CartLineItem, error)
	ViewCart(ctx context.Context, identity auth.Identity) ([]models.CartLineItem, error)
	RemoveFromCart(ctx context.Context, identity auth.Identity, itemID int64) (models.CartLineItem, error)
}

type CartHandler struct {
	logger  *zap.Logger
	service CartService
}

func NewCartHandler(logger *zap.Logger, service CartService) *CartHandler {
	return &CartHandler{
		logger:  logger,
		service: service,
	}
}

// AddToCart handles POST /cart/add/{id}
// @Summary      Add item to cart
// @Description  Agrega una unidad del item al carrito del usuario y reinicia la expiración de 24 horas del carrito. Repetir la llamada con el mismo X-Request-ID retorna la primera respuesta.
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      int     true   "Item ID"
// @Param        X-Request-ID  header    string  false  "Request ID used for idempotent retries"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  errors.StandardError  "Item id is not an integer"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid token"
// @Failure      404  {object}  errors.StandardError  "Unknown item"
// @Failure      409  {object}  errors.StandardError  "Cart modified concurrently or request already in progress"
// @Failure      500  {object}  errors.StandardError  "Cart store unavailable"
// @Router       /cart/add/{id} [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	item, _, err := h.service.AddToCart(c.Request.Context(), identity, itemID)
	if err != nil {
		if item == nil {
			c.Error(catalogError(itemID, err))
			return
		}
		c.Error(cartError(fmt.Sprintf("There was a problem adding %s to cart. Please try again later.", item.Name), itemID, err))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("Item: %s was added to cart!", item.Name)})
}

// ViewCart handles GET /cart/view
// @Summary      View cart
// @Description  Retorna todas las líneas del carrito del usuario ordenadas por id de item. Un carrito vacío o expirado retorna un arreglo vacío.
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   CartLineItemResponse
// @Failure      401  {object}  errors.StandardError  "Missing or invalid token"
// @Failure      500  {object}  errors.StandardError  "Cart store unavailable or corrupt"
// @Router       /cart/view [get]
func (h *CartHandler) ViewCart(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	lines, err := h.service.ViewCart(c.Request.Context(), identity)
	if err != nil {
		c.Error(cartError("Could not load your cart. Please try again later.", 0, err))
		return
	}

	c.JSON(http.StatusOK, lines)
}

// RemoveFromCart handles DELETE /cart/delete/{id}
// @Summary      Remove item from cart
// @Description  Quita una unidad del item del carrito del usuario y elimina la línea cuando llega a cero. No extiende la expiración del carrito.
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      int     true   "Item ID"
// @Param        X-Request-ID  header    string  false  "Request ID used for idempotent retries"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  errors.StandardError  "Item id is not an integer"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid token"
// @Failure      404  {object}  errors.StandardError  "Item is not in the cart"
// @Failure      409  {object}  errors.StandardError  "Cart modified concurrently or request already in progress"
// @Failure      500  {object}  errors.StandardError  "Cart store unavailable"
// @Router       /cart/delete/{id} [delete]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	if _, err := h.service.RemoveFromCart(c.Request.Context(), identity, itemID); err != nil {
		c.Error(cartError("Could not delete item from the cart. Please try again later.", itemID, err))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "The item was removed from your cart."})
}

func (h *CartHandler) identity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		h.logger.Error("Cart route reached without identity", zap.String("path", c.Request.URL.Path))
		c.Error(apperrors.NewUnauthorized("missing identity", "route requires a bearer token"))
		return auth.Identity{}, false
	}
	return identity, true
}

func parseItemID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.Error(apperrors.NewInvalidRequest("item id must be an integer", fmt.Sprintf("id: %s", raw)))
		return 0, false
	}
	return id, true
}

func catalogError(itemID int64, err error) *apperrors.StandardError {
	if errors.Is(err, repository.ErrItemNotFound) {
		return apperrors.NewItemNotFound(itemID)
	}
	return apperrors.NewDatabaseError("find item", err)
}

// cartError maps cart store failures; message is the retry-later text shown to the shopper
func cartError(message string, itemID int64, err error) *apperrors.StandardError {
	switch {
	case errors.Is(err, cart.ErrLineItemNotFound):
		return apperrors.NewCartItemNotFound(itemID)
	case errors.Is(err, cart.ErrCartConflict):
		return apperrors.NewCartConflict(message, err)
	case errors.Is(err, cart.ErrCorruptLineItem):
		return apperrors.NewSerializationError(message, err)
	default:
		return apperrors.NewCacheError(message, err)
	}
}
