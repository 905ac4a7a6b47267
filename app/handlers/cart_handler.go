package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/mux"
)

type CartHandler struct {
	cart     *services.CartService
	wishlist *services.WishlistService
}

func NewCartHandler(cart *services.CartService, wishlist *services.WishlistService) *CartHandler {
	return &CartHandler{cart: cart, wishlist: wishlist}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type selectRequest struct {
	Selected bool `json:"selected"`
}

type wishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.cart.List(r.Context(), helpers.UserIDFromRequest(r))
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, items)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	item, err := h.cart.Add(r.Context(), helpers.UserIDFromRequest(r), req.ProductID, req.Quantity)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.cart.UpdateQuantity(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["id"], req.Quantity)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, item)
}

func (h *CartHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.cart.SetSelected(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["id"], req.Selected)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, item)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Remove(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Item removed from cart")
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context(), helpers.UserIDFromRequest(r)); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Cart cleared")
}

func (h *CartHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.wishlist.List(r.Context(), helpers.UserIDFromRequest(r))
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, items)
}

func (h *CartHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.wishlist.Add(r.Context(), helpers.UserIDFromRequest(r), req.ProductID)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlist.Remove(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["productId"]); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Item removed from wishlist")
}
