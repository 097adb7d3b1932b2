package api

import (
	"encoding/json"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const thumbnailSize = 32

func (h *handlers) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Categories{Categories: h.catalog.Categories()})
}

func (h *handlers) handleMenuList(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	items, err := h.catalog.Items(category)
	if errors.Is(err, ErrUnknownCategory) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *handlers) handleImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, ok := h.catalog.Entry(id)
	if !ok {
		http.Error(w, ErrUnknownMenuItem.Error(), http.StatusNotFound)
		return
	}

	img := image.NewRGBA(image.Rect(0, 0, thumbnailSize, thumbnailSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: entry.Color}, image.Point{}, draw.Src)

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		h.logger.Error("encode thumbnail", "id", id, "error", err)
	}
}
