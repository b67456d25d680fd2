package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/online-catalog/backend/internal/catalog"
	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/repository"
	"github.com/online-catalog/backend/internal/service"
)

// maxUploadBytes bounds multipart product forms, image included.
const maxUploadBytes = 16 << 20

// ProductHandler handles product HTTP requests: the public storefront
// listing and the admin CRUD surface.
type ProductHandler struct {
	service *service.ProductService
	log     *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *service.ProductService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// ListProducts handles GET /api/products. The filter spec is read from the
// query string; absent selectors behave like "all".
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := catalog.Spec{
		Search:     q.Get("search"),
		Category:   q.Get("category"),
		Brand:      q.Get("brand"),
		PriceRange: q.Get("priceRange"),
		Sort:       q.Get("sort"),
	}

	products, err := h.service.ListVisible(r.Context(), spec)
	if err != nil {
		h.log.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.log)
}

// GetProduct handles GET /api/products/{productId}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			WriteError(w, http.StatusNotFound, "Product not found", h.log)
			return
		}
		h.log.Error("failed to get product", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.log)
}

// CreateProduct handles POST /api/admin/products. The body is either JSON or
// multipart/form-data with an optional "image" file part.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	in, image, imageName, err := h.decodeProductRequest(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if image != nil {
		defer image.Close()
	}

	product, err := h.service.CreateProduct(r.Context(), in, readerOrNil(image), imageName)
	if err != nil {
		h.writeProductError(w, err, "failed to create product")
		return
	}

	WriteJSON(w, http.StatusCreated, product, h.log)
	h.log.Info("product created", "productId", product.ID, "name", product.Name)
}

// UpdateProduct handles PUT /api/admin/products/{productId}.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	in, image, imageName, err := h.decodeProductRequest(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if image != nil {
		defer image.Close()
	}

	product, err := h.service.UpdateProduct(r.Context(), productID, in, readerOrNil(image), imageName)
	if err != nil {
		h.writeProductError(w, err, "failed to update product")
		return
	}

	WriteJSON(w, http.StatusOK, product, h.log)
	h.log.Info("product updated", "productId", product.ID)
}

// DeleteProduct handles DELETE /api/admin/products/{productId}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		h.writeProductError(w, err, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.log.Info("product deleted", "productId", productID)
}

// decodeProductRequest reads a product input from either a JSON body or a
// multipart form. The returned file is nil when no image part was uploaded.
func (h *ProductHandler) decodeProductRequest(r *http.Request) (models.ProductInput, multipart.File, string, error) {
	var in models.ProductInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return in, nil, "", err
		}
		in = models.ProductInput{
			Name:        r.FormValue("name"),
			Brand:       r.FormValue("brand"),
			Model:       r.FormValue("model"),
			Category:    r.FormValue("category"),
			Price:       r.FormValue("price"),
			Image:       r.FormValue("image"),
			Description: r.FormValue("description"),
			OptionIDs:   splitOptionIDs(r.FormValue("optionIds")),
		}

		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			return in, file, header.Filename, nil
		case errors.Is(err, http.ErrMissingFile):
			return in, nil, "", nil
		default:
			return in, nil, "", err
		}
	}

	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, nil, "", err
	}
	return in, nil, "", nil
}

func (h *ProductHandler) writeProductError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found", h.log)
	case errors.Is(err, service.ErrInvalidProduct):
		WriteError(w, http.StatusBadRequest, "Product name and price are required", h.log)
	default:
		h.log.Error(logMsg, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}

// splitOptionIDs parses the comma-separated optionIds form field.
func splitOptionIDs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// readerOrNil avoids handing the service a typed-nil io.Reader.
func readerOrNil(f multipart.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}
