package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ramani-storefront/models"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

const maxUploadSize = 32 << 20

// ProductController serves the public catalog and its back-office management
type ProductController struct {
	Catalog *services.CatalogService
	Admin   *services.ProductAdminService
	Sheet   *services.ProductSheet
}

// NewProductController creates a new ProductController
func NewProductController(catalog *services.CatalogService, admin *services.ProductAdminService, sheet *services.ProductSheet) *ProductController {
	return &ProductController{Catalog: catalog, Admin: admin, Sheet: sheet}
}

// GetProducts lists products with filters, sorting and pagination
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	q, err := services.ParseProductQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	page, err := pc.Catalog.List(ctx, q)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

// GetProductByID gets a product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	product, err := pc.Catalog.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetFilters lists the facet values shoppers can filter on
func (pc *ProductController) GetFilters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	opts, err := pc.Catalog.Filters(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, opts)
}

// CreateProduct creates a new product (admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.ValidateCreate(); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	product, err := pc.Admin.Create(ctx, in)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct applies a partial update to a product (admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.ValidatePatch(); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	product, err := pc.Admin.Update(ctx, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct deletes a product (admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := pc.Admin.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product deleted successfully"})
}

// GetInventory lists stock levels, lowest first
func (pc *ProductController) GetInventory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	products, err := pc.Admin.Inventory(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, products)
}

// UpdateStock sets a product's stock level
func (pc *ProductController) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req models.InventoryUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	product, err := pc.Admin.UpdateStock(ctx, mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// ImportProducts bulk-creates products from an uploaded spreadsheet
func (pc *ProductController) ImportProducts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Expected a multipart upload with a file field")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	format, err := services.FormatOf(header.Filename)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	result, err := pc.Sheet.Import(ctx, format, file)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// ExportProducts downloads the catalog as xlsx (default) or csv
func (pc *ProductController) ExportProducts(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = services.FormatXLSX
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	switch format {
	case services.FormatXLSX:
	case services.FormatCSV:
		contentType = "text/csv"
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "format must be xlsx or csv")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="products.%s"`, format))
	if err := pc.Sheet.Export(ctx, format, w); err != nil {
		writeError(w, err)
	}
}
