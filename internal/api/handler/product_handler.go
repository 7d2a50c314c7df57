package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-system/internal/api/metrics"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create lists a new product owned by the calling seller.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  DetailResponse
// @Failure      403   {object}  DetailResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	view, err := h.products.Create(c.Request().Context(), ctxIdentity(c), toCreateProductInput(req))
	if err != nil {
		return err
	}
	metrics.ProductsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, toProductResponse(*view))
}

// List returns one page of products, newest first.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  productPageResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	var q listProductsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination parameters").SetInternal(err)
	}

	page, err := h.products.List(c.Request().Context(), ctxIdentity(c), ports.ListProductsInput{Page: q.Page, Limit: q.Limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductPageResponse(page))
}

// Get returns a product with its seller embedded.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  DetailResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	view, err := h.products.Get(c.Request().Context(), ctxIdentity(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(*view))
}

// Update edits a product owned by the calling seller.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  DetailResponse
// @Failure      403   {object}  DetailResponse
// @Failure      404   {object}  DetailResponse
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	view, err := h.products.Update(c.Request().Context(), ctxIdentity(c), toUpdateProductInput(c.Param("id"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(*view))
}
