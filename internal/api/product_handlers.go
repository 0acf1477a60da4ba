package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/ec-shop-api/internal/api/middleware"
	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/service"
	"github.com/example/ec-shop-api/internal/store"
	"github.com/example/ec-shop-api/internal/upload"
)

const maxProductImages = 5

// ProductHandlers serves the catalog, reviews and the admin product
// CRUD surface.
type ProductHandlers struct {
	products store.ProductStore
	users    store.UserStore
	reviews  *service.ReviewService
	orders   *service.OrderService
	uploader upload.Uploader
}

func NewProductHandlers(products store.ProductStore, users store.UserStore, reviews *service.ReviewService, orders *service.OrderService, uploader upload.Uploader) *ProductHandlers {
	return &ProductHandlers{
		products: products,
		users:    users,
		reviews:  reviews,
		orders:   orders,
		uploader: uploader,
	}
}

// List handles GET /api/products with the catalog filters.
func (h *ProductHandlers) List(c *gin.Context) {
	q := store.ProductQuery{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		Featured: c.Query("featured") == "true",
		Sort:     c.Query("sort"),
		All:      c.Query("all") == "true",
	}
	if v, err := strconv.ParseFloat(c.Query("price[gte]"), 64); err == nil {
		q.PriceGTE = &v
	}
	if v, err := strconv.ParseFloat(c.Query("price[lte]"), 64); err == nil {
		q.PriceLTE = &v
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		q.Limit = v
	}

	products, total, err := h.products.List(c.Request.Context(), q)
	if err != nil {
		respondStoreError(c, err, "Products")
		return
	}

	payload := gin.H{
		"products":   products,
		"totalCount": total,
	}
	if !q.All {
		payload["currentPage"] = q.PageNumber()
		payload["totalPages"] = q.TotalPages(total)
	}
	respond(c, http.StatusOK, payload)
}

// Get handles GET /api/products/:id.
func (h *ProductHandlers) Get(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Product")
		return
	}
	respond(c, http.StatusOK, gin.H{"product": product})
}

// CheckStock handles POST /api/products/check-stock, the bulk
// availability query used before checkout.
func (h *ProductHandlers) CheckStock(c *gin.Context) {
	var req struct {
		Items []service.StockCheckItem `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	shortages, err := h.orders.CheckStock(c.Request.Context(), req.Items)
	if err != nil {
		respondStoreError(c, err, "Stock check")
		return
	}
	if len(shortages) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"valid":   false,
			"invalid": shortages,
		})
		return
	}
	respond(c, http.StatusOK, gin.H{"valid": true})
}

// ListReviews handles GET /api/products/:id/reviews.
func (h *ProductHandlers) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Product")
		return
	}
	respond(c, http.StatusOK, gin.H{"reviews": reviews})
}

// AddReview handles POST /api/products/:id/reviews. One review per
// user per product; resubmission replaces the previous one.
func (h *ProductHandlers) AddReview(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	var req struct {
		Rating  *float64 `json:"rating" binding:"required"`
		Comment *string  `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Rating and comment required")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		respondStoreError(c, err, "User")
		return
	}

	err = h.reviews.AddOrUpdate(c.Request.Context(), c.Param("id"), user.ID, user.Name, *req.Rating, *req.Comment)
	if err != nil {
		respondStoreError(c, err, "Product")
		return
	}
	respond(c, http.StatusOK, gin.H{})
}

// Create handles POST /api/admin/products: a multipart form with the
// product fields and up to five image files.
func (h *ProductHandlers) Create(c *gin.Context) {
	var form struct {
		Title       string  `form:"title" binding:"required"`
		Description string  `form:"description" binding:"required"`
		Price       float64 `form:"price" binding:"required"`
		Category    string  `form:"category" binding:"required"`
		Stock       int     `form:"stock"`
		Seller      string  `form:"seller" binding:"required"`
		IsFeatured  bool    `form:"isFeatured"`
	}
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category, err := models.ParseCategory(form.Category)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Please select a valid category")
		return
	}
	if form.Stock < 0 {
		respondError(c, http.StatusBadRequest, "Stock cannot be negative")
		return
	}

	images, err := h.saveImages(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	product := &models.Product{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Category:    category,
		Stock:       form.Stock,
		Seller:      form.Seller,
		IsFeatured:  form.IsFeatured,
		Images:      images,
	}
	if err := h.products.Create(c.Request.Context(), product); err != nil {
		respondStoreError(c, err, "Product")
		return
	}
	respond(c, http.StatusCreated, gin.H{"product": product})
}

// Update handles PUT /api/admin/products/:id with a partial JSON body.
func (h *ProductHandlers) Update(c *gin.Context) {
	var req struct {
		Title       *string  `json:"title"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Seller      *string  `json:"seller"`
		Stock       *int     `json:"stock"`
		IsFeatured  *bool    `json:"isFeatured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	update := store.ProductUpdate{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Seller:      req.Seller,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
	}
	if req.Category != nil {
		category, err := models.ParseCategory(*req.Category)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Please select a valid category")
			return
		}
		update.Category = &category
	}
	if req.Stock != nil && *req.Stock < 0 {
		respondError(c, http.StatusBadRequest, "Stock cannot be negative")
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondStoreError(c, err, "Product")
		return
	}
	respond(c, http.StatusOK, gin.H{"product": product})
}

// Delete handles DELETE /api/admin/products/:id.
func (h *ProductHandlers) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "Product")
		return
	}
	respond(c, http.StatusOK, gin.H{})
}

func (h *ProductHandlers) saveImages(c *gin.Context) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return images, nil
	}

	files := form.File["images"]
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}
	for _, file := range files {
		url, id, err := h.uploader.Save(file)
		if err != nil {
			return nil, err
		}
		images = append(images, models.ProductImage{URL: url, PublicID: id})
	}
	return images, nil
}
