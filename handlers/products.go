package handlers

import (
	"errors"
	"net/http"

	"github.com/debasish790/backend-bill/billing"
	"github.com/debasish790/backend-bill/events"
	"github.com/debasish790/backend-bill/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	db     *gorm.DB
	events events.Dispatcher
}

func NewProductHandler(db *gorm.DB, bus events.Dispatcher) *ProductHandler {
	return &ProductHandler{db: db, events: bus}
}

// ProductRequest is used for create and partial update. Absent fields are left
// as they are on update.
type ProductRequest struct {
	Name       *string      `json:"product_name"`
	CategoryID *billing.Ref `json:"category_id"`
	Price      *float64     `json:"price"`
	HSN        *string      `json:"hsn"`
	GSTRate    *float64     `json:"gst_rate"`
	Image      *string      `json:"image"`
}

func (r ProductRequest) change() billing.ProductChange {
	return billing.ProductChange{
		Name:       r.Name,
		CategoryID: r.CategoryID,
		Price:      r.Price,
		HSN:        r.HSN,
		GSTRate:    r.GSTRate,
		Image:      r.Image,
	}
}

type ProductView struct {
	models.Product
	Locked bool `json:"locked"`
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	query := h.db.Where("vendor_id = ?", vendor)
	if raw := c.Query("category_id"); raw != "" {
		ref, err := billing.ParseRef(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		query = query.Where("category_id = ?", uint(ref))
	}

	var products []models.Product
	if err := query.Order("id").Find(&products).Error; err != nil {
		respondError(c, err)
		return
	}
	ledger, err := loadLedger(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: p, Locked: billing.IsProductUsed(billing.Ref(p.ID), ledger)})
	}
	c.JSON(http.StatusOK, views)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, used, ok := h.find(c, vendor, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ProductView{Product: product, Locked: used})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next := req.change().Apply(billing.Product{})
	if !h.validate(c, vendor, next, 0) {
		return
	}

	product := models.Product{VendorID: vendor}
	product.Assign(next)
	if err := h.db.Create(&product).Error; err != nil {
		respondError(c, err)
		return
	}

	h.events.Dispatch(vendor, events.ProductAdded{ProductID: product.ID, Name: product.Name})
	c.JSON(http.StatusCreated, ProductView{Product: product})
}

// UpdateProduct applies a partial change. Once an invoice references the product
// only its image can change.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, used, ok := h.find(c, vendor, id)
	if !ok {
		return
	}
	current := product.ToBilling()
	change := req.change()
	if err := billing.CheckProductEdit(current, change, used); err != nil {
		respondError(c, err)
		return
	}

	next := change.Apply(current)
	if !h.validate(c, vendor, next, product.ID) {
		return
	}

	product.Assign(next)
	if err := h.db.Save(&product).Error; err != nil {
		respondError(c, err)
		return
	}

	h.events.Dispatch(vendor, events.ProductUpdated{ProductID: product.ID})
	c.JSON(http.StatusOK, ProductView{Product: product, Locked: used})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, used, ok := h.find(c, vendor, id)
	if !ok {
		return
	}
	if err := billing.CheckProductDelete(product.ToBilling(), used); err != nil {
		respondError(c, err)
		return
	}
	if err := h.db.Delete(&product).Error; err != nil {
		respondError(c, err)
		return
	}

	h.events.Dispatch(vendor, events.ProductDeleted{ProductID: product.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *ProductHandler) find(c *gin.Context, vendor, id uint) (models.Product, bool, bool) {
	var product models.Product
	if err := h.db.Where("vendor_id = ?", vendor).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			respondError(c, err)
		}
		return product, false, false
	}
	ledger, err := loadLedger(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return product, false, false
	}
	return product, billing.IsProductUsed(billing.Ref(product.ID), ledger), true
}

// validate checks the product fields, that the category is the vendor's, and that
// the name is unique within the category.
func (h *ProductHandler) validate(c *gin.Context, vendor uint, p billing.Product, exceptID uint) bool {
	if err := billing.ValidateProduct(p); err != nil {
		respondError(c, err)
		return false
	}

	var categories int64
	if err := h.db.Model(&models.Category{}).
		Where("vendor_id = ? AND id = ?", vendor, uint(p.CategoryID)).
		Count(&categories).Error; err != nil {
		respondError(c, err)
		return false
	}
	if categories == 0 {
		respondError(c, &billing.ValidationError{Err: errUnknownCategory, Field: "category_id", Details: p.CategoryID.String()})
		return false
	}

	var duplicates int64
	if err := h.db.Model(&models.Product{}).
		Where("vendor_id = ? AND category_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", vendor, uint(p.CategoryID), p.Name, exceptID).
		Count(&duplicates).Error; err != nil {
		respondError(c, err)
		return false
	}
	if duplicates > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Product already exists in this category"})
		return false
	}
	return true
}
