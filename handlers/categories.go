package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/debasish790/backend-bill/billing"
	"github.com/debasish790/backend-bill/events"
	"github.com/debasish790/backend-bill/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	db     *gorm.DB
	events events.Dispatcher
}

func NewCategoryHandler(db *gorm.DB, bus events.Dispatcher) *CategoryHandler {
	return &CategoryHandler{db: db, events: bus}
}

type CategoryRequest struct {
	Name string `json:"category_name"`
}

// CategoryView is a category with its usage lock.
type CategoryView struct {
	models.Category
	Locked bool `json:"locked"`
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	var categories []models.Category
	if err := h.db.Where("vendor_id = ?", vendor).Order("id").Find(&categories).Error; err != nil {
		respondError(c, err)
		return
	}
	catalog, err := loadCatalog(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]CategoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, CategoryView{
			Category: cat,
			Locked:   billing.IsCategoryUsed(billing.Ref(cat.ID), catalog),
		})
	}
	c.JSON(http.StatusOK, views)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, &billing.ValidationError{Err: errBlankName, Field: "category_name"})
		return
	}
	if taken, err := h.nameTaken(vendor, name, 0); err != nil {
		respondError(c, err)
		return
	} else if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		return
	}

	category := models.Category{VendorID: vendor, Name: name}
	if err := h.db.Create(&category).Error; err != nil {
		respondError(c, err)
		return
	}

	h.events.Dispatch(vendor, events.CategoryAdded{CategoryID: category.ID, Name: category.Name})
	c.JSON(http.StatusCreated, CategoryView{Category: category})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, &billing.ValidationError{Err: errBlankName, Field: "category_name"})
		return
	}

	category, used, ok := h.find(c, vendor, id)
	if !ok {
		return
	}
	if err := billing.CheckCategoryEdit(category.ToBilling(), name, used); err != nil {
		respondError(c, err)
		return
	}
	if taken, err := h.nameTaken(vendor, name, category.ID); err != nil {
		respondError(c, err)
		return
	} else if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		return
	}

	category.Name = name
	if err := h.db.Save(&category).Error; err != nil {
		respondError(c, err)
		return
	}

	h.events.Dispatch(vendor, events.CategoryUpdated{CategoryID: category.ID})
	c.JSON(http.StatusOK, CategoryView{Category: category, Locked: used})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, used, ok := h.find(c, vendor, id)
	if !ok {
		return
	}
	if err := billing.CheckCategoryDelete(category.ToBilling(), used); err != nil {
		respondError(c, err)
		return
	}
	if err := h.db.Delete(&category).Error; err != nil {
		respondError(c, err)
		return
	}

	h.events.Dispatch(vendor, events.CategoryDeleted{CategoryID: category.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// find loads one of the vendor's categories and whether products use it. It
// answers the request itself when the category cannot be loaded.
func (h *CategoryHandler) find(c *gin.Context, vendor, id uint) (models.Category, bool, bool) {
	var category models.Category
	if err := h.db.Where("vendor_id = ?", vendor).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			respondError(c, err)
		}
		return category, false, false
	}
	catalog, err := loadCatalog(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return category, false, false
	}
	return category, billing.IsCategoryUsed(billing.Ref(category.ID), catalog), true
}

func (h *CategoryHandler) nameTaken(vendor uint, name string, exceptID uint) (bool, error) {
	var count int64
	err := h.db.Model(&models.Category{}).
		Where("vendor_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", vendor, name, exceptID).
		Count(&count).Error
	return count > 0, err
}
