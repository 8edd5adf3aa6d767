package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/debasish790/backend-bill/billing"
	"github.com/debasish790/backend-bill/config"
	"github.com/debasish790/backend-bill/events"
	"github.com/debasish790/backend-bill/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db     *gorm.DB
	config *config.Config
	events events.Dispatcher
}

func NewUserHandler(db *gorm.DB, cfg *config.Config, bus events.Dispatcher) *UserHandler {
	return &UserHandler{db: db, config: cfg, events: bus}
}

// UpdateProfileRequest holds the editable profile fields. Store name and GSTIN
// identify the issuer on past invoices and are rejected if changed.
type UpdateProfileRequest struct {
	StoreName    *string `json:"store_name"`
	GSTIN        *string `json:"gstin"`
	StoreAddress *string `json:"store_address"`
	Contact      *string `json:"contact"`
	Description  *string `json:"desc"`
	Prefix       *string `json:"prefix"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Logo         *string `json:"logo"`
	Location     *string `json:"location"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := vendorID(c)
	if !ok {
		return
	}

	user, err := loadVendor(h.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := vendorID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := loadVendor(h.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondError(c, err)
		return
	}

	if req.StoreName != nil && strings.TrimSpace(*req.StoreName) != user.StoreName {
		respondError(c, &billing.ValidationError{Err: errReadOnlyField, Field: "store_name"})
		return
	}
	if req.GSTIN != nil && !strings.EqualFold(strings.TrimSpace(*req.GSTIN), user.GSTIN) {
		respondError(c, &billing.ValidationError{Err: errReadOnlyField, Field: "gstin"})
		return
	}

	if req.Prefix != nil {
		prefix := strings.TrimSpace(*req.Prefix)
		if err := billing.ValidatePrefix(prefix); err != nil {
			respondError(c, err)
			return
		}
		user.Prefix = prefix
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			var count int64
			if err := h.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&count).Error; err != nil {
				respondError(c, err)
				return
			}
			if count > 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			user.Email = email
		}
	}
	if req.StoreAddress != nil {
		user.StoreAddress = *req.StoreAddress
	}
	if req.Contact != nil {
		user.Contact = *req.Contact
	}
	if req.Description != nil {
		user.Description = *req.Description
	}
	if req.Logo != nil {
		user.Logo = *req.Logo
	}
	if req.Location != nil {
		user.Location = *req.Location
	}

	if err := h.db.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	h.events.Dispatch(user.ID, events.ProfileUpdated{VendorID: user.ID})
	c.JSON(http.StatusOK, user)
}
