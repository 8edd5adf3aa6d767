package handlers

import (
	"errors"
	"net/http"

	"github.com/debasish790/backend-bill/billing"
	"github.com/debasish790/backend-bill/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	errSerialConflict  = errors.New("invoice number already taken, please retry")
	errUnknownCategory = errors.New("category not found")
	errReadOnlyField   = errors.New("field cannot be changed")
	errBlankName       = errors.New("name is required")
)

// respondError answers a handler error. Domain errors map to 4xx; everything
// else is logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	var validation *billing.ValidationError
	var lock *billing.LockConflictError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": validation.Error(),
			"code":  "ValidationError",
			"field": validation.Field,
		})
	case errors.As(err, &lock):
		c.JSON(http.StatusConflict, gin.H{
			"error":  lock.Error(),
			"code":   "LockConflict",
			"fields": lock.Fields,
		})
	case errors.Is(err, errSerialConflict):
		c.JSON(http.StatusConflict, gin.H{"error": errSerialConflict.Error(), "code": "SerialConflict"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "Record already exists", "code": "Duplicate"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	default:
		entry := logrus.WithError(err).WithField("path", c.FullPath())
		if id, ok := middleware.UserID(c); ok {
			entry = entry.WithField("vendor_id", id)
		}
		entry.Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// vendorID reads the authenticated vendor or answers 401.
func vendorID(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return id, ok
}

// pathID parses the :id parameter or answers 400.
func pathID(c *gin.Context) (uint, bool) {
	ref, err := billing.ParseRef(c.Param("id"))
	if err != nil || ref.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(ref), true
}
