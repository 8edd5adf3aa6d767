package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/debasish790/backend-bill/billing"
	"github.com/debasish790/backend-bill/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportHandler struct {
	db     *gorm.DB
	config *config.Config
	now    func() time.Time
}

func NewReportHandler(db *gorm.DB, cfg *config.Config) *ReportHandler {
	return &ReportHandler{db: db, config: cfg, now: time.Now}
}

// validFinancialYear accepts "YYYY-YYYY" where the years are consecutive.
func validFinancialYear(fy string) bool {
	start, end, found := strings.Cut(fy, "-")
	if !found || len(start) != 4 || len(end) != 4 {
		return false
	}
	from, err := strconv.Atoi(start)
	if err != nil {
		return false
	}
	to, err := strconv.Atoi(end)
	return err == nil && to == from+1
}

// SalesReport lists the rows of all invoices across financial years. The
// category totals cover one year only, the current one unless ?fy= is given.
func (h *ReportHandler) SalesReport(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	now := h.now()
	if h.config.Location != nil {
		now = now.In(h.config.Location)
	}
	fy := c.DefaultQuery("fy", billing.FinancialYear(now))
	if !validFinancialYear(fy) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fy must look like 2024-2025"})
		return
	}

	ledger, err := loadLedger(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.config.Location != nil {
		for i := range ledger {
			ledger[i].Date = ledger[i].Date.In(h.config.Location)
		}
	}
	catalog, err := loadCatalog(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := loadCategories(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, billing.BuildReport(ledger, catalog, categories, fy))
}
