package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/debasish790/backend-bill/billing"
	"github.com/debasish790/backend-bill/config"
	"github.com/debasish790/backend-bill/events"
	"github.com/debasish790/backend-bill/models"
	"github.com/debasish790/backend-bill/utils"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	db       *gorm.DB
	config   *config.Config
	events   events.Dispatcher
	renderer utils.DocumentRendererInterface
	receipts *utils.ReceiptPrinter
	now      func() time.Time
}

func NewInvoiceHandler(db *gorm.DB, cfg *config.Config, bus events.Dispatcher) *InvoiceHandler {
	return &InvoiceHandler{
		db:       db,
		config:   cfg,
		events:   bus,
		renderer: utils.NewDocumentRenderer(),
		receipts: utils.NewReceiptPrinter(),
		now:      time.Now,
	}
}

type CreateInvoiceRequest struct {
	CustomerName   string          `json:"customer_name"`
	CustomerMobile string          `json:"customer_mobile"`
	Rows           []billing.Row   `json:"rows"`
	StartingSerial billing.Numeric `json:"starting_serial"`
}

type PreviewRequest struct {
	Rows []billing.Row `json:"rows"`
}

type FormRequest struct {
	Form   billing.InvoiceForm `json:"form"`
	Action billing.FormAction  `json:"action"`
}

// InvoiceDetail is a stored invoice with its rows recomputed for display.
type InvoiceDetail struct {
	models.Invoice
	Items []billing.EnrichedRow `json:"items"`
}

type NextNumberResponse struct {
	FinancialYear          string `json:"financial_year"`
	Prefix                 string `json:"prefix"`
	RequiresStartingSerial bool   `json:"requires_starting_serial"`
	NextSerial             int    `json:"next_serial,omitempty"`
	InvoiceNumber          string `json:"invoice_number,omitempty"`
}

func (h *InvoiceHandler) clock() time.Time {
	t := h.now()
	if h.config != nil && h.config.Location != nil {
		t = t.In(h.config.Location)
	}
	return t
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	invoices, err := loadInvoices(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	inv, ok := h.find(c, vendor, id)
	if !ok {
		return
	}
	catalog, err := loadCatalog(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}

	summary := billing.Compute(inv.ToBilling().Rows, catalog)
	c.JSON(http.StatusOK, InvoiceDetail{Invoice: inv, Items: summary.Rows})
}

// NextNumber reports what the next submission will be numbered, or that the
// vendor must pick a starting serial first.
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	user, err := loadVendor(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}
	ledger, err := loadLedger(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}

	fy := billing.FinancialYear(h.clock())
	prefix := user.Profile(h.config.DefaultPrefix).Prefix
	resp := NextNumberResponse{FinancialYear: fy, Prefix: prefix}

	alloc := billing.NewAllocator(user.SerialInitialized, ledger)
	if alloc.RequiresStartingSerial() {
		resp.RequiresStartingSerial = true
	} else {
		resp.NextSerial = billing.NextSerial(ledger, fy)
		resp.InvoiceNumber = billing.FormatInvoiceNumber(prefix, fy, resp.NextSerial)
	}
	c.JSON(http.StatusOK, resp)
}

// Preview computes totals for rows being edited. Incomplete rows count as zero;
// totals too large to represent are rejected.
func (h *InvoiceHandler) Preview(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	catalog, err := loadCatalog(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}

	summary := billing.Compute(req.Rows, catalog)
	if err := billing.ValidateTotals(summary); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Form applies one edit to a client-held invoice form and returns the new form
// with its preview.
func (h *InvoiceHandler) Form(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	catalog, err := loadCatalog(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return
	}

	next, err := billing.Reduce(req.Form, req.Action, catalog)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	preview := billing.Compute(next.Rows, catalog)
	if err := billing.ValidateTotals(preview); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form":    next,
		"preview": preview,
	})
}

// CreateInvoice validates, numbers and stores an invoice. Numbering and the
// insert share one transaction; the unique (vendor, number) index rejects a
// concurrent submission that computed the same serial.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := billing.ValidateRows(req.Rows); err != nil {
		respondError(c, err)
		return
	}

	now := h.clock()
	fy := billing.FinancialYear(now)

	var created models.Invoice
	var summary billing.Result
	err := h.db.Transaction(func(tx *gorm.DB) error {
		user, err := loadVendor(tx, vendor)
		if err != nil {
			return fmt.Errorf("failed to load vendor: %w", err)
		}
		catalog, err := loadCatalog(tx, vendor)
		if err != nil {
			return err
		}
		if err := billing.ValidateRowProducts(req.Rows, catalog); err != nil {
			return err
		}
		ledger, err := loadLedger(tx, vendor)
		if err != nil {
			return err
		}

		alloc := billing.NewAllocator(user.SerialInitialized, ledger)
		serial, err := alloc.Allocate(ledger, fy, string(req.StartingSerial))
		if err != nil {
			return err
		}
		number := billing.FormatInvoiceNumber(user.Profile(h.config.DefaultPrefix).Prefix, fy, serial)
		if lo.ContainsBy(ledger, func(inv billing.Invoice) bool { return inv.InvoiceNumber == number }) {
			return errSerialConflict
		}

		summary = billing.Compute(req.Rows, catalog)
		if err := billing.ValidateTotals(summary); err != nil {
			return err
		}
		created = models.NewInvoice(vendor, number, now, strings.TrimSpace(req.CustomerName), strings.TrimSpace(req.CustomerMobile), summary)
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errSerialConflict
			}
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		if alloc.Commit() {
			if err := tx.Model(&user).Update("serial_initialized", true).Error; err != nil {
				return fmt.Errorf("failed to update vendor: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.events.Dispatch(vendor, events.InvoiceAdded{
		InvoiceID:     created.ID,
		InvoiceNumber: created.InvoiceNumber,
		TotalAmount:   created.TotalAmount,
	})
	c.JSON(http.StatusCreated, InvoiceDetail{Invoice: created, Items: summary.Rows})
}

func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	doc, ok := h.document(c)
	if !ok {
		return
	}

	data, err := h.renderer.RenderInvoice(doc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+utils.FileName(doc.Invoice.InvoiceNumber, "pdf")+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *InvoiceHandler) Receipt(c *gin.Context) {
	doc, ok := h.document(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.receipts.PrintReceipt(&buf, doc); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// document assembles what is printed for the invoice in the :id parameter.
func (h *InvoiceHandler) document(c *gin.Context) (utils.InvoiceDocument, bool) {
	vendor, ok := vendorID(c)
	if !ok {
		return utils.InvoiceDocument{}, false
	}
	id, ok := pathID(c)
	if !ok {
		return utils.InvoiceDocument{}, false
	}

	inv, ok := h.find(c, vendor, id)
	if !ok {
		return utils.InvoiceDocument{}, false
	}
	user, err := loadVendor(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return utils.InvoiceDocument{}, false
	}
	catalog, err := loadCatalog(h.db, vendor)
	if err != nil {
		respondError(c, err)
		return utils.InvoiceDocument{}, false
	}

	ledgerEntry := inv.ToBilling()
	if h.config.Location != nil {
		ledgerEntry.Date = ledgerEntry.Date.In(h.config.Location)
	}
	return utils.InvoiceDocument{
		Vendor:  user.Profile(h.config.DefaultPrefix),
		Invoice: ledgerEntry,
		Summary: billing.Compute(ledgerEntry.Rows, catalog),
	}, true
}

func (h *InvoiceHandler) find(c *gin.Context, vendor, id uint) (models.Invoice, bool) {
	inv, err := loadInvoice(h.db, vendor, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			respondError(c, err)
		}
		return inv, false
	}
	return inv, true
}
