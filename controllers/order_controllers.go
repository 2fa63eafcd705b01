package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder -> checkout keranjang dari halaman menu.
// Harga diambil dari tabel menu saat checkout, bukan dari client.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerPhone string `json:"customer_phone"`
		Items         []struct {
			MenuID   uint   `json:"menu_id" binding:"required"`
			Quantity int    `json:"quantity" binding:"required,min=1"`
			Notes    string `json:"notes"`
		} `json:"items" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Status:        models.OrderPendingPayment,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range req.Items {
			var menu models.Menu
			if err := tx.First(&menu, item.MenuID).Error; err != nil {
				return fmt.Errorf("menu %d not found", item.MenuID)
			}
			if !menu.IsAvailable {
				return fmt.Errorf("menu %q is not available", menu.Name)
			}

			orderItem := models.OrderItem{
				OrderID:  order.ID,
				MenuID:   menu.ID,
				Quantity: item.Quantity,
				Price:    menu.Price,
				Notes:    item.Notes,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			total += menu.Price * float64(item.Quantity)
		}

		order.TotalAmount = total
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").
		First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New order %d created (total=%.2f)", order.ID, order.TotalAmount)
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// PayOrder -> pembayaran simulasi: hanya perubahan status ke paid,
// tidak ada gateway sungguhan
func (oc *OrderController) PayOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.OrderPendingPayment {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("order is %s, only pending_payment orders can be paid", order.Status))
		return
	}

	order.Status = models.OrderPaid
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d marked as paid (simulated payment)", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Payment accepted", order)
}

// GetOrderByID -> status order untuk customer
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").
		First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders -> daftar order untuk admin
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").
		Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CancelOrder -> admin membatalkan order yang belum dibayar
func (oc *OrderController) CancelOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.OrderPendingPayment {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("order is %s, only pending_payment orders can be cancelled", order.Status))
		return
	}

	order.Status = models.OrderCancelled
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}
