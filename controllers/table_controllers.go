package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/kds"
	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables lists the fixed table registry.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("id asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID returns one table.
func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// FindTablesByStatus lists tables filtered by status, default available.
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = models.TableAvailable
	}
	if !models.ValidTableStatus(status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown table status: %s", status))
		return
	}

	var tables []models.Table
	if err := tc.DB.Where("status = ?", status).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+status, tables)
}

// UpdateTableStatus sets a table's occupancy status directly. Used for
// manual reserve/free; order submit and payment flip status themselves.
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidTableStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown table status: %s", body.Status))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = body.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// GetTableStats returns occupancy counts for the dashboard.
func (tc *TableController) GetTableStats(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Table stats", tableStats(tc.DB))
}

func tableStats(db *gorm.DB) map[string]interface{} {
	var available, occupied, reserved int64

	db.Model(&models.Table{}).Where("status = ?", models.TableAvailable).Count(&available)
	db.Model(&models.Table{}).Where("status = ?", models.TableOccupied).Count(&occupied)
	db.Model(&models.Table{}).Where("status = ?", models.TableReserved).Count(&reserved)

	return map[string]interface{}{
		"available": available,
		"occupied":  occupied,
		"reserved":  reserved,
		"total":     available + occupied + reserved,
	}
}
