package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	orderapp "staybook/internal/app/handlers/order"
	"staybook/internal/domain/shared/day"
)

type OrderHandler struct {
	CreateOrder   *orderapp.CreateHandler
	UpdateOrder   *orderapp.UpdateHandler
	CancelOrder   *orderapp.CancelHandler
	GetOrder      *orderapp.GetHandler
	ListByUser    *orderapp.ListByUserHandler
	ListByListing *orderapp.ListByListingHandler
}

type orderRequest struct {
	ListingID string `json:"listing_id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h OrderHandler) Create(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, ok := parseStay(c, req.StartDate, req.EndDate)
	if !ok {
		return
	}
	ord, err := h.CreateOrder.Handle(c.Request.Context(), orderapp.CreateParams{
		ListingID: req.ListingID,
		UserID:    req.UserID,
		Start:     start,
		End:       end,
		Caller:    caller,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapOrder(ord))
}

func (h OrderHandler) Update(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, ok := parseStay(c, req.StartDate, req.EndDate)
	if !ok {
		return
	}
	ord, err := h.UpdateOrder.Handle(c.Request.Context(), orderapp.UpdateParams{
		OrderID:   c.Param("id"),
		ListingID: req.ListingID,
		Start:     start,
		End:       end,
		Caller:    caller,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapOrder(ord))
}

func (h OrderHandler) Cancel(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	err := h.CancelOrder.Handle(c.Request.Context(), orderapp.CancelParams{
		OrderID: c.Param("id"),
		Caller:  caller,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h OrderHandler) Get(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	ord, err := h.GetOrder.Handle(c.Request.Context(), orderapp.GetParams{
		OrderID: c.Param("id"),
		Caller:  caller,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapOrder(ord))
}

func (h OrderHandler) ListMine(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	orders, err := h.ListByUser.Handle(c.Request.Context(), orderapp.ListByUserParams{
		UserID: caller.ID,
		Caller: caller,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapOrders(orders))
}

func (h OrderHandler) ListForListing(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	orders, err := h.ListByListing.Handle(c.Request.Context(), orderapp.ListByListingParams{
		ListingID: c.Param("id"),
		Caller:    caller,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapOrders(orders))
}

func parseStay(c *gin.Context, startDate, endDate string) (day.Day, day.Day, bool) {
	start, err := day.Parse(startDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date: " + startDate})
		return day.Day{}, day.Day{}, false
	}
	end, err := day.Parse(endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date: " + endDate})
		return day.Day{}, day.Day{}, false
	}
	return start, end, true
}

var _ OrderHTTP = OrderHandler{}
