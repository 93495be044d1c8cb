package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	availabilityapp "staybook/internal/app/handlers/availability"
	"staybook/internal/domain/shared/day"
)

type AvailabilityHandler struct {
	SetDay      *availabilityapp.SetDayHandler
	GetCalendar *availabilityapp.GetCalendarHandler
}

type setDayRequest struct {
	Date       string `json:"date"`
	Available  bool   `json:"available"`
	PriceCents int64  `json:"price_cents"`
}

func (h AvailabilityHandler) Set(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req setDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := day.Parse(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + req.Date})
		return
	}
	err = h.SetDay.Handle(c.Request.Context(), availabilityapp.SetDayParams{
		ListingID:  c.Param("id"),
		Day:        d,
		Available:  req.Available,
		PriceCents: req.PriceCents,
		Caller:     caller,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	from, err := day.Parse(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := day.Parse(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	cal, err := h.GetCalendar.Handle(c.Request.Context(), availabilityapp.GetCalendarParams{
		ListingID: c.Param("id"),
		From:      from,
		To:        to,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
