package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	searchapp "staybook/internal/app/handlers/search"
	"staybook/internal/domain/shared/day"
)

type SearchHandler struct {
	Handler *searchapp.Handler
}

func (h SearchHandler) Search(c *gin.Context) {
	start, err := day.Parse(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := day.Parse(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	minPrice, ok := parseCents(c, "min_price_cents", 0)
	if !ok {
		return
	}
	maxPrice, ok := parseCents(c, "max_price_cents", 0)
	if !ok {
		return
	}
	result, err := h.Handler.Handle(c.Request.Context(), searchapp.Params{
		Type:          c.Query("type"),
		Start:         start,
		End:           end,
		MinPriceCents: minPrice,
		MaxPriceCents: maxPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseCents(c *gin.Context, key string, def int64) (int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return 0, false
	}
	return v, true
}

var _ SearchHTTP = SearchHandler{}
