package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/srochno-market/internal/data"
	"github.com/fsdevblog/srochno-market/internal/domain"
)

type CitiesHandler struct{}

func NewCitiesHandler() *CitiesHandler {
	return &CitiesHandler{}
}

// Index GET RouteGroup + CitiesRoute. Статический справочник городов
// с фильтрацией по подстроке.
func (h *CitiesHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": data.SearchCities(c.Query("q"))})
}

// Categories GET RouteGroup + CategoriesRoute. Фиксированный набор категорий.
func (h *CitiesHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": domain.Categories})
}
