package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/receitas/backend/internal/model"
	"github.com/pageza/receitas/backend/internal/service"
)

type LocaleHandler struct {
	locale *service.LocaleStore
}

func NewLocaleHandler(locale *service.LocaleStore) *LocaleHandler {
	return &LocaleHandler{locale: locale}
}

func (h *LocaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/locale", h.GetLocale)
	router.PUT("/locale", h.SetLocale)
}

func (h *LocaleHandler) GetLocale(c *gin.Context) {
	c.JSON(http.StatusOK, LocaleResponse{Locale: h.locale.Get(), Supported: model.SupportedLocales()})
}

func (h *LocaleHandler) SetLocale(c *gin.Context) {
	var req LocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	locale, err := model.ParseLocale(req.Locale)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.locale.Set(c.Request.Context(), locale); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, LocaleResponse{Locale: locale, Supported: model.SupportedLocales()})
}
