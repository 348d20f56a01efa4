package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"bima-invoice/internal/common"
	"bima-invoice/internal/models"
	"bima-invoice/internal/services"

	"github.com/labstack/echo/v4"
)

// SettingsHandlers handles HTTP requests for the settings record.
type SettingsHandlers struct {
	settingsService services.SettingsServiceInterface
	minioSvc        services.MinioService
}

func NewSettingsHandlers(settingsService services.SettingsServiceInterface, minioSvc services.MinioService) *SettingsHandlers {
	return &SettingsHandlers{
		settingsService: settingsService,
		minioSvc:        minioSvc,
	}
}

// GetSettings handles GET /settings. First access seeds and persists the
// default record.
func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()

	settings, err := h.settingsService.Get(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to load settings: "+err.Error())
	}

	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings. The body replaces the record
// wholesale; there is no partial update.
func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()

	var settings models.AppSettings
	if err := c.Bind(&settings); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if !settings.DefaultCurrency.Valid() {
		return common.SendValidationError(c, "default_currency", "Unsupported currency code")
	}
	if settings.VATRate < 0 || settings.VATRate > 100 {
		return common.SendValidationError(c, "vat_rate", "VAT rate must be between 0 and 100")
	}

	if err := h.settingsService.Put(ctx, &settings); err != nil {
		return common.SendServerError(c, "Failed to save settings: "+err.Error())
	}

	return c.JSON(http.StatusOK, settings)
}

// UploadLogo handles POST /settings/logo. The image lands in object storage
// and its URL is stored on the settings record.
func (h *SettingsHandlers) UploadLogo(c echo.Context) error {
	ctx := c.Request().Context()

	file, err := c.FormFile("logo")
	if err != nil {
		return common.SendClientError(c, "Missing logo file")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read logo file: "+err.Error())
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	objectName := fmt.Sprintf("logo-%d%s", time.Now().Unix(), filepath.Ext(file.Filename))
	if err := h.minioSvc.Upload(ctx, services.LogoBucket, objectName, contentType, src, file.Size); err != nil {
		return common.SendServerError(c, "Failed to store logo: "+err.Error())
	}

	logoURL, err := h.minioSvc.GetPresignedURL(services.LogoBucket, objectName, 7*24*time.Hour)
	if err != nil {
		return common.SendServerError(c, "Failed to generate logo URL: "+err.Error())
	}

	settings, err := h.settingsService.Get(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to load settings: "+err.Error())
	}
	settings.LogoURL = &logoURL
	if err := h.settingsService.Put(ctx, settings); err != nil {
		return common.SendServerError(c, "Failed to save settings: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"logo_url": logoURL,
	})
}
