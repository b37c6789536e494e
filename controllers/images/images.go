package imageControllers

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"github.com/minhnhutZzz/alotra-storefront/catalog"
	"github.com/minhnhutZzz/alotra-storefront/models"
)

const maxUploadBytes = 10 << 20 // 10MB per image

// POST /api/cloudinary (multipart, single "image" field)
func UploadToCloudinary() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.Fail("image file is required"))
			return
		}
		if fileHeader.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, models.Fail("Image exceeds the 10MB limit"))
			return
		}

		cloudURL := os.Getenv("CLOUDINARY_URL")
		if cloudURL == "" {
			c.JSON(http.StatusInternalServerError, models.Fail("Image hosting is not configured"))
			return
		}
		cld, err := cloudinary.NewFromURL(cloudURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Image hosting is not configured"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.Fail("Cannot read uploaded file"))
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(c.Request.Context(), catalog.UploadTimeout)
		defer cancel()

		result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: "alotra"})
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				c.JSON(http.StatusGatewayTimeout, models.Fail("Upload timed out"))
				return
			}
			c.JSON(http.StatusBadGateway, models.Fail("Upload failed"))
			return
		}

		c.JSON(http.StatusOK, models.Ok(gin.H{
			"url":      result.SecureURL,
			"publicId": result.PublicID,
		}))
	}
}

// GET /api/product-images/check-limit/:productId
func CheckImageLimit(client *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := client.CheckImageLimit(c.Request.Context(), c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadGateway, models.Fail("Failed to check image limit"))
			return
		}
		c.JSON(http.StatusOK, models.Ok(limit))
	}
}

// POST /api/product-images/upload/:productId (multipart, "images" fields)
//
// The limit pre-flight happens here on the gateway, so an over-limit batch
// never leaves for the backend.
func UploadProductImages(client *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productId")

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.Fail("multipart form is required"))
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, models.Fail("at least one image is required"))
			return
		}
		for _, fh := range files {
			if fh.Size > maxUploadBytes {
				c.JSON(http.StatusBadRequest, models.Fail("Image exceeds the 10MB limit"))
				return
			}
		}

		limit, err := client.CheckImageLimit(c.Request.Context(), productID)
		if err != nil {
			c.JSON(http.StatusBadGateway, models.Fail("Failed to check image limit"))
			return
		}
		if !limit.CanAddMore || len(files) > limit.RemainingSlots {
			c.JSON(http.StatusBadRequest, models.Fail(fmt.Sprintf(
				"Image limit reached: %d/%d, %d slot(s) left",
				limit.CurrentCount, limit.MaxAllowed, limit.RemainingSlots)))
			return
		}

		data, err := client.UploadProductImages(c.Request.Context(), productID, files)
		if err != nil {
			status := http.StatusBadGateway
			if catalog.IsTimeout(err) {
				status = http.StatusGatewayTimeout
			}
			c.JSON(status, models.Fail("Upload failed"))
			return
		}

		c.JSON(http.StatusOK, models.OkMessage(data, "Images uploaded"))
	}
}
