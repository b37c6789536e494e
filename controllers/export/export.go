package exportControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/minhnhutZzz/alotra-storefront/catalog"
	"github.com/minhnhutZzz/alotra-storefront/models"
)

// maxExportPages caps a runaway export against a huge catalog.
const maxExportPages = 500

// GET /admin/export/products.xlsx?search=term
//
// Walks the backend page by page through the same client the list views
// use, so an export matches exactly what the admin table shows.
func ExportProductsToExcel(client *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("search")

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to create Excel sheet"))
			return
		}

		headers := []string{"ID", "Name", "Description", "Price", "Stock", "Category", "ImageURL", "CreatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for page := 0; page < maxExportPages; page++ {
			var (
				result *models.PageResult
				err    error
			)
			if term == "" {
				result, err = client.FetchPage(c.Request.Context(), catalog.Products, page)
			} else {
				result, err = client.Search(c.Request.Context(), catalog.Products, term, page)
			}
			if err != nil {
				status := http.StatusBadGateway
				if catalog.IsTimeout(err) {
					status = http.StatusGatewayTimeout
				}
				c.JSON(status, models.Fail("Failed to fetch products"))
				return
			}

			products, err := models.DecodeItems[catalog.Product](result.Items)
			if err != nil {
				c.JSON(http.StatusBadGateway, models.Fail("Product data is malformed"))
				return
			}

			for _, p := range products {
				row := sheet.AddRow()
				row.AddCell().SetValue(p.ID)
				row.AddCell().SetValue(p.Name)
				row.AddCell().SetValue(p.Description)
				row.AddCell().SetValue(p.Price)
				row.AddCell().SetValue(p.Stock)
				if p.Category != nil {
					row.AddCell().SetValue(p.Category.Name)
				} else {
					row.AddCell().SetValue("")
				}
				row.AddCell().SetValue(p.ImageURL)
				row.AddCell().SetValue(p.CreatedAt)
			}

			if page >= result.TotalPages-1 {
				break
			}
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to write Excel file"))
			return
		}
	}
}
