package handlers

import (
	"net/http"
	"strconv"

	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tealeg/xlsx/v3"
)

// ExportEvaluations downloads the caller's received evaluations as a
// spreadsheet.
func ExportEvaluations(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		evaluations, err := s.ListEvaluations(user)
		if err != nil {
			respondError(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Evaluations")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build spreadsheet"})
			return
		}

		headers := []string{
			"Todo ID", "No Show", "Headline", "Comment",
			"Professionalism", "Completeness", "Efficiency", "Overall",
			"Created At",
		}
		headerRow := sheet.AddRow()
		for _, header := range headers {
			headerRow.AddCell().Value = header
		}

		optional := func(v *int) string {
			if v == nil {
				return ""
			}
			return strconv.Itoa(*v)
		}

		for _, ev := range evaluations {
			row := sheet.AddRow()
			row.AddCell().Value = strconv.FormatUint(uint64(ev.TodoID), 10)
			row.AddCell().Value = strconv.FormatBool(ev.NoShow)
			row.AddCell().Value = ev.Headline
			row.AddCell().Value = ev.Comment
			row.AddCell().Value = optional(ev.Professionalism)
			row.AddCell().Value = optional(ev.Completeness)
			row.AddCell().Value = optional(ev.Efficiency)
			row.AddCell().Value = strconv.Itoa(ev.OverallRating)
			row.AddCell().Value = ev.CreatedAt.Format("2006-01-02 15:04:05")
		}

		filename := "evaluations_" + uuid.New().String()[:8] + ".xlsx"

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+filename)

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write spreadsheet"})
			return
		}

		c.Status(http.StatusOK)
	}
}
