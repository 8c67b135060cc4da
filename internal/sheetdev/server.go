package sheetdev

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Server exposes the Store behind the same wire contract as the remote
// spreadsheet script, so the forum server can be pointed at it with
// nothing but a different SHEETS_API_URL.
type Server struct {
	store   *Store
	sheetID string
}

func NewServer(store *Store, sheetID string) *Server {
	return &Server{store: store, sheetID: sheetID}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/", s.query)
	router.POST("/", s.mutate)
	return router
}

func (s *Server) query(c *gin.Context) {
	if !s.validSheetID(c.Query("sheetId")) {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Unknown sheetId"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	page, _ := strconv.Atoi(c.Query("page"))

	rows, page, totalPages, err := s.store.Query(
		c.Query("sheet"),
		c.Query("filterKey"),
		c.Query("filterValue"),
		limit,
		page,
	)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": gin.H{
			"data":       rows,
			"page":       page,
			"totalPages": totalPages,
		},
	})
}

func (s *Server) mutate(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if !s.validSheetID(asString(body["sheetId"])) {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Unknown sheetId"})
		return
	}

	method := asString(body["method"])
	sheet := asString(body["sheet"])

	fields := make(map[string]string, len(body))
	for key, value := range body {
		switch key {
		case "method", "sheetId", "sheet":
			continue
		}
		fields[key] = asString(value)
	}

	var err error
	switch method {
	case "create":
		err = s.store.Create(sheet, fields)
	case "update":
		id := fields["id"]
		delete(fields, "id")
		err = s.store.Update(sheet, id, fields)
	default:
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Unknown method"})
		return
	}

	if errors.Is(err, ErrRowNotFound) || errors.Is(err, ErrUnknownSheet) {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Write failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) validSheetID(id string) bool {
	return s.sheetID == "" || id == s.sheetID
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return ""
	}
}
