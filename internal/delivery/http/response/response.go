package response

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"pickme-backend/internal/domain"
)

// Link is a HATEOAS link.
type Link struct {
	Href string `json:"href"`
}

// Links maps a relation name to its link.
type Links map[string]Link

// Add sets rel to the formatted path.
func (l Links) Add(rel, format string, args ...any) Links {
	l[rel] = Link{Href: fmt.Sprintf(format, args...)}
	return l
}

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Links     Links       `json:"_links,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	Linked(c, code, message, data, nil)
}

// Linked sends a success response that carries navigation links.
func Linked(c *gin.Context, code int, message string, data interface{}, links Links) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Links:     links,
		RequestID: requestID(c),
	})
}
