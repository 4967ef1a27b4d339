package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/kimuray/pcs-gen/internal/decoder"
	"github.com/kimuray/pcs-gen/internal/service"

	"github.com/gin-gonic/gin"
)

// ConvertHandler handles SQL conversion requests
type ConvertHandler struct {
	service  ConvertService
	maxBytes int64
}

// Service interface for dependency injection
type ConvertService interface {
	ConvertToSQL(ctx context.Context, r io.Reader, w io.Writer) (*service.Result, error)
}

// NewConvertHandler creates a new convert handler. Request bodies larger
// than maxBytes are rejected.
func NewConvertHandler(svc ConvertService, maxBytes int64) *ConvertHandler {
	return &ConvertHandler{service: svc, maxBytes: maxBytes}
}

// Convert handles POST /sql requests. A multipart/form-data request must carry
// the postal code file in the field "file"; any other content type is read
// as the raw file.
func (h *ConvertHandler) Convert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	var input io.Reader = c.Request.Body
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		file, err := c.FormFile("file")
		if err != nil {
			if tooLarge(err) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing or unreadable multipart field 'file'"})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file"})
			return
		}
		defer f.Close()
		input = f
	}

	var out bytes.Buffer
	res, err := h.service.ConvertToSQL(c.Request.Context(), input, &out)
	if err != nil {
		var de *decoder.DecodeError
		switch {
		case errors.As(err, &de):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": de.Error()})
		case tooLarge(err):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.Header("X-Records-Read", strconv.Itoa(res.Read))
	c.Header("X-Records-Skipped", strconv.Itoa(res.Skipped))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", out.Bytes())
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
