package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kamaltrader/luxecraft/internal/models"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// RegisterValidators installs the custom binding rules used by admin requests.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("price", priceRule)
	})
}

// priceRule accepts strings holding a decimal the price column can store exactly.
func priceRule(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && models.ValidPrice(d)
}

// bindingErrorMessage maps a bind failure to a client-facing message.
func bindingErrorMessage(err error, missing string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return missing
		}
	}
	return "Invalid " + jsonFieldName(verrs[0])
}

func jsonFieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "EmailPort":
		return "email_port"
	case "RecipientEmail":
		return "recipient_email"
	case "Email":
		return "email"
	default:
		return strings.ToLower(fe.Field())
	}
}

// isBodyTooLarge reports whether err came from an http.MaxBytesReader limit.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint64, bool) {
	id, errID := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errID != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// priceValue accepts a JSON number or string and keeps its textual form.
type priceValue string

// UnmarshalJSON implements json.Unmarshaler.
func (p *priceValue) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = priceValue(text)
	return nil
}

// portValue accepts a JSON number or numeric string.
type portValue int

// UnmarshalJSON implements json.Unmarshaler.
func (p *portValue) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return fmt.Errorf("email_port: %w", err)
	}
	if text == "" {
		*p = 0
		return nil
	}
	n, errParse := strconv.Atoi(text)
	if errParse != nil {
		return fmt.Errorf("email_port: %w", errParse)
	}
	*p = portValue(n)
	return nil
}

// scalarText returns the trimmed text of a JSON string or number. null yields "".
func scalarText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", errors.New("expected a number or string")
	}
	return n.String(), nil
}
