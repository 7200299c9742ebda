package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/careercompass/api/internal/api/middleware"
	"github.com/careercompass/api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type APIError struct {
	Success bool       `json:"success"`
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
	Details any        `json:"details"`
}

// ValidationDetails lists problems per request field.
type ValidationDetails struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func writeOK(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
			Details: ae.Details,
		})
		return
	}

	_ = c.Error(err)
	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: "Internal server error",
	})
}

func requireUserID(c *gin.Context) (string, bool) {
	id := middleware.IdentityFrom(c)
	if id.Authenticated() {
		return id.Subject, true
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "Authentication required", nil))
	return "", false
}

var jsonNamesOnce sync.Once

// useJSONFieldNames makes validator report fields by their json names.
func useJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindJSON decodes and validates the body. On failure it writes a 400
// with msg and per-field details and returns false.
func bindJSON(c *gin.Context, dst any, op, msg string) bool {
	useJSONFieldNames()

	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, utils.EDetails(utils.CodeInvalidArgument, op, msg, validationDetails(err), err))
		return false
	}
	return true
}

func validationDetails(err error) ValidationDetails {
	d := ValidationDetails{FormErrors: []string{}, FieldErrors: map[string][]string{}}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		d.FormErrors = append(d.FormErrors, "Malformed JSON body")
		return d
	}
	for _, fe := range verrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		d.FieldErrors[field] = append(d.FieldErrors[field], fieldMessage(fe))
	}
	return d
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at most %s item(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return "Must be at most " + fe.Param()
	case "gt", "gte":
		return "Must be a positive integer"
	default:
		return "Invalid value"
	}
}

// queryInt parses an optional integer query param. Missing is (0, true).
func queryInt(c *gin.Context, key string) (int64, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
