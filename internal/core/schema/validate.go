// Package schema defines the boundary rules for stored client and commission
// records: field constraints, enumerations, and lenient decoding.
// This is part of the Functional Core - no I/O, only pure functions.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/easel/internal/models"
)

const (
	MaxIDLength          = 64
	MaxNameLength        = 255
	MaxDescriptionLength = 10000
	MaxEmailLength       = 320
	MaxContactLength     = 50
	MaxFilenameLength    = 255
)

var (
	idPattern    = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	pathDangerous  = []string{"..", "/", "\\", "<", ">", "|", ":", "*", "?", "\""}
	markupMarkers  = []string{"<script", "javascript:", "onload=", "onerror="}
	emailDangerous = []string{"<", ">", "&", "\"", "'", "`"}
	contactDanger  = []string{"<", ">", "&"}

	imageExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp", "webp"}
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names so messages match what is on disk.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "recordid", func(fl validator.FieldLevel) bool {
		return idPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "safename", func(fl validator.FieldLevel) bool {
		return !containsAny(fl.Field().String(), pathDangerous)
	})
	mustRegister(v, "nomarkup", func(fl validator.FieldLevel) bool {
		return !containsAny(strings.ToLower(fl.Field().String()), markupMarkers)
	})
	mustRegister(v, "nodanger", func(fl validator.FieldLevel) bool {
		return !containsAny(fl.Field().String(), contactDanger)
	})
	mustRegister(v, "emaillenient", func(fl validator.FieldLevel) bool {
		return emailAcceptable(fl.Field().String())
	})
	mustRegister(v, "paymentstatus", func(fl validator.FieldLevel) bool {
		return ValidatePaymentStatus(fl.Field().String()) == nil
	})
	mustRegister(v, "workflowstatus", func(fl validator.FieldLevel) bool {
		return ValidateStatus(fl.Field().String()) == nil
	})
	mustRegister(v, "imagepath", func(fl validator.FieldLevel) bool {
		return ValidateImagePath(fl.Field().String()) == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("schema: register %s: %v", tag, err))
	}
}

// FieldError is a single field-level validation problem.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when a record fails boundary validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ValidateStorageClient checks every field constraint of a client record.
func ValidateStorageClient(c models.StorageClient) error {
	return translate(validate.Struct(c))
}

// ValidateStorageCommission checks every field constraint of a commission record.
func ValidateStorageCommission(c models.StorageCommission) error {
	return translate(validate.Struct(c))
}

// ValidateID checks a record identifier.
func ValidateID(id string) error {
	if id == "" {
		return newValidationError("id", "ID cannot be empty")
	}
	if len(id) > MaxIDLength {
		return newValidationError("id", fmt.Sprintf("ID too long (max %d chars)", MaxIDLength))
	}
	if !idPattern.MatchString(id) {
		return newValidationError("id", "ID contains invalid characters (only alphanumeric and underscore allowed)")
	}
	return nil
}

// ValidateStatus checks a storage workflow status literal.
func ValidateStatus(status string) error {
	switch status {
	case models.StorageStatusPending, models.StorageStatusInProgress, models.StorageStatusCompleted:
		return nil
	}
	return newValidationError("status", fmt.Sprintf("invalid status value %q", status))
}

// ValidateBucket checks a bucket name.
func ValidateBucket(b models.Bucket) error {
	switch b {
	case models.BucketPending, models.BucketCompleted:
		return nil
	}
	return newValidationError("bucket", fmt.Sprintf("invalid bucket %q", b))
}

// ValidatePaymentStatus checks a storage payment status literal.
func ValidatePaymentStatus(status string) error {
	switch status {
	case models.StoragePaymentNotPaid, models.StoragePaymentHalfPaid, models.StoragePaymentFullyPaid:
		return nil
	}
	return newValidationError("payment_status", fmt.Sprintf("invalid payment status value %q", status))
}

// ValidateImagePath checks an image reference stored on a commission.
// Data URLs are accepted as-is; file references must be bare names or live under images/.
func ValidateImagePath(path string) error {
	if strings.HasPrefix(path, "data:image/") {
		return nil
	}
	if strings.Contains(path, "..") {
		return newValidationError("images", "path traversal detected")
	}
	if strings.Contains(path, "/") && !strings.HasPrefix(path, "images/") {
		return newValidationError("images", "image paths must be within images/")
	}
	if containsAny(path, []string{"\\", "|", "<", ">"}) {
		return newValidationError("images", "image path contains invalid characters")
	}
	return nil
}

// ValidateFilename checks the name of an uploaded image file.
func ValidateFilename(filename string) error {
	if filename == "" {
		return newValidationError("filename", "Filename cannot be empty")
	}
	if len(filename) > MaxFilenameLength {
		return newValidationError("filename", "Filename too long")
	}
	if containsAny(filename, pathDangerous) {
		return newValidationError("filename", "Filename contains invalid characters")
	}
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return newValidationError("filename", "Filename must have an extension")
	}
	ext := strings.ToLower(filename[dot+1:])
	for _, allowed := range imageExtensions {
		if ext == allowed {
			return nil
		}
	}
	return newValidationError("filename", "Invalid file extension")
}

// CompactImages drops empty image references.
func CompactImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img != "" {
			out = append(out, img)
		}
	}
	return out
}

// LooksLikeEmail reports whether s is shaped like an email address.
func LooksLikeEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// emailAcceptable is lenient: non-email strings pass unless they carry markup characters.
func emailAcceptable(email string) bool {
	if email == "" || LooksLikeEmail(email) {
		return true
	}
	return !containsAny(email, emailDangerous)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate record: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "cannot be empty"
	case "required_without":
		return "cannot be empty"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("too long (max %s chars)", fe.Param())
		}
		return "too large"
	case "min":
		return "cannot be negative"
	case "recordid":
		return "contains invalid characters (only alphanumeric and underscore allowed)"
	case "safename", "nodanger", "emaillenient":
		return "contains invalid characters"
	case "nomarkup":
		return "contains potentially dangerous content"
	case "paymentstatus":
		return fmt.Sprintf("invalid payment status value %q", fe.Value())
	case "workflowstatus":
		return fmt.Sprintf("invalid status value %q", fe.Value())
	case "imagepath":
		return fmt.Sprintf("invalid image path %q", fe.Value())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
