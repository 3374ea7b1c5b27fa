package checkout

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"sixthsoul_bff/constants"
	"sixthsoul_bff/model"
)

var (
	ErrDraftNotFound   = errors.New("checkout draft not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrAddressRequired = errors.New("shipping address required")
	ErrUnknownAddress  = errors.New("address does not belong to user")
	ErrNotOwner        = errors.New("draft belongs to another user")

	errStale = errors.New("draft generation superseded")
)

// UserError mang thông báo hiển thị cho người dùng kèm lỗi gốc
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }
func (e *UserError) Unwrap() error { return e.Err }

// ValidationError liệt kê lỗi theo từng trường của form
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "invalid checkout form: " + strings.Join(keys, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NormalizeForm cắt khoảng trắng để chuỗi chỉ có dấu cách bị coi là rỗng
func NormalizeForm(form model.CheckoutForm) model.CheckoutForm {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Address = strings.TrimSpace(form.Address)
	form.Ward = strings.TrimSpace(form.Ward)
	form.District = strings.TrimSpace(form.District)
	form.City = strings.TrimSpace(form.City)
	form.Notes = strings.TrimSpace(form.Notes)
	return form
}

func ValidateForm(form model.CheckoutForm) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return constants.REQUIRED_FIELD
	case "min":
		return constants.PHONE_TOO_SHORT
	case "oneof":
		if fe.Field() == "paymentMethod" {
			return constants.INVALID_PAYMENT_METHOD
		}
		return constants.INVALID_SHIPPING_METHOD
	}
	return constants.ERROR_INPUT
}
