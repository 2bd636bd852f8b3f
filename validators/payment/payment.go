package paymentValidator

import (
	"coursepay/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CheckoutRequest is the body of POST /checkout. Redirect URLs are optional;
// configured defaults apply when they are absent.
type CheckoutRequest struct {
	CourseID   string `json:"courseId" validate:"required"`
	SuccessURL string `json:"successUrl" validate:"omitempty,url"`
	CancelURL  string `json:"cancelUrl" validate:"omitempty,url"`
}

// CreateCheckout validates the checkout body and stashes it for the handler.
func CreateCheckout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CheckoutRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "CourseID":
					errors["courseId"] = "Course id is required!"
				case "SuccessURL":
					errors["successUrl"] = "Success URL must be a valid URL!"
				case "CancelURL":
					errors["cancelUrl"] = "Cancel URL must be a valid URL!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}
