package validation_test

import (
	"testing"
	"time"

	errors "github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func fields(err *errors.AppError) []string {
	var out []string
	for _, e := range err.Details.(errors.ValidationErrors).Errors {
		out = append(out, e.Field)
	}
	return out
}

var _ = Describe("ValidationBuilder", func() {
	It("passes valid input", func() {
		v := validation.NewValidator()
		v.Field("name", "Door").Required().MaxLength(10)
		v.Field("price", 10.5).MinFloat(0, errors.ErrCodeInvalidAmount)
		v.Field("email", "a@b.co").Email()
		v.Field("status", "sent").OneOf(errors.ErrCodeInvalidStatus, "draft", "sent")
		Expect(v.Validate()).To(BeNil())
	})

	It("aggregates every failing field", func() {
		v := validation.NewValidator()
		v.Field("name", "").Required()
		v.Field("price", -1.0).MinFloat(0, errors.ErrCodeInvalidAmount)
		v.Field("email", "nope").Email()
		v.Field("status", "lost").OneOf(errors.ErrCodeInvalidStatus, "draft", "sent")
		v.Field("quantity", 0).MinInt(1, errors.ErrCodeInvalidAmount)

		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.StatusCode).To(Equal(400))
		Expect(fields(err)).To(Equal([]string{"name", "price", "email", "status", "quantity"}))
	})

	It("treats blank strings and zero times as missing", func() {
		v := validation.NewValidator()
		v.Field("name", "   ").Required()
		v.Field("dueDate", time.Time{}).Required()
		v.Field("start", (*time.Time)(nil)).Required()
		Expect(fields(v.Validate())).To(HaveLen(3))
	})

	It("checks date ordering", func() {
		start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		before := start.AddDate(0, 0, -1)
		after := start.AddDate(0, 0, 1)

		ok := validation.NewValidator()
		ok.Field("endDate", &after).NotBefore(&start)
		Expect(ok.Validate()).To(BeNil())

		bad := validation.NewValidator()
		bad.Field("endDate", &before).NotBefore(&start)
		Expect(bad.Validate()).NotTo(BeNil())
	})

	It("runs custom validators", func() {
		v := validation.NewValidator()
		v.Field("sku", "x").Custom(func(interface{}) *errors.AppError {
			return errors.NewValidationError("sku is malformed", errors.ErrCodeValidationFailed)
		})
		err := v.Validate()
		Expect(err.GetDetailedMessage()).To(Equal("sku is malformed"))
	})
})

var _ = Describe("ParseDate", func() {
	It("accepts plain dates and timestamps", func() {
		d, err := validation.ParseDate("startDate", "2024-03-15")
		Expect(err).To(BeNil())
		Expect(*d).To(Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))

		ts, err := validation.ParseDate("startDate", "2024-03-15T10:00:00+02:00")
		Expect(err).To(BeNil())
		Expect(ts.Hour()).To(Equal(8))
	})

	It("returns nil for blank input and an error for garbage", func() {
		d, err := validation.ParseDate("startDate", "")
		Expect(err).To(BeNil())
		Expect(d).To(BeNil())

		_, err = validation.ParseDate("startDate", "next tuesday")
		Expect(err).NotTo(BeNil())
	})
})
