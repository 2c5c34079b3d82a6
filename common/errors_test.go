package common_test

import (
	"bneibrit/common"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Errors", func() {
	Describe("ErrBadParam", func() {
		Describe("Error", func() {
			It("should return default message if cause is nil", func() {
				err := common.ErrBadParam{}
				Expect(err.Error()).To(Equal("common.bad_param"))
			})
			It("should invoke the Error() function of cause property if cause is not nil", func() {
				err := common.ErrBadParam{Cause: errors.New("salary must be positive")}
				Expect(err.Error()).To(Equal("salary must be positive"))
			})
		})
		Describe("Respond", func() {
			It("should respond bad request with the cause as message", func() {
				err := &common.ErrBadParam{Cause: errors.New("bad date")}
				Expect(*err.Respond()).To(Equal(common.BizErrorDetail{
					Status: http.StatusBadRequest, Code: "common.bad_param", Message: "bad date"}))
			})
		})
	})
})
