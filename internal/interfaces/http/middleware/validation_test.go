package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Number string `json:"number" binding:"required,max=5"`
}

type partnerForm struct {
	Identity struct {
		BrandName string        `json:"brand_name" binding:"required"`
		Contacts  []contactForm `json:"contact_numbers" binding:"max=1,dive"`
	} `json:"identity"`
	Stage string `json:"funnel_stage" binding:"omitempty,oneof=prospect lead"`
	Since string `json:"since" binding:"omitempty,datetime=2006-01-02"`
	Page  int    `form:"page" binding:"min=1"`
}

func TestValidationDetails(t *testing.T) {
	SetupValidator()

	form := partnerForm{Stage: "won", Since: "yesterday"}
	form.Identity.Contacts = []contactForm{{Number: "0912345678"}}

	details := ValidationDetails(binding.Validator.ValidateStruct(&form))
	require.NotEmpty(t, details)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", byField["identity.brand_name"])
	assert.Equal(t, "Must be at most 5 characters", byField["identity.contact_numbers[0].number"])
	assert.Equal(t, "Must be one of: prospect lead", byField["funnel_stage"])
	assert.Equal(t, "Must be a date formatted as 2006-01-02", byField["since"])
	assert.Equal(t, "Must be at least 1", byField["page"])
}

func TestValidationDetails_NotValidationError(t *testing.T) {
	assert.Nil(t, ValidationDetails(errors.New("unexpected EOF")))
	assert.Nil(t, ValidationDetails(nil))
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "identity.brand_name", fieldPath("PartnerRequest.identity.brand_name"))
	assert.Equal(t, "brand_name", fieldPath("brand_name"))
}
