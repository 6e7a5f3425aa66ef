package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type lineItem struct {
	Ref int `json:"ref" validate:"required,min=1"`
}

type order struct {
	Email string     `json:"email" validate:"required,email"`
	Items []lineItem `json:"items" validate:"required,min=1,dive"`
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(order{Email: "a@b.io", Items: []lineItem{{Ref: 1}}})
	assert.Nil(t, errs)
}

func TestValidateStruct_UsesJSONPaths(t *testing.T) {
	errs := ValidateStruct(order{Email: "nope", Items: []lineItem{{Ref: 2}, {Ref: 0}}})

	assert.Equal(t, map[string]string{
		"email":        "Invalid email format",
		"items[1].ref": "This field is required",
	}, errs)
}

func TestValidateStruct_EmptySlice(t *testing.T) {
	errs := ValidateStruct(order{Email: "a@b.io", Items: []lineItem{}})

	assert.Equal(t, "Must contain at least 1 item(s)", errs["items"])
}
