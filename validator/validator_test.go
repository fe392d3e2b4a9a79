package validator

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

type testConfig struct {
	User   string `validate:"required"`
	Port   int    `validate:"min=1,max=65535"`
	Scheme string `validate:"mongoscheme"`
	URL    string `validate:"omitempty,url"`
}

func TestValidate(t *testing.T) {
	c := qt.New(t)
	v := New()

	valid := &testConfig{User: "ann", Port: 5000, Scheme: "mongodb+srv"}
	c.Assert(v.Validate(valid), qt.IsNil)
	valid.Scheme = "mongodb"
	valid.URL = "http://localhost:5000"
	c.Assert(v.Validate(valid), qt.IsNil)

	err := v.Validate(&testConfig{Port: 70000, Scheme: "postgres"})
	c.Assert(err, qt.IsNotNil)
	var validationErrors ValidationErrors
	c.Assert(errors.As(err, &validationErrors), qt.IsTrue)
	c.Assert(validationErrors, qt.DeepEquals, ValidationErrors{
		{Field: "User", Message: "this field is required"},
		{Field: "Port", Message: "must be at most 65535"},
		{Field: "Scheme", Message: "must be mongodb or mongodb+srv"},
	})
	c.Assert(err.Error(), qt.Equals,
		"User: this field is required, Port: must be at most 65535, Scheme: must be mongodb or mongodb+srv")
}

func TestValidateNotAStruct(t *testing.T) {
	c := qt.New(t)
	err := New().Validate("not a struct")
	c.Assert(err, qt.IsNotNil)
	var validationErrors ValidationErrors
	c.Assert(errors.As(err, &validationErrors), qt.IsFalse)
}
