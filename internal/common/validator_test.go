package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorFirstFailureWins(t *testing.T) {
	v := NewValidator()
	v.Check(true, "a", "never reported")
	v.Check(false, "b", "first")
	v.Check(false, "c", "second")

	assert.False(t, v.Valid())

	err := v.ValidationError()
	var validationErr ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "b", validationErr.Field)
	assert.Equal(t, "first", err.Error())
}

func TestValidatorValid(t *testing.T) {
	v := NewValidator()
	v.Check(true, "a", "ok")

	assert.True(t, v.Valid())
	assert.NoError(t, v.ValidationError())
}

func TestCheckStringLength(t *testing.T) {
	testCases := []struct {
		input    string
		min, max int
		want     bool
	}{
		{input: "", min: 3, max: 0, want: false},
		{input: "ab", min: 3, max: 0, want: false},
		{input: "abc", min: 3, max: 0, want: true},
		{input: "äöü", min: 3, max: 0, want: true},
		{input: "abcdef", min: 3, max: 5, want: false},
		{input: "abcde", min: 3, max: 5, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			v := NewValidator()
			assert.Equal(t, tc.want, v.CheckStringLength(tc.input, tc.min, tc.max))
		})
	}
}

func TestParseID(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want error
	}{
		{name: "generated", id: NewID(), want: nil},
		{name: "empty", id: "", want: ErrMalformedID},
		{name: "object id", id: "5a422a851b54a676234d17f7", want: ErrMalformedID},
		{name: "braced", id: "{" + NewID()[:34] + "}", want: ErrMalformedID},
		{name: "garbage", id: "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", want: ErrMalformedID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseID(tc.id))
		})
	}
}
