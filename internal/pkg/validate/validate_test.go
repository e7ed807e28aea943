package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	for _, ok := range []string{"9876543210", "0000000000"} {
		assert.True(t, Phone(ok), ok)
	}
	for _, bad := range []string{"", "987654321", "98765432101", "+987654321", "98765-4321", "98765.4321", "٩٨٧٦٥٤٣٢١٠", "987654321a"} {
		assert.False(t, Phone(bad), bad)
	}
}

type phoneHolder struct {
	Phone string `validate:"required,phone10"`
}

func TestStruct_Phone10Tag(t *testing.T) {
	assert.NoError(t, Struct(phoneHolder{Phone: "9876543210"}))

	err := Struct(phoneHolder{Phone: "12345"})
	assert.ErrorContains(t, err, "field 'Phone' failed 'phone10'")

	err = Struct(phoneHolder{})
	assert.ErrorContains(t, err, "failed 'required'")
}
