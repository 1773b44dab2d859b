package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSHA256Hash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", GenerateSHA256Hash(""))
	assert.Len(t, GenerateSHA256Hash("Date,Budget,Amount"), 64)
	assert.NotEqual(t, GenerateSHA256Hash("a"), GenerateSHA256Hash("b"))
}
