package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthValue(t *testing.T) {
	l := Length(30.0)
	assert.Equal(t, 30.0, l.Value())
}

func TestAreaValue(t *testing.T) {
	a := Area(900.0)
	assert.Equal(t, 900.0, a.Value())
}

func TestVolumeValue(t *testing.T) {
	v := Volume(27000.0)
	assert.Equal(t, 27000.0, v.Value())
}
