package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualText(t *testing.T) {
	assert.True(t, Equal(Text{Value: "a"}, Text{Value: "a"}))
	assert.False(t, Equal(Text{Value: "a"}, Text{Value: "b"}))
	assert.False(t, Equal(Text{Value: ""}, nil))
}

func TestEqualImageComparesPixels(t *testing.T) {
	a := Image{Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}}
	same := Image{Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}}
	differentPixels := Image{Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 5}}

	assert.True(t, Equal(a, same))
	// Same dimensions are not enough.
	assert.False(t, Equal(a, differentPixels))
}

func TestEqualAcrossKinds(t *testing.T) {
	assert.False(t, Equal(Text{Value: "x"}, Image{Width: 1, Height: 1, Pixels: []byte{0, 0, 0, 0}}))
	assert.False(t, Equal(Image{}, Text{}))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, Text{}))
}

func TestImageSize(t *testing.T) {
	assert.Equal(t, 16, Image{Width: 2, Height: 2}.Size())
	assert.Equal(t, 0, Image{}.Size())
}
