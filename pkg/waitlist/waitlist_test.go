package waitlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loonies/api/pkg/waitlist"
)

func TestArea(t *testing.T) {
	assert.Equal(t, "valby", waitlist.Area())

	t.Setenv("WAITLIST_AREA", "nordhavn")
	assert.Equal(t, "nordhavn", waitlist.Area())
}

func TestIsKnownInterest(t *testing.T) {
	assert.True(t, waitlist.IsKnownInterest("Kaffe"))
	assert.False(t, waitlist.IsKnownInterest("kaffe"))
	assert.False(t, waitlist.IsKnownInterest("Bogus"))
}
