package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		in        string
		wantFirst string
		wantLast  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane", "Jane", ""},
		{"Jane Middle Doe", "Jane", "Middle Doe"},
		{"  Jane   Doe  ", "Jane", "Doe"},
		{"", "", ""},
	}

	for _, tc := range cases {
		first, last := SplitFullName(tc.in)
		assert.Equal(t, tc.wantFirst, first, tc.in)
		assert.Equal(t, tc.wantLast, last, tc.in)
	}
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", (&User{FirstName: "Jane", LastName: "Doe"}).FullName())
	assert.Equal(t, "Jane", (&User{FirstName: "Jane"}).FullName())
}
