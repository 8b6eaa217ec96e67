package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceFloat(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"number", 1450.5, 1450.5},
		{"int", 12, 12},
		{"numeric string", "1450.5", 1450.5},
		{"negative passes through", -50.0, -50},
		{"garbage string", "a lot", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, coerceFloat(tc.in))
		})
	}
}

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want int
	}{
		{"json number", 15.0, 15},
		{"truncates fraction", 15.9, 15},
		{"int", 3, 3},
		{"numeric string", "15", 15},
		{"garbage string", "first", 0},
		{"nil", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, coerceInt(tc.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := parseDate("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = parseDate("15/01/2026")
	assert.Error(t, err)

	_, err = parseDate("")
	assert.Error(t, err)
}
