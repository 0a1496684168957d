package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"простой заголовок", "Hello World", "hello-world"},
		{"спецсимволы убираются", "Go 1.24: What's New?!", "go-124-whats-new"},
		{"лишние пробелы схлопываются", "  a   b  ", "a-b"},
		{"подчёркивание сохраняется", "snake_case title", "snake_case-title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestMakeSlug(t *testing.T) {
	t.Run("slug содержит метку времени", func(t *testing.T) {
		at := time.UnixMilli(1712345678901)
		slug := MakeSlug("Hello World", at)

		assert.Equal(t, "hello-world-1712345678901", slug)
	})

	t.Run("одинаковые заголовки в разное время дают разные slug", func(t *testing.T) {
		first := MakeSlug("Hello World", time.UnixMilli(1000))
		second := MakeSlug("Hello World", time.UnixMilli(2000))

		assert.NotEqual(t, first, second)
		assert.True(t, strings.HasPrefix(first, "hello-world-"))
		assert.True(t, strings.HasPrefix(second, "hello-world-"))
	})
}
