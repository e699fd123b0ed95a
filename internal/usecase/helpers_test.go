package usecase_test

import (
	"strings"
	"testing"

	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "not an HTTPError: %v", err) {
		assert.Equal(t, want, he.Status)
	}
}
