package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavorites(t *testing.T) {
	f := NewFavorites("카카오", "삼성전자", "NAVER")
	assert.Equal(t, []string{"NAVER", "삼성전자", "카카오"}, f.Sorted())
	assert.True(t, f.Contains("카카오"))

	c := f.Clone()
	delete(c, "카카오")
	assert.True(t, f.Contains("카카오"), "clone must not share storage")
	assert.False(t, f.Equal(c))
	assert.True(t, f.Equal(NewFavorites("NAVER", "카카오", "삼성전자")))
}

func TestSessionStateView(t *testing.T) {
	s := SessionState{Favorites: NewFavorites("카카오"), SearchText: "카카오", ActiveCompany: "카카오"}
	v := s.View("User")
	assert.Equal(t, "User", v.DisplayName)
	assert.True(t, v.IsFavorite)
	assert.Equal(t, []string{"카카오"}, v.Favorites)

	empty := SessionState{Favorites: NewFavorites()}.View("User")
	assert.False(t, empty.IsFavorite)
	assert.NotNil(t, empty.Favorites, "favorites must marshal as [] not null")
}
