package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.English},
		{"C", language.English},
		{"en_US.UTF-8", language.English},
		{"zh_CN.UTF-8", language.SimplifiedChinese},
		{"zh-Hans", language.SimplifiedChinese},
		{"zh", language.SimplifiedChinese},
		{"not a tag!", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.in))
		})
	}
}

func TestTranslate(t *testing.T) {
	en := New("en")
	assert.Equal(t, "Popular Movies", en.T("category.popular_movies"))
	assert.Equal(t, "End of list · 40 items", en.T("feed.end", 40))
	assert.Equal(t, "en-US", en.TMDBLanguage())

	zh := New("zh_CN")
	assert.Equal(t, "流行电影", zh.T("category.popular_movies"))
	assert.Equal(t, "zh-CN", zh.TMDBLanguage())
	assert.Equal(t, language.SimplifiedChinese, zh.Tag())
}

func TestUnknownKeyIsReturned(t *testing.T) {
	assert.Equal(t, "no.such.key", New("en").T("no.such.key"))
}

func TestEveryKeyIsTranslated(t *testing.T) {
	for _, key := range Keys() {
		assert.Contains(t, chinese, key)
	}
	assert.Len(t, chinese, len(english))
}
