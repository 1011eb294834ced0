package service

import (
	"fmt"

	"github.com/mmcdole/marquee/internal/domain"
)

// Cache keys are prefixed with the API language so a language switch
// never serves text fetched for another locale.
const (
	// PrefixSearch is the segment shared by all search result pages
	PrefixSearch = "search:"

	// PrefixDetails is the segment used for inspector bundles
	PrefixDetails = "details:"
)

// pageKey is {lang}:{list}:{page}
func pageKey(lang, list string, page int) string {
	return fmt.Sprintf("%s:%s:%d", lang, list, page)
}

// detailKey is {lang}:details:{kind}:{id}:bundle. The suffix keeps the key of
// movie:60 from being a prefix of movie:603.
func detailKey(lang string, ref domain.ItemRef) string {
	return lang + ":" + PrefixDetails + ref.String() + ":bundle"
}

// SearchCachePrefix returns the prefix covering every cached search page in lang.
func SearchCachePrefix(lang string) string {
	return lang + ":" + PrefixSearch
}
