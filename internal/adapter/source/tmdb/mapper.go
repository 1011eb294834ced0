package tmdb

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// MapResults converts list entries to domain list items. kind is used for
// entries that do not carry their own media_type; unknown types are dropped.
func MapResults(results []resultDTO, kind domain.MediaKind) []domain.ListItem {
	items := make([]domain.ListItem, 0, len(results))
	for _, r := range results {
		k := kind
		if r.MediaType != "" {
			k = domain.MediaKind(r.MediaType)
		}
		switch k {
		case domain.KindMovie, domain.KindTV:
			t := mapTitle(r, k)
			items = append(items, &t)
		case domain.KindPerson:
			p := mapPerson(r)
			items = append(items, &p)
		}
	}
	return items
}

// MapTitles converts list entries to titles, dropping people.
func MapTitles(results []resultDTO, kind domain.MediaKind) []domain.Title {
	titles := make([]domain.Title, 0, len(results))
	for _, r := range results {
		k := kind
		if r.MediaType != "" {
			k = domain.MediaKind(r.MediaType)
		}
		if k != domain.KindMovie && k != domain.KindTV {
			continue
		}
		titles = append(titles, mapTitle(r, k))
	}
	return titles
}

func mapPage[T, U any](resp pageResponse[T], mapFn func([]T) []U) domain.Page[U] {
	return domain.Page[U]{
		Items:        mapFn(resp.Results),
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
}

func mapTitle(r resultDTO, kind domain.MediaKind) domain.Title {
	t := domain.Title{
		ID:            r.ID,
		Kind:          kind,
		Overview:      r.Overview,
		VoteAverage:   r.VoteAverage,
		VoteCount:     r.VoteCount,
		Popularity:    r.Popularity,
		OriginalLang:  r.OriginalLanguage,
		GenreIDs:      r.GenreIDs,
		Adult:         r.Adult,
		PosterPath:    r.PosterPath,
		BackdropPath:  r.BackdropPath,
		OriginCountry: r.OriginCountry,
	}
	if kind == domain.KindTV {
		t.Name = firstNonEmpty(r.Name, r.Title)
		t.OriginalName = firstNonEmpty(r.OriginalName, r.OriginalTitle)
		t.ReleaseDate = r.FirstAirDate
	} else {
		t.Name = firstNonEmpty(r.Title, r.Name)
		t.OriginalName = firstNonEmpty(r.OriginalTitle, r.OriginalName)
		t.ReleaseDate = r.ReleaseDate
	}
	t.Year = yearOf(t.ReleaseDate)
	return t
}

func mapPerson(r resultDTO) domain.Person {
	p := domain.Person{
		ID:          r.ID,
		Name:        r.Name,
		Department:  r.KnownForDepartment,
		Popularity:  r.Popularity,
		ProfilePath: r.ProfilePath,
		Adult:       r.Adult,
	}
	for _, k := range r.KnownFor {
		if name := firstNonEmpty(k.Title, k.Name); name != "" {
			p.KnownFor = append(p.KnownFor, name)
		}
	}
	return p
}

// MapMovieDetails converts /movie/{id}
func MapMovieDetails(d movieDetailsDTO) *domain.Details {
	details := &domain.Details{
		Title:     mapTitle(d.resultDTO, domain.KindMovie),
		Tagline:   d.Tagline,
		Status:    d.Status,
		Runtime:   d.Runtime,
		Genres:    mapGenres(d.Genres),
		Homepage:  d.Homepage,
		IMDbID:    d.IMDbID,
		Budget:    d.Budget,
		Revenue:   d.Revenue,
		Languages: mapLanguages(d.SpokenLanguages),
		Countries: mapCountries(d.ProductionCountries),
		Companies: names(d.ProductionCompanies),
	}
	details.GenreIDs = genreIDs(d.Genres)
	return details
}

// MapTVDetails converts /tv/{id}
func MapTVDetails(d tvDetailsDTO) *domain.Details {
	details := &domain.Details{
		Title:      mapTitle(d.resultDTO, domain.KindTV),
		Tagline:    d.Tagline,
		Status:     d.Status,
		Genres:     mapGenres(d.Genres),
		Homepage:   d.Homepage,
		Seasons:    d.NumberOfSeasons,
		Episodes:   d.NumberOfEpisodes,
		Networks:   names(d.Networks),
		CreatedBy:  names(d.CreatedBy),
		Languages:  mapLanguages(d.SpokenLanguages),
		Countries:  mapCountries(d.ProductionCountries),
		Companies:  names(d.ProductionCompanies),
		LastAirDay: d.LastAirDate,
	}
	if len(d.EpisodeRunTime) > 0 {
		details.Runtime = d.EpisodeRunTime[0]
	}
	details.GenreIDs = genreIDs(d.Genres)
	return details
}

// maxPersonCredits caps the credits kept on a person record
const maxPersonCredits = 40

// MapPersonDetails converts /person/{id} with combined credits. Credits are
// de-duplicated and ordered by popularity.
func MapPersonDetails(d personDetailsDTO) *domain.PersonDetails {
	person := &domain.PersonDetails{
		Person:       mapPerson(d.resultDTO),
		Biography:    d.Biography,
		Birthday:     d.Birthday,
		Deathday:     d.Deathday,
		PlaceOfBirth: d.PlaceOfBirth,
		IMDbID:       d.IMDbID,
		AlsoKnownAs:  d.AlsoKnownAs,
	}

	seen := make(map[domain.ItemRef]bool)
	all := append(slices.Clone(d.CombinedCredits.Cast), d.CombinedCredits.Crew...)
	for _, t := range MapTitles(all, "") {
		if seen[t.Ref()] {
			continue
		}
		seen[t.Ref()] = true
		person.Credits = append(person.Credits, t)
	}
	slices.SortStableFunc(person.Credits, func(a, b domain.Title) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})
	if len(person.Credits) > maxPersonCredits {
		person.Credits = person.Credits[:maxPersonCredits]
	}
	for i := 0; i < len(person.Credits) && i < 3; i++ {
		person.KnownFor = append(person.KnownFor, person.Credits[i].Name)
	}
	return person
}

// MapCredits converts /{kind}/{id}/credits; cast is returned in billing order.
func MapCredits(d creditsDTO) ([]domain.CastMember, []domain.CrewMember) {
	cast := make([]domain.CastMember, len(d.Cast))
	for i, c := range d.Cast {
		cast[i] = domain.CastMember{
			PersonID:    c.ID,
			Name:        c.Name,
			Character:   c.Character,
			Order:       c.Order,
			ProfilePath: c.ProfilePath,
		}
	}
	slices.SortStableFunc(cast, func(a, b domain.CastMember) int {
		return cmp.Compare(a.Order, b.Order)
	})

	crew := make([]domain.CrewMember, len(d.Crew))
	for i, c := range d.Crew {
		crew[i] = domain.CrewMember{
			PersonID:   c.ID,
			Name:       c.Name,
			Job:        c.Job,
			Department: c.Department,
		}
	}
	return cast, crew
}

// MapReviews converts review entries
func MapReviews(reviews []reviewDTO) []domain.Review {
	out := make([]domain.Review, len(reviews))
	for i, r := range reviews {
		out[i] = domain.Review{
			ID:        r.ID,
			Author:    r.Author,
			Content:   strings.TrimSpace(r.Content),
			CreatedAt: r.CreatedAt,
			URL:       r.URL,
		}
		if r.AuthorDetails.Rating != nil {
			out[i].Rating = *r.AuthorDetails.Rating
		}
	}
	return out
}

// MapImages flattens /images into one list: posters, backdrops, logos, profiles.
func MapImages(d imagesDTO) []domain.Image {
	images := make([]domain.Image, 0, len(d.Posters)+len(d.Backdrops)+len(d.Logos)+len(d.Profiles))
	add := func(list []imageDTO, typ domain.ImageType) {
		for _, img := range list {
			if img.FilePath == "" {
				continue
			}
			lang := ""
			if img.ISO6391 != nil {
				lang = *img.ISO6391
			}
			images = append(images, domain.Image{
				Type:        typ,
				FilePath:    img.FilePath,
				Width:       img.Width,
				Height:      img.Height,
				Language:    lang,
				VoteAverage: img.VoteAverage,
			})
		}
	}
	add(d.Posters, domain.ImagePoster)
	add(d.Backdrops, domain.ImageBackdrop)
	add(d.Logos, domain.ImageLogo)
	add(d.Profiles, domain.ImageProfile)
	return images
}

// MapVideos converts /videos, official trailers first
func MapVideos(d videosDTO) []domain.Video {
	videos := make([]domain.Video, len(d.Results))
	for i, v := range d.Results {
		videos[i] = domain.Video{
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		}
	}
	slices.SortStableFunc(videos, func(a, b domain.Video) int {
		return cmp.Compare(videoRank(a), videoRank(b))
	})
	return videos
}

func videoRank(v domain.Video) int {
	rank := 2
	switch v.Type {
	case "Trailer":
		rank = 0
	case "Teaser":
		rank = 1
	}
	if !v.Official {
		rank += 3
	}
	return rank
}

func mapGenres(genres []genreDTO) []domain.Genre {
	out := make([]domain.Genre, len(genres))
	for i, g := range genres {
		out[i] = domain.Genre{ID: g.ID, Name: g.Name}
	}
	return out
}

func genreIDs(genres []genreDTO) []int {
	ids := make([]int, len(genres))
	for i, g := range genres {
		ids[i] = g.ID
	}
	return ids
}

func mapLanguages(langs []languageDTO) []string {
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		out = append(out, firstNonEmpty(l.EnglishName, l.Name, l.ISO6391))
	}
	return out
}

func mapCountries(countries []countryDTO) []string {
	out := make([]string, 0, len(countries))
	for _, c := range countries {
		out = append(out, firstNonEmpty(c.Name, c.ISO31661))
	}
	return out
}

func names(list []namedDTO) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		if n.Name != "" {
			out = append(out, n.Name)
		}
	}
	return out
}

// yearOf extracts the year from a YYYY-MM-DD date, 0 if absent.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
