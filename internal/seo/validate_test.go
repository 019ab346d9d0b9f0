package seo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedMetadata(t *testing.T) {
	t.Parallel()

	meta := basicPage()
	meta.OpenGraph.Image = ImageObject{URL: "img", Width: Int(500), Height: Int(0)}
	meta.OpenGraph.Article = &Article{
		PublishedTime: String("2021-09-22"),
		ModifiedTime:  String("2021-09-22T10:00:00Z"),
		Authors:       []string{},
	}
	meta.Twitter = &Twitter{Card: "summary_large_image"}
	meta.Alternates = []Alternate{{Hreflang: "x-default", Href: "/"}, {Hreflang: "ja", Href: "/ja"}}

	require.NoError(t, meta.Validate())
	require.NoError(t, PageMetadata{Title: "minimal"}.Validate())
}

func TestValidateReportsEveryOffendingField(t *testing.T) {
	t.Parallel()

	meta := PageMetadata{
		Title: " ",
		OpenGraph: &OpenGraph{
			Type:             "book",
			Image:            &ImageObject{Width: Int(-1)},
			Determiner:       String("some"),
			Locale:           String("not a locale!"),
			AlternateLocales: []string{"en_US", ""},
			Article:          &Article{ExpirationTime: String("next week")},
		},
		Twitter:    &Twitter{Card: "gallery"},
		Alternates: []Alternate{{Hreflang: "en"}},
		Extend: Extend{
			Meta: []ExtraMeta{{Name: "a", Property: "b"}},
			Link: []ExtraLink{{Rel: "icon"}},
		},
	}

	err := meta.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{
		"Title",
		"OpenGraph.Title",
		"OpenGraph.URL",
		"OpenGraph.Image.URL",
		"OpenGraph.Image.Width",
		"OpenGraph.Determiner",
		"OpenGraph.Locale",
		"OpenGraph.AlternateLocales[1]",
		"OpenGraph.Article.ExpirationTime",
		"Twitter.Card",
		"Alternates[0].Href",
		"Extend.Meta[0]",
		"Extend.Link[0]",
	}, verr.Fields())
	require.Contains(t, err.Error(), "OpenGraph.Image.URL")
}

func TestValidateRequiresImageWhenOpenGraphPresent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		image Image
	}{
		{name: "nil interface", image: nil},
		{name: "nil pointer", image: (*ImageObject)(nil)},
		{name: "nil url pointer", image: (*ImageURL)(nil)},
		{name: "blank url", image: ImageURL("  ")},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			meta := PageMetadata{Title: "t", OpenGraph: &OpenGraph{Title: "t", Type: "website", URL: "/", Image: tc.image}}
			var verr *ValidationError
			require.ErrorAs(t, meta.Validate(), &verr)
			require.Equal(t, []string{"OpenGraph.Image"}, verr.Fields())
		})
	}
}

func TestValidateImageURLPointer(t *testing.T) {
	t.Parallel()

	u := ImageURL("https://example.com/a.png")
	meta := basicPage()
	meta.OpenGraph.Image = &u
	require.NoError(t, meta.Validate())

	blankURL := ImageURL("")
	meta.OpenGraph.Image = &blankURL
	var verr *ValidationError
	require.ErrorAs(t, meta.Validate(), &verr)
	require.Equal(t, []string{"OpenGraph.Image"}, verr.Fields())
}

func TestValidateStructuredDataMustMarshal(t *testing.T) {
	t.Parallel()

	meta := PageMetadata{
		Title: "t",
		StructuredData: []map[string]any{
			{"@type": "Thing"},
			{"@type": "Thing", "extra": map[any]any{1: "one"}},
			nil,
		},
	}
	var verr *ValidationError
	require.ErrorAs(t, meta.Validate(), &verr)
	require.Equal(t, []string{"StructuredData[1]", "StructuredData[2]"}, verr.Fields())
}

func TestValidationErrorFieldsIsACopy(t *testing.T) {
	t.Parallel()

	verr := &ValidationError{fields: []string{"Title"}}
	fields := verr.Fields()
	fields[0] = "changed"
	require.Equal(t, []string{"Title"}, verr.Fields())
}
