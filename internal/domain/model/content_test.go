package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Zero Trust, Explained", "zero-trust-explained"},
		{"  Café Security 101  ", "cafe-security-101"},
		{"--Already-a-slug--", "already-a-slug"},
		{"SOC 2 / ISO 27001", "soc-2-iso-27001"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b,a,"))
	assert.Empty(t, SplitList(""))
}

func TestPostInput_NormalizeDerivesSlug(t *testing.T) {
	got := PostInput{
		Title:   "  Hardening Kubernetes ",
		Content: " body ",
		Excerpt: strPtr(" "),
		Tags:    []string{" k8s ", "k8s", ""},
	}.Normalize()

	assert.Equal(t, "Hardening Kubernetes", got.Title)
	assert.Equal(t, "hardening-kubernetes", got.Slug)
	assert.Equal(t, "body", got.Content)
	assert.Nil(t, got.Excerpt)
	assert.Equal(t, []string{"k8s"}, got.Tags)

	kept := PostInput{Title: "T", Slug: " Custom-Slug "}.Normalize()
	assert.Equal(t, "custom-slug", kept.Slug)
}

func TestPostInput_Validate(t *testing.T) {
	valid := PostInput{Title: "T", Slug: "t", Content: "c"}

	tests := []struct {
		name   string
		mutate func(*PostInput)
		field  string
	}{
		{"valid", func(*PostInput) {}, ""},
		{"missing title", func(p *PostInput) { p.Title = "" }, "title"},
		{"title too long", func(p *PostInput) { p.Title = strings.Repeat("t", 201) }, "title"},
		{"bad slug", func(p *PostInput) { p.Slug = "two--dashes" }, "slug"},
		{"empty slug", func(p *PostInput) { p.Slug = "" }, "slug"},
		{"missing content", func(p *PostInput) { p.Content = "" }, "content"},
		{"meta title too long", func(p *PostInput) { p.MetaTitle = strPtr(strings.Repeat("m", 71)) }, "meta_title"},
		{"meta description too long", func(p *PostInput) { p.MetaDescription = strPtr(strings.Repeat("m", 161)) }, "meta_description"},
		{"too many tags", func(p *PostInput) { p.Tags = make([]string, 21) }, "tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestCatalogInputs_Validate(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		field string
	}{
		{"plan ok", PricingPlanInput{Name: "Pro", Price: "$999", Period: "month"}.Validate(), ""},
		{"plan needs price", PricingPlanInput{Name: "Pro", Period: "month"}.Validate(), "price"},
		{"plan negative order", PricingPlanInput{Name: "Pro", Price: "1", Period: "m", DisplayOrder: -1}.Validate(), "display_order"},
		{"service ok", ServiceOfferingInput{Name: "Pentest", Description: "d"}.Validate(), ""},
		{"service needs description", ServiceOfferingInput{Name: "Pentest"}.Validate(), "description"},
		{"testimonial ok", TestimonialInput{AuthorName: "A", AuthorRole: "CISO", Content: "c", Rating: 4}.Validate(), ""},
		{"testimonial rating high", TestimonialInput{AuthorName: "A", AuthorRole: "CISO", Content: "c", Rating: 6}.Validate(), "rating"},
		{"testimonial needs role", TestimonialInput{AuthorName: "A", Content: "c", Rating: 5}.Validate(), "author_role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field == "" {
				require.NoError(t, tt.err)
				return
			}
			var fe *FieldError
			require.True(t, errors.As(tt.err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestTestimonialInput_NormalizeDefaultsRating(t *testing.T) {
	got := TestimonialInput{AuthorName: " A ", AuthorCompany: strPtr(""), Content: "c"}.Normalize()
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "A", got.AuthorName)
	assert.Nil(t, got.AuthorCompany)

	assert.Equal(t, 2, TestimonialInput{Rating: 2}.Normalize().Rating)
}

func TestCatalogInputs_NormalizeCleansFeatures(t *testing.T) {
	plan := PricingPlanInput{Features: []string{" Scan ", "", "Scan", "Report"}}.Normalize()
	assert.Equal(t, []string{"Scan", "Report"}, plan.Features)

	svc := ServiceOfferingInput{Name: " Pentest ", PriceRange: strPtr(" ")}.Normalize()
	assert.Equal(t, "Pentest", svc.Name)
	assert.Nil(t, svc.PriceRange)
}

func TestSiteSetting_Typed(t *testing.T) {
	tests := []struct {
		name string
		in   SiteSetting
		want any
	}{
		{"boolean true", SiteSetting{Type: SettingTypeBoolean, Value: "true"}, true},
		{"boolean other", SiteSetting{Type: SettingTypeBoolean, Value: "yes"}, false},
		{"number", SiteSetting{Type: SettingTypeNumber, Value: "587"}, float64(587)},
		{"bad number stays text", SiteSetting{Type: SettingTypeNumber, Value: "n/a"}, "n/a"},
		{"json", SiteSetting{Type: SettingTypeJSON, Value: `{"a":1}`}, map[string]any{"a": float64(1)}},
		{"string", SiteSetting{Type: SettingTypeString, Value: "SentinelLock"}, "SentinelLock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Typed())
		})
	}
}

func TestNormalizeSettingValue(t *testing.T) {
	v, err := NormalizeSettingValue("maintenance_mode", SettingTypeBoolean, " TRUE ")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	v, err = NormalizeSettingValue("smtp_port", SettingTypeNumber, "0587")
	require.NoError(t, err)
	assert.Equal(t, "587", v)

	v, err = NormalizeSettingValue("site_name", SettingTypeString, " SentinelLock ")
	require.NoError(t, err)
	assert.Equal(t, "SentinelLock", v)

	_, err = NormalizeSettingValue("smtp_port", SettingTypeNumber, "lots")
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "smtp_port", fe.Field)

	_, err = NormalizeSettingValue("social", SettingTypeJSON, "{")
	require.Error(t, err)
}
