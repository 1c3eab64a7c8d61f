//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxTitleLen     = 200
	maxMetaTitleLen = 70
	maxMetaDescLen  = 160
	maxTagCount     = 20
	maxRating       = 5
	defaultRating   = 5
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify turns a title into a URL slug: accents are folded, runs of anything
// that is not a letter or digit become a single hyphen.
func Slugify(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// SplitList splits a comma separated list, dropping blank items.
func SplitList(s string) []string {
	return cleanList(strings.Split(s, ","))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func fieldTooLong(field string, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return &FieldError{Field: field, Reason: "is too long"}
	}
	return nil
}

// Post is a full blog_posts row.
type Post struct {
	ID               string     `json:"id"                 db:"id"`
	Title            string     `json:"title"              db:"title"`
	Slug             string     `json:"slug"               db:"slug"`
	Excerpt          *string    `json:"excerpt"            db:"excerpt"`
	Content          string     `json:"content"            db:"content"`
	FeaturedImageURL *string    `json:"featured_image_url" db:"featured_image_url"`
	AuthorID         *string    `json:"author_id"          db:"author_id"`
	Published        bool       `json:"published"          db:"published"`
	PublishedAt      *time.Time `json:"published_at"       db:"published_at"`
	MetaTitle        *string    `json:"meta_title"         db:"meta_title"`
	MetaDescription  *string    `json:"meta_description"   db:"meta_description"`
	Tags             []string   `json:"tags"               db:"tags"`
	CreatedAt        time.Time  `json:"created_at"         db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"         db:"updated_at"`
}

// PostInput is the editable part of a blog post.
type PostInput struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Excerpt          *string  `json:"excerpt"`
	Content          string   `json:"content"`
	FeaturedImageURL *string  `json:"featured_image_url"`
	MetaTitle        *string  `json:"meta_title"`
	MetaDescription  *string  `json:"meta_description"`
	Tags             []string `json:"tags"`
	Published        bool     `json:"published"`
}

// Normalize trims fields, derives a missing slug from the title and cleans tags.
func (p PostInput) Normalize() PostInput {
	out := PostInput{
		Title:            strings.TrimSpace(p.Title),
		Slug:             strings.ToLower(strings.TrimSpace(p.Slug)),
		Excerpt:          optionalString(p.Excerpt),
		Content:          strings.TrimSpace(p.Content),
		FeaturedImageURL: optionalString(p.FeaturedImageURL),
		MetaTitle:        optionalString(p.MetaTitle),
		MetaDescription:  optionalString(p.MetaDescription),
		Tags:             cleanList(p.Tags),
		Published:        p.Published,
	}
	if out.Slug == "" {
		out.Slug = Slugify(out.Title)
	}
	return out
}

// Validate checks a normalized post. The error, when non-nil, is a *FieldError.
func (p PostInput) Validate() error {
	if p.Title == "" {
		return &FieldError{Field: "title", Reason: "is required"}
	}
	if err := fieldTooLong("title", p.Title, maxTitleLen); err != nil {
		return err
	}
	if !slugPattern.MatchString(p.Slug) {
		return &FieldError{Field: "slug", Reason: "must be lowercase letters, digits and single hyphens"}
	}
	if p.Content == "" {
		return &FieldError{Field: "content", Reason: "is required"}
	}
	if p.MetaTitle != nil {
		if err := fieldTooLong("meta_title", *p.MetaTitle, maxMetaTitleLen); err != nil {
			return err
		}
	}
	if p.MetaDescription != nil {
		if err := fieldTooLong("meta_description", *p.MetaDescription, maxMetaDescLen); err != nil {
			return err
		}
	}
	if len(p.Tags) > maxTagCount {
		return &FieldError{Field: "tags", Reason: "has too many entries"}
	}
	return nil
}

// PostWrite is what gets stored for a post: the input plus the author and
// publication time chosen by the caller.
type PostWrite struct {
	PostInput
	AuthorID    *string    `json:"author_id"`
	PublishedAt *time.Time `json:"published_at"`
}

// PricingPlan is a pricing_plans row.
type PricingPlan struct {
	ID           string    `json:"id"            db:"id"`
	Name         string    `json:"name"          db:"name"`
	Price        string    `json:"price"         db:"price"`
	Period       string    `json:"period"        db:"period"`
	Description  *string   `json:"description"   db:"description"`
	Features     []string  `json:"features"      db:"features"`
	IsPopular    bool      `json:"is_popular"    db:"is_popular"`
	IsActive     bool      `json:"is_active"     db:"is_active"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    db:"updated_at"`
}

// PricingPlanInput is the editable part of a pricing plan.
type PricingPlanInput struct {
	Name         string   `json:"name"`
	Price        string   `json:"price"`
	Period       string   `json:"period"`
	Description  *string  `json:"description"`
	Features     []string `json:"features"`
	IsPopular    bool     `json:"is_popular"`
	IsActive     bool     `json:"is_active"`
	DisplayOrder int      `json:"display_order"`
}

func (p PricingPlanInput) Normalize() PricingPlanInput {
	p.Name = strings.TrimSpace(p.Name)
	p.Price = strings.TrimSpace(p.Price)
	p.Period = strings.TrimSpace(p.Period)
	p.Description = optionalString(p.Description)
	p.Features = cleanList(p.Features)
	return p
}

func (p PricingPlanInput) Validate() error {
	switch {
	case p.Name == "":
		return &FieldError{Field: "name", Reason: "is required"}
	case p.Price == "":
		return &FieldError{Field: "price", Reason: "is required"}
	case p.Period == "":
		return &FieldError{Field: "period", Reason: "is required"}
	case p.DisplayOrder < 0:
		return &FieldError{Field: "display_order", Reason: "must not be negative"}
	}
	return nil
}

// ServiceOffering is a services row: one of the security services listed on the site.
type ServiceOffering struct {
	ID               string    `json:"id"                db:"id"`
	Name             string    `json:"name"              db:"name"`
	Description      string    `json:"description"       db:"description"`
	ShortDescription *string   `json:"short_description" db:"short_description"`
	Icon             *string   `json:"icon"              db:"icon"`
	Features         []string  `json:"features"          db:"features"`
	PriceRange       *string   `json:"price_range"       db:"price_range"`
	IsActive         bool      `json:"is_active"         db:"is_active"`
	DisplayOrder     int       `json:"display_order"     db:"display_order"`
	CreatedAt        time.Time `json:"created_at"        db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"        db:"updated_at"`
}

// ServiceOfferingInput is the editable part of a service offering.
type ServiceOfferingInput struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ShortDescription *string  `json:"short_description"`
	Icon             *string  `json:"icon"`
	Features         []string `json:"features"`
	PriceRange       *string  `json:"price_range"`
	IsActive         bool     `json:"is_active"`
	DisplayOrder     int      `json:"display_order"`
}

func (s ServiceOfferingInput) Normalize() ServiceOfferingInput {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.ShortDescription = optionalString(s.ShortDescription)
	s.Icon = optionalString(s.Icon)
	s.Features = cleanList(s.Features)
	s.PriceRange = optionalString(s.PriceRange)
	return s
}

func (s ServiceOfferingInput) Validate() error {
	switch {
	case s.Name == "":
		return &FieldError{Field: "name", Reason: "is required"}
	case s.Description == "":
		return &FieldError{Field: "description", Reason: "is required"}
	case s.DisplayOrder < 0:
		return &FieldError{Field: "display_order", Reason: "must not be negative"}
	}
	return nil
}

// Testimonial is a testimonials row.
type Testimonial struct {
	ID            string    `json:"id"             db:"id"`
	AuthorName    string    `json:"author_name"    db:"author_name"`
	AuthorRole    string    `json:"author_role"    db:"author_role"`
	AuthorCompany *string   `json:"author_company" db:"author_company"`
	Content       string    `json:"content"        db:"content"`
	Rating        int       `json:"rating"         db:"rating"`
	IsFeatured    bool      `json:"is_featured"    db:"is_featured"`
	IsActive      bool      `json:"is_active"      db:"is_active"`
	DisplayOrder  int       `json:"display_order"  db:"display_order"`
	CreatedAt     time.Time `json:"created_at"     db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"     db:"updated_at"`
}

// TestimonialInput is the editable part of a testimonial. A zero rating means five stars.
type TestimonialInput struct {
	AuthorName    string  `json:"author_name"`
	AuthorRole    string  `json:"author_role"`
	AuthorCompany *string `json:"author_company"`
	Content       string  `json:"content"`
	Rating        int     `json:"rating"`
	IsFeatured    bool    `json:"is_featured"`
	IsActive      bool    `json:"is_active"`
	DisplayOrder  int     `json:"display_order"`
}

func (t TestimonialInput) Normalize() TestimonialInput {
	t.AuthorName = strings.TrimSpace(t.AuthorName)
	t.AuthorRole = strings.TrimSpace(t.AuthorRole)
	t.AuthorCompany = optionalString(t.AuthorCompany)
	t.Content = strings.TrimSpace(t.Content)
	if t.Rating == 0 {
		t.Rating = defaultRating
	}
	return t
}

func (t TestimonialInput) Validate() error {
	switch {
	case t.AuthorName == "":
		return &FieldError{Field: "author_name", Reason: "is required"}
	case t.AuthorRole == "":
		return &FieldError{Field: "author_role", Reason: "is required"}
	case t.Content == "":
		return &FieldError{Field: "content", Reason: "is required"}
	case t.Rating < 1 || t.Rating > maxRating:
		return &FieldError{Field: "rating", Reason: "must be between 1 and 5"}
	case t.DisplayOrder < 0:
		return &FieldError{Field: "display_order", Reason: "must not be negative"}
	}
	return nil
}
