package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"dreamdecol/models"
	"dreamdecol/services/settings"
	"dreamdecol/utils"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9-]+$`)

// apply merges the non-nil input fields into p, normalizing as it goes.
func apply(p *models.Product, in ProductInput) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.SKU != nil {
		p.SKU = strings.ToUpper(strings.TrimSpace(*in.SKU))
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Currency != nil {
		p.Currency = strings.TrimSpace(*in.Currency)
	}
	if in.ShortDescription != nil {
		p.ShortDescription = strings.TrimSpace(*in.ShortDescription)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Dimensions != nil {
		p.Dimensions = *in.Dimensions
	}
	if in.Materials != nil {
		p.Materials = trimAll(*in.Materials, false)
	}
	if in.MainImage != nil {
		p.MainImage = strings.TrimSpace(*in.MainImage)
	}
	if in.Images != nil {
		p.Images = trimAll(*in.Images, false)
	}
	if in.VideoURL != nil {
		p.VideoURL = utils.EmbedVideoURL(*in.VideoURL)
	}
	if in.Tags != nil {
		p.Tags = trimAll(*in.Tags, true)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.Weight != nil {
		p.Weight = strings.TrimSpace(*in.Weight)
	}
	if in.AssemblyRequired != nil {
		p.AssemblyRequired = *in.AssemblyRequired
	}
	if in.Warranty != nil {
		p.Warranty = strings.TrimSpace(*in.Warranty)
	}
	if in.CareInstructions != nil {
		p.CareInstructions = strings.TrimSpace(*in.CareInstructions)
	}
	if in.SEO != nil {
		p.SEO = *in.SEO
	}
	if in.Status != nil {
		p.Status = strings.TrimSpace(*in.Status)
	}
}

func trimAll(values []string, lower bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if lower {
			v = strings.ToLower(v)
		}
		out = append(out, v)
	}
	return out
}

func lengthBetween(field, v string, min, max int) string {
	n := len([]rune(v))
	if n < min || n > max {
		return fmt.Sprintf("%s must be between %d and %d characters", field, min, max)
	}
	return ""
}

// validate checks the merged product and returns every violated rule.
func (s *DefaultCatalogService) validate(p *models.Product) error {
	snap := s.Settings.Snapshot()
	categories := snap.Strings(settings.KeyProductCategories, models.ProductCategories)
	currencies := snap.Strings(settings.KeyProductCurrencies, models.Currencies)

	var details []string
	add := func(msg string) {
		if msg != "" {
			details = append(details, msg)
		}
	}

	add(lengthBetween("Title", p.Title, 2, 200))
	if p.SKU != "" && !skuPattern.MatchString(p.SKU) {
		add("SKU can only contain uppercase letters, numbers, and hyphens")
	}
	if p.Price < 0 {
		add("Price cannot be negative")
	}
	if !contains(currencies, p.Currency) {
		add(fmt.Sprintf("Invalid currency: %s. Valid currencies are: %s", p.Currency, strings.Join(currencies, ", ")))
	}
	add(lengthBetween("Short description", p.ShortDescription, 10, 500))
	add(lengthBetween("Description", p.Description, 20, 5000))
	if !utils.IsImageSource(p.MainImage) {
		add("Main image must be a valid URL or upload path")
	}
	for _, img := range p.Images {
		if !utils.IsImageSource(img) {
			add(fmt.Sprintf("Invalid image URL: %s", img))
		}
	}
	if p.VideoURL != "" && !utils.IsVideoURL(p.VideoURL) {
		add("Video URL must be a valid YouTube or Vimeo URL")
	}
	if !contains(categories, p.Category) {
		add(fmt.Sprintf("Invalid category: %s. Valid categories are: %s", p.Category, strings.Join(categories, ", ")))
	}
	if p.StockQuantity < 0 {
		add("Stock quantity cannot be negative")
	}
	if len([]rune(p.CareInstructions)) > 1000 {
		add("Care instructions cannot exceed 1000 characters")
	}
	if len([]rune(p.SEO.MetaTitle)) > 60 {
		add("Meta title cannot exceed 60 characters")
	}
	if len([]rune(p.SEO.MetaDescription)) > 160 {
		add("Meta description cannot exceed 160 characters")
	}
	if !contains(models.ProductStatuses, p.Status) {
		add(fmt.Sprintf("Invalid status: %s", p.Status))
	}

	if len(details) > 0 {
		return utils.NewValidationError("Validation error", details...)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// CategoryName turns a category id like "living-room" into "Living room".
func CategoryName(id string) string {
	if id == "" {
		return id
	}
	name := strings.Replace(id, "-", " ", 1)
	return strings.ToUpper(name[:1]) + name[1:]
}
