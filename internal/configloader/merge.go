package configloader

import "github.com/yaklabco/parkdown/pkg/config"

// Overrides holds values set explicitly on the command line. A nil field
// leaves the lower-precedence value alone, so a flag can set a boolean back
// to false.
type Overrides struct {
	Rule           *string
	Format         *string
	Transform      *bool
	MaxDepth       *int
	Flavor         *string
	Unsafe         *bool
	DetectLanguage *bool
	MaxText        *int
	Output         *string
	Color          *string
}

// apply writes every set override onto cfg.
func (o *Overrides) apply(cfg *config.Config) {
	if o == nil || cfg == nil {
		return
	}

	setIf(&cfg.Rule, o.Rule)
	setIf(&cfg.Format, o.Format)
	setIf(&cfg.Transform, o.Transform)
	setIf(&cfg.MaxDepth, o.MaxDepth)
	setIf(&cfg.HTML.Flavor, o.Flavor)
	setIf(&cfg.HTML.Unsafe, o.Unsafe)
	setIf(&cfg.HTML.DetectLanguage, o.DetectLanguage)
	setIf(&cfg.Describe.MaxText, o.MaxText)
	setIf(&cfg.Output, o.Output)
	setIf(&cfg.Color, o.Color)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
