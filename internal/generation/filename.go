package generation

import (
	"strings"
	"time"

	"resume-optimizer/internal/shared/util"
)

const DefaultBrandPrefix = "Tailored"

// FileStem builds "{brand}_Resume_{company}_{YYMMDD}".
func FileStem(brand, company string, at time.Time) string {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		brand = DefaultBrandPrefix
	}
	return brand + "_Resume_" + util.CompanySlug(company) + "_" + at.Format("060102")
}
