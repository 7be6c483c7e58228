package rank

import (
	"strings"

	"github.com/figskate/results-backend/internal/domain"
)

// Normalize maps a free-text category name and a gender code ("F"/"M") to the
// canonical rank label. Latin look-alike letters are corrected before
// matching. Unrecognized names resolve to a visible "Другой" placeholder,
// gender-suffixed when the gender is known, so the category is still stored
// and can be corrected by hand.
func Normalize(categoryName, gender string) string {
	if strings.TrimSpace(categoryName) == "" {
		return "Неизвестно"
	}

	name := strings.ToLower(domain.FixLatinLookalikes(categoryName))
	gender = strings.ToUpper(strings.TrimSpace(gender))

	for _, family := range taxonomy {
		for _, keyword := range family.Keywords {
			if !strings.Contains(name, keyword) {
				continue
			}
			if label, ok := family.ByGender[gender]; ok {
				return label
			}
			return family.Name
		}
	}

	switch gender {
	case "F":
		return OtherBase + ", Девочки"
	case "M":
		return OtherBase + ", Мальчики"
	}
	return OtherBase
}

// Weight returns the ordering weight of a canonical label (smaller is a
// higher tier). Unknown labels sort with "Другой".
func Weight(label string) int {
	base := label
	if i := strings.IndexByte(label, ','); i >= 0 {
		base = label[:i]
	}
	base = strings.TrimSpace(base)
	if w, ok := weights[base]; ok {
		return w
	}
	return weights[OtherBase]
}
