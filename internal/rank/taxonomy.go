// Package rank classifies free-text competition category names into canonical
// rank labels used for cross-event grouping.
package rank

// Family is one canonical rank tier. Keywords are lowercase phrases matched
// as substrings of the corrected category name; the first family in taxonomy
// order that matches wins, so more specific families (pairs, ice dance) are
// listed before the singles tiers they would otherwise shadow.
type Family struct {
	ID       string
	Name     string
	ByGender map[string]string
	Keywords []string
}

// taxonomy is the immutable classification table, ordered by match priority.
var taxonomy = []Family{
	{
		ID:   "pairs_ms",
		Name: "МС, Пары",
		Keywords: []string{
			"парное катание, мастер спорта", "пары, мастер спорта", "парное, мастер спорта",
			"парное катание, мс", "пары, мс",
		},
	},
	{
		ID:   "pairs_kms",
		Name: "КМС, Пары",
		Keywords: []string{
			"парное катание, кандидат в мастера спорта", "пары, кандидат в мастера спорта",
			"парное, кандидат в мастера спорта", "парное катание, кмс", "пары, кмс",
		},
	},
	{
		ID:   "pairs_sport1",
		Name: "1 Спортивный, Пары",
		Keywords: []string{
			"парное катание, 1 спортивный", "пары, 1 спортивный", "парное, 1 спортивный",
			"парное катание, 1 спортивный разряд",
		},
	},
	{
		ID:   "pairs_sport2",
		Name: "2 Спортивный, Пары",
		Keywords: []string{
			"парное катание, 2 спортивный", "пары, 2 спортивный", "парное, 2 спортивный",
		},
	},
	{
		ID:   "pairs_sport3",
		Name: "3 Спортивный, Пары",
		Keywords: []string{
			"парное катание, 3 спортивный", "пары, 3 спортивный", "парное, 3 спортивный",
		},
	},
	{
		ID:   "dance_ms",
		Name: "МС, Танцы",
		Keywords: []string{
			"танцы на льду, мастер спорта", "танцы, мастер спорта", "ледяные танцы, мастер спорта",
			"танцы на льду, мс", "танцы, мс",
		},
	},
	{
		ID:   "dance_kms",
		Name: "КМС, Танцы",
		Keywords: []string{
			"танцы на льду, кандидат в мастера спорта", "танцы, кандидат в мастера спорта",
			"ледяные танцы, кандидат в мастера спорта", "танцы на льду, кмс", "танцы, кмс",
		},
	},
	{
		ID:   "dance_sport1",
		Name: "1 Спортивный, Танцы",
		Keywords: []string{
			"танцы на льду, 1 спортивный", "танцы, 1 спортивный", "ледяные танцы, 1 спортивный",
			"танцы на льду, 1 спортивный разряд",
		},
	},
	{
		ID:   "dance_sport2",
		Name: "2 Спортивный, Танцы",
		Keywords: []string{
			"танцы на льду, 2 спортивный", "танцы, 2 спортивный", "ледяные танцы, 2 спортивный",
		},
	},
	{
		ID:   "dance_sport3",
		Name: "3 Спортивный, Танцы",
		Keywords: []string{
			"танцы на льду, 3 спортивный", "танцы, 3 спортивный", "ледяные танцы, 3 спортивный",
		},
	},
	{
		ID:       "kms",
		Name:     "КМС",
		ByGender: map[string]string{"F": "КМС, Девушки", "M": "КМС, Юноши"},
		Keywords: []string{
			"кмс", "кандидат в мастера спорта", "кандидат в мастера спорта россии",
			"кандидат в мастера", "кандидат мастера спорта",
			"кандидат в мастера спорта, юниоры", "кандидат в мастера спорта, юниорки",
		},
	},
	{
		ID:       "ms",
		Name:     "МС",
		ByGender: map[string]string{"F": "МС, Женщины", "M": "МС, Мужчины"},
		Keywords: []string{"мс", "мастер спорта", "мастер спорта россии"},
	},
	{
		ID:       "sport1",
		Name:     "1 Спортивный",
		ByGender: map[string]string{"F": "1 Спортивный, Девочки", "M": "1 Спортивный, Мальчики"},
		Keywords: []string{
			"1 спортивный", "первый спортивный", "1 спорт",
			"1 спортивный разряд", "первый спортивный разряд",
		},
	},
	{
		ID:       "sport2",
		Name:     "2 Спортивный",
		ByGender: map[string]string{"F": "2 Спортивный, Девочки", "M": "2 Спортивный, Мальчики"},
		Keywords: []string{
			"2 спортивный", "второй спортивный", "2 спорт",
			"2 спортивный разряд", "второй спортивный разряд",
		},
	},
	{
		ID:       "sport3",
		Name:     "3 Спортивный",
		ByGender: map[string]string{"F": "3 Спортивный, Девочки", "M": "3 Спортивный, Мальчики"},
		Keywords: []string{
			"3 спортивный", "третий спортивный", "3 спорт",
			"3 спортивный разряд", "третий спортивный разряд",
		},
	},
	{
		ID:       "junior1",
		Name:     "1 Юношеский",
		ByGender: map[string]string{"F": "1 Юношеский, Девочки", "M": "1 Юношеский, Мальчики"},
		Keywords: []string{"1 юношеский", "первый юношеский", "1 юн"},
	},
	{
		ID:       "junior2",
		Name:     "2 Юношеский",
		ByGender: map[string]string{"F": "2 Юношеский, Девочки", "M": "2 Юношеский, Мальчики"},
		Keywords: []string{"2 юношеский", "второй юношеский", "2 юн"},
	},
	{
		ID:       "junior3",
		Name:     "3 Юношеский",
		ByGender: map[string]string{"F": "3 Юношеский, Девочки", "M": "3 Юношеский, Мальчики"},
		Keywords: []string{"3 юношеский", "третий юношеский", "3 юн"},
	},
	{
		ID:       "young_skater",
		Name:     "Юный Фигурист",
		ByGender: map[string]string{"F": "Юный Фигурист, Девочки", "M": "Юный Фигурист, Мальчики"},
		Keywords: []string{"юный фигурист", "юный", "юф"},
	},
	{
		ID:       "debut",
		Name:     "Дебют",
		ByGender: map[string]string{"F": "Дебют, Девочки", "M": "Дебют, Мальчики"},
		Keywords: []string{"дебют", "дебютный"},
	},
	{
		ID:       "novice",
		Name:     "Новичок",
		ByGender: map[string]string{"F": "Новичок, Девочки", "M": "Новичок, Мальчики"},
		Keywords: []string{"новичок", "начинающий"},
	},
}

// OtherBase is the base label assigned to category names that match no family.
const OtherBase = "Другой"

// weights orders base rank labels for reporting, best tier first.
var weights = map[string]int{
	"МС": 1, "КМС": 2,
	"1 Спортивный": 3, "2 Спортивный": 4, "3 Спортивный": 5,
	"1 Юношеский": 6, "2 Юношеский": 7, "3 Юношеский": 8,
	"Юный Фигурист": 9, "Дебют": 10, "Новичок": 11,
	OtherBase: 12,
}

// Taxonomy returns the classification table in match-priority order.
func Taxonomy() []Family {
	out := make([]Family, len(taxonomy))
	copy(out, taxonomy)
	return out
}
