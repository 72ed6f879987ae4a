package engine

import (
	"strconv"
	"strings"
	"time"

	"psymetric/internal/domain"
)

// Saju deriva los cuatro pilares (año, mes, día, hora) de los datos de
// nacimiento. El pilar del día usa un ciclo módulo de días desde 1900,
// una aproximación del calendario sexagenario auténtico. Un nacimiento
// malformado cae a valores por defecto en lugar de fallar.
type Saju struct{}

func NewSaju() *Saju { return &Saju{} }

func (*Saju) Code() string { return "saju" }
func (*Saju) Name() string { return "Four Pillars Reading" }

const (
	sajuWood  = "wood"
	sajuFire  = "fire"
	sajuEarth = "earth"
	sajuMetal = "metal"
	sajuWater = "water"
)

// Los diez troncos celestes en orden de ciclo.
var sajuStemOrder = []string{"gap", "eul", "byeong", "jeong", "mu", "gi", "gyeong", "sin", "im", "gye"}

// Las doce ramas terrestres en orden de ciclo.
var sajuBranchOrder = []string{"ja", "chuk", "in", "myo", "jin", "sa", "o", "mi", "sin", "yu", "sul", "hae"}

type sajuStem struct {
	Element string
	YinYang string
	Trait   string
}

var sajuStems = map[string]sajuStem{
	"gap":    {sajuWood, "yang", "enterprising, leadership, pioneering spirit"},
	"eul":    {sajuWood, "yin", "flexibility, cooperation, adaptability"},
	"byeong": {sajuFire, "yang", "passion, expressiveness, energy"},
	"jeong":  {sajuFire, "yin", "delicacy, artistry, consideration"},
	"mu":     {sajuEarth, "yang", "trustworthiness, mediation, stability"},
	"gi":     {sajuEarth, "yin", "tolerance, patience, practicality"},
	"gyeong": {sajuMetal, "yang", "decisiveness, sense of justice, principle"},
	"sin":    {sajuMetal, "yin", "precision, analysis, sharpness"},
	"im":     {sajuWater, "yang", "wisdom, adaptability, tolerance"},
	"gye":    {sajuWater, "yin", "intuition, sensitivity, creativity"},
}

type sajuBranch struct {
	Element string
	Animal  string
	Trait   string
}

var sajuBranches = map[string]sajuBranch{
	"ja":   {sajuWater, "rat", "cleverness, opportunism, sociability"},
	"chuk": {sajuEarth, "ox", "patience, diligence, prudence"},
	"in":   {sajuWood, "tiger", "bravery, leadership, confidence"},
	"myo":  {sajuWood, "rabbit", "gentleness, artistry, intuition"},
	"jin":  {sajuEarth, "dragon", "authority, ambition, charisma"},
	"sa":   {sajuFire, "snake", "wisdom, mystery, insight"},
	"o":    {sajuFire, "horse", "vitality, independence, passion"},
	"mi":   {sajuEarth, "goat", "mildness, artistry, compassion"},
	"sin":  {sajuMetal, "monkey", "wit, cleverness, versatility"},
	"yu":   {sajuMetal, "rooster", "accuracy, observation, perfectionism"},
	"sul":  {sajuEarth, "dog", "loyalty, sense of justice, reliability"},
	"hae":  {sajuWater, "pig", "generosity, honesty, patience"},
}

type sajuElement struct {
	Season    string
	Direction string
	Trait     string
}

var sajuElements = map[string]sajuElement{
	sajuWood:  {"spring", "east", "growth, benevolence, creativity"},
	sajuFire:  {"summer", "south", "passion, propriety, expressiveness"},
	sajuEarth: {"transition", "center", "stability, trust, mediation"},
	sajuMetal: {"autumn", "west", "decisiveness, righteousness, accuracy"},
	sajuWater: {"winter", "north", "wisdom, knowledge, adaptability"},
}

var sajuElementOrder = []string{sajuWood, sajuFire, sajuEarth, sajuMetal, sajuWater}

var sajuLifeAdvice = map[string]string{
	sajuWood:  "Activities involving trees, plants and the color green will help. East is a favorable direction.",
	sajuFire:  "Warm colors, active hobbies and the south suit you.",
	sajuEarth: "A stable environment, a mediating role and earthy tones will help.",
	sajuMetal: "Tidiness, systematic planning and white or gold suit you.",
	sajuWater: "Flexible thinking, activities involving water and the color black will help.",
}

var sajuCareerAdvice = map[string]string{
	"gap":    "Fields demanding leadership, founding ventures, pioneering work",
	"eul":    "Fields where cooperation matters, the arts, service industries",
	"byeong": "Fields that reward expressiveness, media, marketing",
	"jeong":  "Fields demanding delicacy, design, education",
	"mu":     "Fields where trust matters, finance, real estate",
	"gi":     "Fields helping people, healthcare, welfare",
	"gyeong": "Fields demanding justice and principle, law, administration",
	"sin":    "Fields demanding analysis, IT, research",
	"im":     "Fields applying wisdom, consulting, education",
	"gye":    "Fields demanding creativity, the arts, planning",
}

var sajuRelationshipAdvice = map[string]string{
	sajuWood:  "Recognition and encouragement are needed; respect their freedom.",
	sajuFire:  "Understand their passion and give them room to express it.",
	sajuEarth: "Stability and trust matter; show consistency.",
	sajuMetal: "Respect their principles and argue logically.",
	sajuWater: "Understand their feelings and respond flexibly.",
}

type sajuPillars struct {
	year, month, day, hour [2]string // stem, branch
}

func (*Saju) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	birth := sajuBirthInfo(responses)
	pillars := sajuComputePillars(birth.year, birth.month, birth.day, birth.hour)
	elementCounts := sajuCountElements(pillars)
	yongshin := sajuYongshin(elementCounts)
	personality := sajuPersonality(pillars, elementCounts)

	raw := domain.RawScores{
		"birth_info": map[string]any{
			"year": birth.year, "month": birth.month,
			"day": birth.day, "hour": birth.hour,
		},
		"saju":           pillars.asMap(),
		"element_counts": elementCounts,
		"yongshin":       yongshin,
		"personality":    personality,
	}
	return raw, pillars.day[0] + "_day_master", nil
}

type sajuBirth struct {
	year, month, day, hour int
}

// sajuBirthInfo extrae los datos de nacimiento de las respuestas,
// aceptando un objeto con year/month/day/hour o un string
// "YYYY-MM-DD HH:MM". Si el parseo falla aplican los defaults.
func sajuBirthInfo(responses []domain.Response) sajuBirth {
	birth := sajuBirth{year: 2000, month: 1, day: 1, hour: 12}
	for _, r := range responses {
		if obj, ok := r.Answer.Object(); ok {
			if v, ok := sajuIntField(obj, "year"); ok {
				birth.year = v
			}
			if v, ok := sajuIntField(obj, "month"); ok {
				birth.month = v
			}
			if v, ok := sajuIntField(obj, "day"); ok {
				birth.day = v
			}
			if v, ok := sajuIntField(obj, "hour"); ok {
				birth.hour = v
			}
		} else if s, ok := r.Answer.String(); ok {
			parts := strings.Fields(strings.ReplaceAll(s, "T", " "))
			if len(parts) == 0 {
				continue
			}
			dateParts := strings.Split(parts[0], "-")
			if len(dateParts) != 3 {
				continue
			}
			y, err1 := strconv.Atoi(dateParts[0])
			m, err2 := strconv.Atoi(dateParts[1])
			d, err3 := strconv.Atoi(dateParts[2])
			if err1 != nil || err2 != nil || err3 != nil {
				continue
			}
			birth.year, birth.month, birth.day = y, m, d
			if len(parts) > 1 {
				timeParts := strings.Split(parts[1], ":")
				if h, err := strconv.Atoi(timeParts[0]); err == nil {
					birth.hour = h
				}
			}
		}
	}
	return birth
}

func sajuIntField(obj map[string]any, key string) (int, bool) {
	switch v := obj[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func sajuComputePillars(year, month, day, hour int) sajuPillars {
	yearStem := mod(year-4, 10)
	yearBranch := mod(year-4, 12)

	monthStem := mod(yearStem*2+month, 10)
	monthBranch := mod(month+1, 12)

	base := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	daysDiff := int(target.Sub(base).Hours() / 24)
	dayStem := mod(daysDiff, 10)
	dayBranch := mod(daysDiff, 12)

	hourBranch := mod((hour+1)/2, 12)
	hourStem := mod(dayStem*2+hourBranch, 10)

	return sajuPillars{
		year:  [2]string{sajuStemOrder[yearStem], sajuBranchOrder[yearBranch]},
		month: [2]string{sajuStemOrder[monthStem], sajuBranchOrder[monthBranch]},
		day:   [2]string{sajuStemOrder[dayStem], sajuBranchOrder[dayBranch]},
		hour:  [2]string{sajuStemOrder[hourStem], sajuBranchOrder[hourBranch]},
	}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func (p sajuPillars) asMap() map[string]any {
	pillar := func(v [2]string) map[string]any {
		return map[string]any{"stem": v[0], "branch": v[1]}
	}
	return map[string]any{
		"year":  pillar(p.year),
		"month": pillar(p.month),
		"day":   pillar(p.day),
		"hour":  pillar(p.hour),
	}
}

func sajuCountElements(p sajuPillars) map[string]float64 {
	counts := map[string]float64{
		sajuWood: 0, sajuFire: 0, sajuEarth: 0, sajuMetal: 0, sajuWater: 0,
	}
	for _, pillar := range [][2]string{p.year, p.month, p.day, p.hour} {
		if stem, ok := sajuStems[pillar[0]]; ok {
			counts[stem.Element]++
		}
		if branch, ok := sajuBranches[pillar[1]]; ok {
			counts[branch.Element]++
		}
	}
	return counts
}

// sajuYongshin elige el elemento más escaso como el que hay que
// suplementar y el más abundante como el que hay que moderar, resolviendo
// empates por el orden canónico de elementos.
func sajuYongshin(counts map[string]float64) map[string]any {
	need, excess := sajuElementOrder[0], sajuElementOrder[0]
	for _, element := range sajuElementOrder {
		if counts[element] < counts[need] {
			need = element
		}
		if counts[element] > counts[excess] {
			excess = element
		}
	}
	return map[string]any{
		"need":   need,
		"excess": excess,
		"advice": "Supplement the energy of " + need + " and temper the energy of " + excess + ".",
	}
}

func sajuPersonality(p sajuPillars, counts map[string]float64) map[string]any {
	stemInfo := sajuStems[p.day[0]]
	elementInfo := sajuElements[stemInfo.Element]

	balanced := true
	for _, c := range counts {
		if c < 1 || c > 3 {
			balanced = false
			break
		}
	}
	balanceDescription := "The five elements are in balance."
	if !balanced {
		balanceDescription = "Certain elements are unusually strong or weak."
	}

	return map[string]any{
		"primary_element":     stemInfo.Element,
		"primary_trait":       stemInfo.Trait,
		"element_trait":       elementInfo.Trait,
		"is_balanced":         balanced,
		"balance_description": balanceDescription,
	}
}

func (*Saju) Interpret(raw domain.RawScores, resultType string) domain.Report {
	pillars := sajuPillarsFromRaw(raw["saju"])
	elementCounts := anyNumericMap(raw["element_counts"])
	personality, _ := raw["personality"].(map[string]any)
	if personality == nil {
		personality = map[string]any{}
	}

	display := map[string]any{
		"year_pillar":  pillars.year[0] + "-" + pillars.year[1],
		"month_pillar": pillars.month[0] + "-" + pillars.month[1],
		"day_pillar":   pillars.day[0] + "-" + pillars.day[1],
		"hour_pillar":  pillars.hour[0] + "-" + pillars.hour[1],
	}

	dayStem, dayBranch := pillars.day[0], pillars.day[1]
	stemInfo := sajuStems[dayStem]
	branchInfo := sajuBranches[dayBranch]

	primaryElement, _ := personality["primary_element"].(string)
	primaryTrait, _ := personality["primary_trait"].(string)
	elementTrait, _ := personality["element_trait"].(string)

	maxElement := sajuElementOrder[0]
	for _, element := range sajuElementOrder {
		if elementCounts[element] > elementCounts[maxElement] {
			maxElement = element
		}
	}

	return domain.Report{
		"result_type":  resultType,
		"saju_display": display,
		"day_master": map[string]any{
			"stem":     dayStem,
			"branch":   dayBranch,
			"element":  stemInfo.Element,
			"yin_yang": stemInfo.YinYang,
			"trait":    stemInfo.Trait,
		},
		"zodiac": map[string]any{
			"animal": branchInfo.Animal,
			"trait":  branchInfo.Trait,
		},
		"element_distribution": elementCounts,
		"primary_element":      primaryElement,
		"personality_traits":   []string{primaryTrait, elementTrait},
		"yongshin":             raw["yongshin"],
		"life_advice":          sajuLifeAdviceFor(raw["yongshin"]),
		"career_advice":        sajuCareerAdviceFor(dayStem),
		"relationship_advice":  sajuRelationshipAdvice[maxElement],
		"disclaimer":           "This reading is based on traditional interpretation; use it only as a reference.",
	}
}

func sajuPillarsFromRaw(v any) sajuPillars {
	p := sajuPillars{
		year:  [2]string{"gap", "ja"},
		month: [2]string{"gap", "ja"},
		day:   [2]string{"gap", "ja"},
		hour:  [2]string{"gap", "ja"},
	}
	m, ok := v.(map[string]any)
	if !ok {
		return p
	}
	read := func(key string, dst *[2]string) {
		pillar, ok := m[key].(map[string]any)
		if !ok {
			return
		}
		if stem, ok := pillar["stem"].(string); ok {
			dst[0] = stem
		}
		if branch, ok := pillar["branch"].(string); ok {
			dst[1] = branch
		}
	}
	read("year", &p.year)
	read("month", &p.month)
	read("day", &p.day)
	read("hour", &p.hour)
	return p
}

func sajuLifeAdviceFor(yongshin any) string {
	m, ok := yongshin.(map[string]any)
	if !ok {
		return "Keep a balanced life."
	}
	need, _ := m["need"].(string)
	if advice, ok := sajuLifeAdvice[need]; ok {
		return advice
	}
	return "Keep a balanced life."
}

func sajuCareerAdviceFor(dayStem string) string {
	if advice, ok := sajuCareerAdvice[dayStem]; ok {
		return advice
	}
	return "You adapt well across many fields."
}
