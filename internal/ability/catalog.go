// Package ability agrega los raw scores de los instrumentos completados en
// un perfil fijo de 30 dimensiones de habilidad, agrupadas en cinco
// categorías.
package ability

import "psymetric/internal/domain"

// Definitions es el catálogo fijo de habilidades en orden canónico. El
// orden importa: el vector persistido indexa dimensiones por posición.
var Definitions = []domain.AbilityDefinition{
	{Code: "determination", Name: "Determination", Category: domain.AbilityCategoryMental, MaxScore: domain.AbilityMaxScore},
	{Code: "composure", Name: "Composure", Category: domain.AbilityCategoryMental, MaxScore: domain.AbilityMaxScore},
	{Code: "concentration", Name: "Concentration", Category: domain.AbilityCategoryMental, MaxScore: domain.AbilityMaxScore},
	{Code: "creativity", Name: "Creativity", Category: domain.AbilityCategoryMental, MaxScore: domain.AbilityMaxScore},
	{Code: "analytical", Name: "Analytical Thinking", Category: domain.AbilityCategoryMental, MaxScore: domain.AbilityMaxScore},
	{Code: "adaptability", Name: "Adaptability", Category: domain.AbilityCategoryMental, MaxScore: domain.AbilityMaxScore},

	{Code: "communication", Name: "Communication", Category: domain.AbilityCategorySocial, MaxScore: domain.AbilityMaxScore},
	{Code: "teamwork", Name: "Teamwork", Category: domain.AbilityCategorySocial, MaxScore: domain.AbilityMaxScore},
	{Code: "leadership", Name: "Leadership", Category: domain.AbilityCategorySocial, MaxScore: domain.AbilityMaxScore},
	{Code: "empathy", Name: "Empathy", Category: domain.AbilityCategorySocial, MaxScore: domain.AbilityMaxScore},
	{Code: "influence", Name: "Influence", Category: domain.AbilityCategorySocial, MaxScore: domain.AbilityMaxScore},
	{Code: "networking", Name: "Networking", Category: domain.AbilityCategorySocial, MaxScore: domain.AbilityMaxScore},

	{Code: "execution", Name: "Execution", Category: domain.AbilityCategoryWork, MaxScore: domain.AbilityMaxScore},
	{Code: "planning", Name: "Planning", Category: domain.AbilityCategoryWork, MaxScore: domain.AbilityMaxScore},
	{Code: "problem_solving", Name: "Problem Solving", Category: domain.AbilityCategoryWork, MaxScore: domain.AbilityMaxScore},
	{Code: "time_management", Name: "Time Management", Category: domain.AbilityCategoryWork, MaxScore: domain.AbilityMaxScore},
	{Code: "attention_detail", Name: "Attention to Detail", Category: domain.AbilityCategoryWork, MaxScore: domain.AbilityMaxScore},
	{Code: "multitasking", Name: "Multitasking", Category: domain.AbilityCategoryWork, MaxScore: domain.AbilityMaxScore},

	{Code: "stress_resistance", Name: "Stress Resistance", Category: domain.AbilityCategoryPhysical, MaxScore: domain.AbilityMaxScore},
	{Code: "endurance", Name: "Endurance", Category: domain.AbilityCategoryPhysical, MaxScore: domain.AbilityMaxScore},
	{Code: "intuition", Name: "Intuition", Category: domain.AbilityCategoryPhysical, MaxScore: domain.AbilityMaxScore},
	{Code: "aesthetic", Name: "Aesthetic Sense", Category: domain.AbilityCategoryPhysical, MaxScore: domain.AbilityMaxScore},
	{Code: "spatial", Name: "Spatial Perception", Category: domain.AbilityCategoryPhysical, MaxScore: domain.AbilityMaxScore},
	{Code: "verbal", Name: "Verbal Ability", Category: domain.AbilityCategoryPhysical, MaxScore: domain.AbilityMaxScore},

	{Code: "growth_potential", Name: "Growth Potential", Category: domain.AbilityCategoryPotential, MaxScore: domain.AbilityMaxScore},
	{Code: "learning_speed", Name: "Learning Speed", Category: domain.AbilityCategoryPotential, MaxScore: domain.AbilityMaxScore},
	{Code: "innovation", Name: "Innovation", Category: domain.AbilityCategoryPotential, MaxScore: domain.AbilityMaxScore},
	{Code: "resilience", Name: "Resilience", Category: domain.AbilityCategoryPotential, MaxScore: domain.AbilityMaxScore},
	{Code: "ambition", Name: "Ambition", Category: domain.AbilityCategoryPotential, MaxScore: domain.AbilityMaxScore},
	{Code: "integrity", Name: "Integrity", Category: domain.AbilityCategoryPotential, MaxScore: domain.AbilityMaxScore},
}

// Dimensions es el tamaño del vector de habilidades.
const Dimensions = 30

var categoryOrder = []string{
	domain.AbilityCategoryMental,
	domain.AbilityCategorySocial,
	domain.AbilityCategoryWork,
	domain.AbilityCategoryPhysical,
	domain.AbilityCategoryPotential,
}

// Instruments lista los instrumentos que alimentan la agregación, en el
// orden de presentación del catálogo. La confiabilidad es
// completados / len(Instruments).
var Instruments = []string{
	"mbti", "disc", "enneagram", "tci", "gallup", "holland", "iq",
	"mmpi", "tarot", "htp", "saju", "sasang", "face", "blood",
}

// contributions mapea cada instrumento a las dimensiones que informa.
var contributions = map[string][]string{
	"mbti": {
		"determination", "composure", "creativity", "analytical",
		"communication", "teamwork", "leadership", "empathy",
		"planning", "adaptability",
	},
	"disc": {
		"determination", "communication", "leadership", "influence",
		"execution", "teamwork", "adaptability",
	},
	"enneagram": {
		"composure", "empathy", "ambition", "integrity",
		"creativity", "analytical", "resilience",
	},
	"tci": {
		"composure", "stress_resistance", "resilience", "integrity",
		"adaptability", "endurance",
	},
	"gallup": {
		"leadership", "communication", "execution", "influence",
		"networking", "growth_potential",
	},
	"holland": {
		"creativity", "analytical", "execution", "planning",
		"aesthetic", "spatial",
	},
	"iq": {
		"analytical", "concentration", "problem_solving",
		"learning_speed", "spatial", "verbal",
	},
	"mmpi": {
		"stress_resistance", "composure", "resilience", "empathy",
		"adaptability",
	},
	"tarot": {"intuition", "creativity", "growth_potential"},
	"htp": {
		"creativity", "aesthetic", "spatial", "intuition",
		"stress_resistance",
	},
	"saju":   {"growth_potential", "ambition", "resilience", "adaptability"},
	"sasang": {"endurance", "stress_resistance", "adaptability", "composure"},
	"face":   {"intuition", "influence", "leadership", "communication"},
	"blood":  {"teamwork", "communication", "adaptability"},
}
